package ragdex

import "github.com/mkondo/ragdex/internal/store"

// Public type aliases for internal store types used in the QueryBuilder and
// export APIs. These are Go type aliases, identical to the internal types at
// compile time.

type Store = store.Store
type File = store.File
type Function = store.Function
type LanguageStat = store.LanguageStat
