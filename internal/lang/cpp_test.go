package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cppClass = `class Calculator {
private:
    int result;

public:
    /**
     * Constructor
     */
    Calculator() : result(0) {}

    /**
     * Add two numbers
     */
    int add(int x, int y) {
        result = x + y;
        return result;
    }

    static int multiply(int x, int y) {
        return x * y;
    }
};

/**
 * A standalone function
 */
int standaloneFunction() {
    return 42;
}
`

func TestCppExtract_ClassMembers(t *testing.T) {
	fns := extractSrc(t, "cpp", cppClass)
	require.Len(t, fns, 4)

	ctor := findFn(t, fns, "Calculator")
	assert.Equal(t, "constructor", ctor.Kind, "name matching the class marks a constructor")
	assert.Equal(t, "Calculator", ctor.Receiver)

	add := findFn(t, fns, "add")
	assert.Equal(t, "method", add.Kind)
	assert.Equal(t, "Calculator", add.Receiver)
	assert.Equal(t, []string{"x", "y"}, add.Arguments)
	assert.Equal(t, "Add two numbers", add.Doc)

	multiply := findFn(t, fns, "multiply")
	assert.Equal(t, "method", multiply.Kind)
	assert.Equal(t, []string{"static"}, multiply.Modifiers)

	standalone := findFn(t, fns, "standaloneFunction")
	assert.Equal(t, "function", standalone.Kind)
	assert.Empty(t, standalone.Receiver)
	assert.Contains(t, standalone.Code, "return 42")
}

func TestCppExtract_OutOfLineMethod(t *testing.T) {
	src := `int Point::x() {
    return 0;
}
`
	fns := extractSrc(t, "cpp", src)
	require.Len(t, fns, 1)
	assert.Equal(t, "method", fns[0].Kind)
	assert.Equal(t, "Point", fns[0].Receiver)
	assert.Equal(t, "x", fns[0].Name)
}

func TestSplitQualifiedName(t *testing.T) {
	owner, member, ok := splitQualifiedName("Point::x")
	require.True(t, ok)
	assert.Equal(t, "Point", owner)
	assert.Equal(t, "x", member)

	owner, member, ok = splitQualifiedName("ns::Point::x")
	require.True(t, ok)
	assert.Equal(t, "ns::Point", owner)
	assert.Equal(t, "x", member)

	_, _, ok = splitQualifiedName("plain")
	assert.False(t, ok)
}
