package lang

import (
	"regexp"
	"strings"
)

// branchRe matches control-flow keywords used for the cyclomatic complexity
// estimate. "else if" intentionally counts both keywords.
var branchRe = regexp.MustCompile(`\b(if|for|while|elif|else|case|switch|catch)\b`)

// Complexity estimates cyclomatic complexity as 1 + the number of branch
// keywords in the function body.
func Complexity(code string) int {
	return 1 + len(branchRe.FindAllString(code, -1))
}

// CountLines counts effective lines of code and comment lines. Blank lines
// count as neither. A line is a comment line when its first non-space
// characters open or continue a comment (#, //, /*, *).
func CountLines(code string) (loc, commentLines int) {
	for _, line := range strings.Split(code, "\n") {
		stripped := strings.TrimSpace(line)
		if stripped == "" {
			continue
		}
		if strings.HasPrefix(stripped, "#") ||
			strings.HasPrefix(stripped, "//") ||
			strings.HasPrefix(stripped, "/*") ||
			strings.HasPrefix(stripped, "*") {
			commentLines++
		} else {
			loc++
		}
	}
	return loc, commentLines
}
