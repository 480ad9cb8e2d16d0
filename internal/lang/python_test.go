package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const pySample = `"""Sample module"""


def greet(name):
    """Greet a person by name"""
    return f"Hello, {name}!"


def add(a, b):
    """Add two numbers"""
    return a + b


def no_args():
    print("No arguments")
`

const pyClass = `class Calculator:
    """A simple calculator class"""

    def __init__(self):
        self.result = 0

    def add(self, x, y):
        """Add two numbers"""
        self.result = x + y
        return self.result

    def multiply(self, x, y):
        return x * y


def standalone_function():
    """A standalone function"""
    return 42
`

func TestPythonExtract_Functions(t *testing.T) {
	fns := extractSrc(t, "python", pySample)
	require.Len(t, fns, 3)

	greet := findFn(t, fns, "greet")
	assert.Equal(t, "function", greet.Kind)
	assert.Equal(t, []string{"name"}, greet.Arguments)
	assert.Equal(t, "Greet a person by name", greet.Doc)

	add := findFn(t, fns, "add")
	assert.Equal(t, []string{"a", "b"}, add.Arguments)

	noArgs := findFn(t, fns, "no_args")
	assert.Empty(t, noArgs.Arguments)
	assert.Empty(t, noArgs.Doc)
}

func TestPythonExtract_ClassMethods(t *testing.T) {
	fns := extractSrc(t, "python", pyClass)
	require.Len(t, fns, 4)

	init := findFn(t, fns, "__init__")
	assert.Equal(t, "constructor", init.Kind)
	assert.Equal(t, "Calculator", init.Receiver)
	assert.Empty(t, init.Arguments, "self is not an argument")

	add := findFn(t, fns, "add")
	assert.Equal(t, "method", add.Kind)
	assert.Equal(t, "Calculator", add.Receiver)
	assert.Equal(t, []string{"x", "y"}, add.Arguments)
	assert.Equal(t, "Add two numbers", add.Doc)

	multiply := findFn(t, fns, "multiply")
	assert.Equal(t, "method", multiply.Kind)
	assert.Empty(t, multiply.Doc)
	assert.Contains(t, multiply.Code, "x * y")

	standalone := findFn(t, fns, "standalone_function")
	assert.Equal(t, "function", standalone.Kind)
	assert.Empty(t, standalone.Receiver)
	assert.Contains(t, standalone.Code, "return 42")
}

func TestPythonExtract_ArgumentForms(t *testing.T) {
	src := `def with_defaults(x=10, y=20):
    return x + y


def with_type_hints(name: str, age: int) -> str:
    return f"{name} is {age} years old"
`
	fns := extractSrc(t, "python", src)
	require.Len(t, fns, 2)

	defaults := findFn(t, fns, "with_defaults")
	assert.Equal(t, []string{"x", "y"}, defaults.Arguments)

	hints := findFn(t, fns, "with_type_hints")
	assert.Equal(t, []string{"name", "age"}, hints.Arguments)
	assert.Equal(t, "str", hints.ReturnType)
}

func TestPythonExtract_SingleQuoteDocstring(t *testing.T) {
	src := "def f():\n    '''doc here'''\n    return 1\n"
	fns := extractSrc(t, "python", src)
	require.Len(t, fns, 1)
	assert.Equal(t, "doc here", fns[0].Doc)
}
