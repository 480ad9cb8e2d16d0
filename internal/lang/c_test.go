package lang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cSample = `#include <stdio.h>

/**
 * Greet a person by name
 */
char* greet(char* name) {
    static char buffer[100];
    sprintf(buffer, "Hello, %s!", name);
    return buffer;
}

/**
 * Add two numbers
 */
int add(int a, int b) {
    return a + b;
}

static int multiply(int x, int y) {
    return x * y;
}

void no_args() {
    printf("No arguments\n");
}
`

func TestCExtract_Functions(t *testing.T) {
	fns := extractSrc(t, "c", cSample)
	require.Len(t, fns, 4)

	greet := findFn(t, fns, "greet")
	assert.Equal(t, "function", greet.Kind)
	assert.Equal(t, []string{"name"}, greet.Arguments, "pointer declarator resolves to the identifier")
	assert.Equal(t, "char", greet.ReturnType, "the pointer belongs to the declarator, not the type")
	assert.Equal(t, "Greet a person by name", greet.Doc)

	add := findFn(t, fns, "add")
	assert.Equal(t, []string{"a", "b"}, add.Arguments)
	assert.Equal(t, "int", add.ReturnType)
	assert.Equal(t, "Add two numbers", add.Doc)

	multiply := findFn(t, fns, "multiply")
	assert.Equal(t, []string{"static"}, multiply.Modifiers)
	assert.Empty(t, multiply.Doc)

	noArgs := findFn(t, fns, "no_args")
	assert.Empty(t, noArgs.Arguments)
	assert.Equal(t, "void", noArgs.ReturnType)
}

func TestCExtract_StructHelpers(t *testing.T) {
	src := `typedef struct {
    int result;
} Calculator;

Calculator* create_calculator() {
    Calculator* calc = 0;
    return calc;
}

int calculator_add(Calculator* calc, int x, int y) {
    calc->result = x + y;
    return calc->result;
}
`
	fns := extractSrc(t, "c", src)
	require.Len(t, fns, 2)

	ctor := findFn(t, fns, "create_calculator")
	assert.Equal(t, "Calculator", ctor.ReturnType)

	add := findFn(t, fns, "calculator_add")
	assert.Equal(t, []string{"calc", "x", "y"}, add.Arguments)
}
