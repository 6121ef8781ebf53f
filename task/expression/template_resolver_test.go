package expression

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/greenscreen-io/go-cobol-task/task/common"
)

func TestTemplateResolver_Resolve(t *testing.T) {
	r := newTemplateResolver([]*common.Secret{{ID: "ibmi_password", Value: "hunter2"}})

	output, err := r.Resolve([]byte("password: <{ .secrets.ibmi_password }>"))

	assert.NoError(t, err)
	assert.Equal(t, "password: hunter2", string(output))
}

func TestTemplateResolver_Resolve_MissingSecret(t *testing.T) {
	input := []byte("value: <{.secrets.abc}> and another: <{.secrets.xyz}>")
	expected := "value: <no value> and another: <no value>"

	output, err := ResolveWithTemplateFunctions(input)

	assert.NoError(t, err)
	assert.Equal(t, expected, string(output))
}

func TestTemplateResolver_Resolve_GetAsBase64(t *testing.T) {
	input := []byte("basic auth: <{ \"username: mySecretValue\" | getAsBase64 }>")
	expected := "basic auth: dXNlcm5hbWU6IG15U2VjcmV0VmFsdWU=" // gitleaks:allow

	output, err := ResolveWithTemplateFunctions(input)

	assert.NoError(t, err)
	assert.Equal(t, expected, string(output))
}

func TestTemplateResolver_Resolve_NestedGetAsBase64(t *testing.T) {
	// inner: "something" -> "c29tZXRoaW5n"
	// outer: "hello c29tZXRoaW5n" -> "aGVsbG8gYzI5dFpYUm9hVzVu"
	input := []byte("ohmy <{ hello <{ something | getAsBase64 }> | getAsBase64 }>")
	expected := "ohmy aGVsbG8gYzI5dFpYUm9hVzVu"

	output, err := ResolveWithTemplateFunctions(input)

	assert.NoError(t, err)
	assert.Equal(t, expected, string(output))
}

func TestTemplateResolver_Resolve_DeeplyNested(t *testing.T) {
	// level 1 (innermost): "inner" -> "aW5uZXI="
	// level 2: "middle aW5uZXI=" -> "bWlkZGxlIGFXNXVaWEk9"
	// level 3 (outermost): "outer bWlkZGxlIGFXNXVaWEk9" -> "b3V0ZXIgYldsa1pHeGxJR0ZYTlhWYVdFazk="
	input := []byte("<{ outer <{ middle <{ inner | getAsBase64 }> | getAsBase64 }> | getAsBase64 }>")
	expected := "b3V0ZXIgYldsa1pHeGxJR0ZYTlhWYVdFazk="

	output, err := ResolveWithTemplateFunctions(input)

	assert.NoError(t, err)
	assert.Equal(t, expected, string(output))
}

func TestTemplateResolver_Resolve_MultipleNested(t *testing.T) {
	// first: "b" -> "Yg==", then "a Yg==" -> "YSBZZz09"
	// second: "y" -> "eQ==", then "x eQ==" -> "eCBlUT09"
	input := []byte("first: <{ a <{ b | getAsBase64 }> | getAsBase64 }> and second: <{ x <{ y | getAsBase64 }> | getAsBase64 }>")
	expected := "first: YSBZZz09 and second: eCBlUT09"

	output, err := ResolveWithTemplateFunctions(input)

	assert.NoError(t, err)
	assert.Equal(t, expected, string(output))
}

func TestTemplateResolver_Resolve_ToUpper(t *testing.T) {
	input := []byte("program: <{ calcint | toUpper }>")
	expected := "program: CALCINT"

	output, err := ResolveWithTemplateFunctions(input)

	assert.NoError(t, err)
	assert.Equal(t, expected, string(output))
}

func TestTemplateResolver_Resolve_NoExpressions(t *testing.T) {
	input := []byte("plain text without expressions")

	output, err := ResolveWithTemplateFunctions(input)

	assert.NoError(t, err)
	assert.Equal(t, string(input), string(output))
}
