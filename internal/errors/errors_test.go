package errors

import (
	"bytes"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "duplicate name",
			code:    CodeDuplicateName,
			wantMsg: "Duplicate property or event name",
			wantCat: CategoryDeclaration,
		},
		{
			name:    "chain target",
			code:    CodeChainTarget,
			wantMsg: "Chained link is not a trackable object",
			wantCat: CategoryChain,
		},
		{
			name:    "config",
			code:    CodeConfigInvalid,
			wantMsg: "Invalid configuration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "VT999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			assert.Equal(t, tt.wantMsg, err.Message)
			assert.Equal(t, tt.wantCat, err.Category)
			assert.Equal(t, tt.code, err.Code)
		})
	}
}

func TestTrackErrorError(t *testing.T) {
	assert.Equal(t, "VT003: Unknown property", New(CodeUnknownProperty).Error())
	assert.Equal(t, "plain 7", Newf(CategoryCLI, "plain %d", 7).Error())
}

type codedError struct{}

func (codedError) Error() string { return "no property \"q\"" }
func (codedError) Code() string  { return CodeUnknownProperty }

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil, CodeServe))

	te := FromError(codedError{}, CodeServe)
	assert.Equal(t, CodeUnknownProperty, te.Code)
	assert.Equal(t, `no property "q"`, te.Detail)
	assert.True(t, stderrors.Is(te, codedError{}))

	plain := stderrors.New("listen failed")
	te = FromError(plain, CodeServe)
	assert.Equal(t, CodeServe, te.Code)
	require.ErrorIs(t, te, plain)

	original := New(CodeDisposed)
	assert.Same(t, original, FromError(original, CodeServe))
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	out := New(CodeDuplicateName).WithDetail(`"x" is already a property`).Format()
	assert.Contains(t, out, "ERROR VT001: Duplicate property or event name")
	assert.Contains(t, out, `"x" is already a property`)
	assert.Contains(t, out, "Hint: Property and event names share one namespace")
	assert.Contains(t, out, "Category: declaration")
}

func TestFormatCompact(t *testing.T) {
	out := New(CodeReadonly).WithDetail("x").FormatCompact()
	assert.Equal(t, "VT006: Readonly stream (x)", out)
}

func TestFprint(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	Fprint(&buf, codedError{}, CodeServe)
	assert.True(t, strings.Contains(buf.String(), "VT003"))
}

func TestGetTemplate(t *testing.T) {
	_, ok := GetTemplate("VT998")
	assert.False(t, ok)

	tpl, ok := GetTemplate(CodeConfigExists)
	require.True(t, ok)
	assert.Equal(t, CategoryCLI, tpl.Category)
	assert.Contains(t, GetAllCodes(), CodeConfigExists)
}

func TestWrapText(t *testing.T) {
	assert.Nil(t, wrapText("", 10))
	assert.Equal(t, []string{"short"}, wrapText("short", 10))
	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 8))
}
