package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeElementNotFound, "no element named %q", "Submit")
	if got, want := err.Error(), `ELEMENT_NOT_FOUND: no element named "Submit"`; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	wrapped := Wrap(ErrCodeFileNotFound, fs.ErrNotExist, "open %s", "login.json")
	if got, want := wrapped.Error(), "FILE_NOT_FOUND: open login.json: file does not exist"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if !errors.Is(wrapped, fs.ErrNotExist) {
		t.Error("errors.Is(wrapped, fs.ErrNotExist) = false, want true")
	}
}

func TestIs(t *testing.T) {
	inner := New(ErrCodeInvalidProperty, "width must be a number")
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching", inner, ErrCodeInvalidProperty, true},
		{"other code", inner, ErrCodeInvalidInput, false},
		{"outer code wins", Wrap(ErrCodeInvalidDocument, inner, "element ok"), ErrCodeInvalidDocument, true},
		{"through fmt wrap", fmt.Errorf("set: %w", inner), ErrCodeInvalidProperty, true},
		{"plain", errors.New("boom"), ErrCodeInvalidInput, false},
		{"plain empty code", errors.New("boom"), "", false},
		{"nil", nil, ErrCodeInvalidInput, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(New(ErrCodeUnsupported, "yaml")); got != ErrCodeUnsupported {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeUnsupported)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
	if got := GetCode(nil); got != "" {
		t.Errorf("GetCode(nil) = %q, want empty", got)
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{ErrCodeInvalidInput, ExitInput},
		{ErrCodeInvalidFormat, ExitInput},
		{ErrCodeInvalidDocument, ExitInput},
		{ErrCodeInvalidProperty, ExitInput},
		{ErrCodeInvalidPath, ExitInput},
		{ErrCodeUnsupported, ExitInput},
		{ErrCodeElementNotFound, ExitNotFound},
		{ErrCodeFileNotFound, ExitNotFound},
		{ErrCodeInternal, ExitFailure},
		{"", ExitFailure},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.ExitCode(); got != tt.want {
				t.Errorf("ExitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "Logo is locked"), "Logo is locked"},
		{"with cause", Wrap(ErrCodeInvalidDocument, errors.New("unknown parent \"x\""), "record 2"), "record 2: unknown parent \"x\""},
		{"plain", errors.New("plain error"), "plain error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}
