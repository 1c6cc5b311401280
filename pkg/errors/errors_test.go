package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"
)

func TestNewAndWrap(t *testing.T) {
	err := New(ErrCodeInvalidInput, "padding must be non-negative, got %d", -4)
	if err.Error() != "INVALID_INPUT: padding must be non-negative, got -4" {
		t.Errorf("Error() = %q", err.Error())
	}

	cause := errors.New("disk full")
	wrapped := Wrap(ErrCodeSaveFailed, cause, "save %s", "demo.png")
	if wrapped.Error() != "SAVE_FAILED: save demo.png: disk full" {
		t.Errorf("Error() = %q", wrapped.Error())
	}
	if errors.Unwrap(wrapped) != cause || !errors.Is(wrapped, cause) {
		t.Error("cause not reachable through the standard library")
	}
}

func TestIs(t *testing.T) {
	inner := New(ErrCodeNotMounted, "preview is not mounted")
	chain := Wrap(ErrCodeCaptureFailed, inner, "expand preview")

	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching", inner, ErrCodeNotMounted, true},
		{"non-matching", inner, ErrCodeBusy, false},
		{"outer of chain", chain, ErrCodeCaptureFailed, true},
		{"inner of chain", chain, ErrCodeNotMounted, true},
		{"behind fmt wrap", fmt.Errorf("export: %w", chain), ErrCodeNotMounted, true},
		{"plain", errors.New("plain"), ErrCodeInvalidInput, false},
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
	tests := []struct {
		name string
		err  error
		want Code
	}{
		{"coded", New(ErrCodeInvalidTheme, "x"), ErrCodeInvalidTheme},
		{"outermost wins", Wrap(ErrCodeClipboardFailed, New(ErrCodeUnsupported, "no xclip"), "write"), ErrCodeClipboardFailed},
		{"plain", errors.New("plain"), ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.want {
				t.Errorf("GetCode() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestUserMessage(t *testing.T) {
	perm := &os.PathError{Op: "open", Path: "/out/demo.png", Err: os.ErrPermission}
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"coded", New(ErrCodeInvalidInput, "friendly message"), "friendly message"},
		{"plain", errors.New("plain error"), "plain error"},
		{"wrapped plain cause", Wrap(ErrCodeSaveFailed, perm, "save demo.png"), "save demo.png: open /out/demo.png: permission denied"},
		{"coded chain", Wrap(ErrCodeCaptureFailed, New(ErrCodeNotMounted, "preview is not mounted"), "expand preview"), "expand preview: preview is not mounted"},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeValidation(t *testing.T) {
	for _, c := range []Code{ErrCodeInvalidInput, ErrCodeInvalidColor, ErrCodeInvalidConfig, ErrCodeFileNotFound} {
		if !c.Validation() {
			t.Errorf("%s.Validation() = false", c)
		}
	}
	for _, c := range []Code{ErrCodeCaptureFailed, ErrCodeBusy, ErrCodeUnsupported, ErrCodeInternal, ""} {
		if c.Validation() {
			t.Errorf("%q.Validation() = true", c)
		}
	}
}
