package util

import (
	"strings"
	"testing"
)

func TestMissingQuestionsError(t *testing.T) {
	err := MissingQuestionsError([]uint{3, 7}, []uint{99})

	if err.Kind != KindValidation {
		t.Errorf("kind = %v, want KindValidation", err.Kind)
	}

	msg := err.Error()
	for _, want := range []string{"missing answer for question 3", "missing answer for question 7", "unknown question 99"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q should contain %q", msg, want)
		}
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	inner := NewValidationError("inner")
	outer := NewUnexpectedError(inner)

	if outer.Unwrap() != inner {
		t.Error("Unwrap should return the wrapped error")
	}
}
