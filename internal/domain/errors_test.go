package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationError_UnwrapsToErrValidation(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("get chapter: %w", NewValidationError("number", "must be >= 0"))

	if !errors.Is(err, ErrValidation) {
		t.Fatalf("errors.Is(err, ErrValidation) = false for %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatal("errors.As(err, *ValidationError) = false")
	}
	if ve.Errors[0].Field != "number" {
		t.Errorf("Field = %q, want %q", ve.Errors[0].Field, "number")
	}
}

func TestValidationError_Message(t *testing.T) {
	t.Parallel()

	single := NewValidationError("slug", "required")
	if got, want := single.Error(), "validation: slug: required"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}

	multi := NewValidationErrors([]FieldError{
		{Field: "book_id", Message: "required"},
		{Field: "number", Message: "must be >= 0"},
	})
	if got, want := multi.Error(), "validation: 2 errors"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
