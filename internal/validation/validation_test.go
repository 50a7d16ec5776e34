package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid", "Margherita", nil},
		{"empty", "", ErrNameRequired},
		{"whitespace only", "   ", ErrNameRequired},
		{"too long", strings.Repeat("x", 256), ErrNameTooLong},
		{"max length ok", strings.Repeat("x", 255), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePrice(t *testing.T) {
	if err := ValidatePrice(0); err != nil {
		t.Fatalf("zero price must be allowed, got %v", err)
	}
	if err := ValidatePrice(150000); err != nil {
		t.Fatalf("positive price must be allowed, got %v", err)
	}
	if err := ValidatePrice(-1); !errors.Is(err, ErrNegativePrice) {
		t.Fatalf("negative price: got %v, want ErrNegativePrice", err)
	}
}

func TestValidateQuantity(t *testing.T) {
	tests := []struct {
		quantity int
		wantErr  bool
	}{
		{1, false},
		{99, false},
		{0, true},
		{-3, true},
	}

	for _, tt := range tests {
		err := ValidateQuantity(tt.quantity)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateQuantity(%d) = %v, wantErr %v", tt.quantity, err, tt.wantErr)
		}
	}
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ErrInvalidQuantity) {
		t.Fatalf("ErrInvalidQuantity must be a validation error")
	}
	if IsValidationError(errors.New("connection refused")) {
		t.Fatalf("arbitrary errors must not be validation errors")
	}
}
