// Package validation содержит функции валидации входных данных.
package validation

import (
	"errors"
	"strings"
)

// Ошибки валидации. Обработчики отвечают на них кодом 400.
var (
	ErrNameRequired    = errors.New("name is required")
	ErrNameTooLong     = errors.New("name is too long")
	ErrNegativePrice   = errors.New("price must not be negative")
	ErrInvalidQuantity = errors.New("quantity must be a positive integer")
	ErrInvalidStatus   = errors.New("unknown order status")
)

const maxNameLength = 255

// ValidateName проверяет обязательное текстовое имя сущности.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return ErrNameRequired
	}
	if len(trimmed) > maxNameLength {
		return ErrNameTooLong
	}
	return nil
}

// ValidatePrice проверяет цену в копейках.
func ValidatePrice(price int64) error {
	if price < 0 {
		return ErrNegativePrice
	}
	return nil
}

// ValidateQuantity проверяет количество товара в строке корзины.
// Количество 0 недопустимо: удаление строки выполняется отдельной операцией,
// нулевые строки не хранятся.
func ValidateQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	return nil
}

// IsValidationError сообщает, относится ли ошибка к ошибкам валидации входа.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrNameTooLong) ||
		errors.Is(err, ErrNegativePrice) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrInvalidStatus)
}
