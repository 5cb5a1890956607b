package model

import "errors"

// Виды ошибок, которые сервисы возвращают наружу
var (
	ErrValidation   = errors.New("validation error")
	ErrConflict     = errors.New("seat no longer available")
	ErrStore        = errors.New("booking store error")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)
