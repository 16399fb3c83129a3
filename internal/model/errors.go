package model

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrConflict  = errors.New("conflict")
	ErrEmptyCart = errors.New("cart is empty")
)
