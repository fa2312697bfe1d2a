package domain

import "errors"

var (
	ErrEmptyName           = errors.New("list name is empty")
	ErrNoListExists        = errors.New("no shopping list exists")
	ErrListNotFound        = errors.New("shopping list not found")
	ErrNotFound            = errors.New("price alert not found")
	ErrStorageUnavailable  = errors.New("storage unavailable")
	ErrNetworkFailure      = errors.New("network failure")
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrInvalidRadius       = errors.New("search radius must be positive")
)
