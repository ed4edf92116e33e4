package errors

import "net/http"

// APIError interface for custom error types
type APIError interface {
	error
	Status() int
}

// KimlikError authentication hatası için custom error type
type KimlikError struct {
	Message string
}

func (e *KimlikError) Error() string {
	return e.Message
}

func (e *KimlikError) Status() int {
	return http.StatusUnauthorized
}

// YetkiError authorization hatası için custom error type
type YetkiError struct {
	Message  string
	Code     string // reddedilen yetki kodu
	Resource string
}

func (e *YetkiError) Error() string {
	return e.Message
}

func (e *YetkiError) Status() int {
	return http.StatusForbidden
}

// DogrulamaError istek doğrulama hatası için custom error type
type DogrulamaError struct {
	Message string
	Field   string
}

func (e *DogrulamaError) Error() string {
	return e.Message
}

func (e *DogrulamaError) Status() int {
	return http.StatusBadRequest
}
