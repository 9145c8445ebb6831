package common

import "errors"

var (

	// repository specific errors
	ErrorNotFound = errors.New("not found")

	// service specific errors
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorInvalidToken = errors.New("invalid token")

	// client-facing auth errors; the error text doubles as the message shown
	// to the user, so it must never be empty
	ErrInvalidCredentials = errors.New("credenciais inválidas")
	ErrConnection         = errors.New("erro na conexão, tente novamente")

	// transport errors
	ErrUnavailable = errors.New("server unavailable")
)
