package backend

import "errors"

var (
	// ErrConflict возвращается, когда бэкенд отклонил встречу как пересекающуюся
	ErrConflict = errors.New("backend client: appointment conflict")

	// ErrRejected возвращается, когда бэкенд отклонил payload
	ErrRejected = errors.New("backend client: appointment rejected")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("backend client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("backend client: invalid response")
)
