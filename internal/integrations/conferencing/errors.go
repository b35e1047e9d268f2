package conferencing

import "errors"

var (
	// ErrNotAuthenticated возвращается, когда у клиента нет токена провайдера
	ErrNotAuthenticated = errors.New("conferencing client: not authenticated")

	// ErrUnauthorized возвращается, когда провайдер отклонил токен
	ErrUnauthorized = errors.New("conferencing client: unauthorized")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("conferencing client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от провайдера
	ErrInvalidResponse = errors.New("conferencing client: invalid response")
)
