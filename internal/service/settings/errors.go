package settings

import "errors"

var (
	// ErrSettingsDegraded возвращается вместе с настройками по умолчанию,
	// когда сохраненные настройки прочитать не удалось
	ErrSettingsDegraded = errors.New("settings unavailable: defaults applied")

	// ErrAccessDenied возвращается, когда пользователь не владелец календаря
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
