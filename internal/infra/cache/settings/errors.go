package settings

import "errors"

var (
	// ErrCacheMiss возвращается, когда настроек нет в кеше
	ErrCacheMiss = errors.New("settings.cache: miss")

	// ErrCacheUnavailable возвращается при ошибках redis
	ErrCacheUnavailable = errors.New("settings.cache: unavailable")

	// ErrCorruptedEntry возвращается, если значение в кеше не удалось разобрать
	ErrCorruptedEntry = errors.New("settings.cache: corrupted entry")
)
