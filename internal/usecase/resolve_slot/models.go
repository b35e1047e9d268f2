package resolve_slot

import "time"

// MaxAlternatives ограничение на количество предлагаемых слотов
const MaxAlternatives = 10

// Request модель запроса на предпросмотр слота
type Request struct {
	OwnerID         int64  // 0 - календарь по умолчанию
	Date            string // "2024-01-15" или "01/15/2024"
	Time            string // свободная метка времени
	DurationMinutes int    // 0 - длительность из настроек
	Count           int    // сколько слотов подобрать, 0 - один
}

// Slot предлагаемый слот
type Slot struct {
	Date      string
	TimeLabel string
	Start     time.Time
	End       time.Time
}

// Warning некритичный сбой при загрузке данных календаря
type Warning struct {
	Step    string
	Message string
}

// Response результат предпросмотра
type Response struct {
	Requested       time.Time // время, разобранное из запроса
	DurationMinutes int
	Adjusted        bool // первый слот отличается от запрошенного времени
	Bypassed        bool // корректировка выключена владельцем
	Slots           []Slot
	Warnings        []Warning
}
