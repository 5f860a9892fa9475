package models

import (
	"fmt"
	"time"
)

// wireTimeLayout — формат дат на проводе: ISO-8601 в UTC с миллисекундами.
// Мобильный клиент парсит строго этот формат.
const wireTimeLayout = "2006-01-02T15:04:05.000Z"

// WireTime оборачивает time.Time и сериализуется в JSON строго
// в формате wireTimeLayout. При разборе принимает любую RFC3339-строку.
type WireTime time.Time

// Time возвращает обёрнутое значение time.Time.
func (t WireTime) Time() time.Time {
	return time.Time(t)
}

// MarshalJSON сериализует время в UTC с миллисекундной точностью.
func (t WireTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).UTC().Format(wireTimeLayout) + `"`), nil
}

// UnmarshalJSON разбирает RFC3339-строку, включая вариант с миллисекундами.
func (t *WireTime) UnmarshalJSON(data []byte) error {
	const op = "models.WireTime.UnmarshalJSON"
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("%s: not a JSON string", op)
	}
	parsed, err := time.Parse(time.RFC3339, s[1:len(s)-1])
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	*t = WireTime(parsed)
	return nil
}
