package clock

import "time"

// Clock отдаёт текущее время. Бизнес-логика никогда не обращается
// к time.Now напрямую, иначе переходы статусов нельзя тестировать
// детерминированно.
type Clock interface {
	Now() time.Time
}

// System использует системные часы.
type System struct{}

func (System) Now() time.Time {
	return time.Now().UTC()
}

// Fixed всегда возвращает одно и то же время. Для тестов.
type Fixed struct {
	Time time.Time
}

func (f Fixed) Now() time.Time {
	return f.Time
}
