// Package localdate содержит арифметику календарных дат без привязки к часовому поясу.
//
// Календарная дата хранится в time.Time как полночь в UTC. Разбор строки никогда
// не проходит через перевод между поясами, поэтому дата не «съезжает» на сутки
// около полуночи при ненулевом смещении сервера.
package localdate

import (
	"fmt"
	"math"
	"time"
)

// Layout — формат сериализации даты, YYYY-MM-DD.
const Layout = "2006-01-02"

// Parse разбирает дату в формате YYYY-MM-DD.
func Parse(s string) (time.Time, error) {
	const op = "localdate.Parse"
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// Format возвращает дату в формате YYYY-MM-DD с ведущими нулями.
func Format(d time.Time) string {
	return Of(d).Format(Layout)
}

// Of отбрасывает время суток и пояс, оставляя календарную дату d.
func Of(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
}

// Today возвращает календарную дату момента now в поясе loc.
func Today(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return Of(now.In(loc))
}

// AddMonths прибавляет к дате целое число месяцев.
//
// Переполнение дня месяца нормализуется как в time.AddDate:
// 31 января + 1 месяц = 3 марта (2 марта в високосный год).
// Все вычисления дат окончания в проекте идут только через эту функцию.
func AddMonths(d time.Time, months int) time.Time {
	return Of(d).AddDate(0, months, 0)
}

// DaysBetween возвращает ceil((to - from) / 24h) для календарных дат.
func DaysBetween(from, to time.Time) int {
	diff := Of(to).Sub(Of(from))
	return int(math.Ceil(diff.Hours() / 24))
}
