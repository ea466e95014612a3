package membership

import (
	"time"

	"github.com/magabrotheeeer/trainer-memberships/internal/lib/localdate"
)

// Clock — источник текущей календарной даты.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

// SystemClock берёт время из time.Now и считает дату в поясе Location.
type SystemClock struct {
	Location *time.Location
}

// NewSystemClock создаёт часы для пояса loc; nil означает UTC.
func NewSystemClock(loc *time.Location) *SystemClock {
	return &SystemClock{Location: loc}
}

// Now возвращает текущий момент.
func (c *SystemClock) Now() time.Time {
	return time.Now()
}

// Today возвращает текущую календарную дату.
func (c *SystemClock) Today() time.Time {
	return localdate.Today(time.Now(), c.Location)
}

// FixedClock всегда возвращает один и тот же момент. Нужен в тестах.
type FixedClock struct {
	At       time.Time
	Location *time.Location
}

// Now возвращает зафиксированный момент.
func (c FixedClock) Now() time.Time {
	return c.At
}

// Today возвращает календарную дату зафиксированного момента.
func (c FixedClock) Today() time.Time {
	return localdate.Today(c.At, c.Location)
}
