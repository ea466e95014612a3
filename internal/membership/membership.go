// Package membership вычисляет жизненный цикл абонемента клиента:
// статус по дате окончания и новое окно абонемента при продлении.
//
// Все функции пакета чистые: текущая дата передаётся аргументом.
package membership

import (
	"fmt"
	"time"

	"github.com/magabrotheeeer/trainer-memberships/internal/lib/localdate"
	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// ExpiringWindowDays — сколько дней до окончания абонемент считается истекающим.
const ExpiringWindowDays = 3

// Classify возвращает статус абонемента с датой окончания endDate на дату today.
func Classify(endDate, today time.Time) models.MembershipStatus {
	diff := localdate.DaysBetween(today, endDate)
	switch {
	case diff < 0:
		return models.StatusExpired
	case diff <= ExpiringWindowDays:
		return models.StatusExpiring
	default:
		return models.StatusActive
	}
}

// EndDate вычисляет дату окончания абонемента. Используется и при записи
// нового клиента, и при продлении.
func EndDate(start time.Time, months int) (time.Time, error) {
	const op = "membership.EndDate"
	if months < 1 {
		return time.Time{}, fmt.Errorf("%s: %w", op, models.ErrInvalidDuration)
	}
	return localdate.AddMonths(start, months), nil
}

// Window — окно абонемента после продления.
type Window struct {
	StartDate      time.Time
	EndDate        time.Time
	DurationMonths int
}

// Renew считает новое окно абонемента клиента.
//
// Окно начинается с explicitStart, если она задана, иначе с today.
// Предыдущая дата окончания не учитывается: продление не суммируется
// со старым окном. Верхнюю границу months проверяет вызывающий.
func Renew(_ models.Client, months int, explicitStart *time.Time, today time.Time) (Window, error) {
	const op = "membership.Renew"
	start := localdate.Of(today)
	if explicitStart != nil {
		start = localdate.Of(*explicitStart)
	}
	end, err := EndDate(start, months)
	if err != nil {
		return Window{}, fmt.Errorf("%s: %w", op, err)
	}
	return Window{
		StartDate:      start,
		EndDate:        end,
		DurationMonths: months,
	}, nil
}

// Apply проставляет клиенту статус на дату today и возвращает его.
func Apply(c *models.Client, today time.Time) *models.Client {
	if c == nil {
		return nil
	}
	c.Status = Classify(c.EndDate, today)
	return c
}
