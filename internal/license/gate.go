// Package license решает, может ли пользователь работать с приложением,
// по его роли и лицензии.
package license

import (
	"time"

	"github.com/magabrotheeeer/trainer-memberships/internal/models"
)

// Reason — причина решения проверки лицензии.
type Reason string

const (
	// ReasonUnauthenticated — пользователь не вошёл в систему.
	ReasonUnauthenticated Reason = "unauthenticated"
	// ReasonSuperuser — суперпользователь проходит без лицензии.
	ReasonSuperuser Reason = "superuser"
	// ReasonNoLicense — у тренера нет лицензии.
	ReasonNoLicense Reason = "no_license"
	// ReasonExpired — лицензия истекла или отозвана.
	ReasonExpired Reason = "expired"
	// ReasonValid — лицензия действует.
	ReasonValid Reason = "valid"
)

// Decision — результат проверки. Отказ — это штатное состояние, не ошибка.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  Reason `json:"reason"`
}

// Evaluate применяет правила по порядку: нет пользователя — отказ;
// суперпользователь — доступ; нет лицензии — отказ; истёкшая по дате
// или по статусу лицензия — отказ; иначе доступ.
func Evaluate(user *models.User, lic *models.License, now time.Time) Decision {
	if user == nil {
		return Decision{Allowed: false, Reason: ReasonUnauthenticated}
	}
	if user.Role == models.RoleSuperuser {
		return Decision{Allowed: true, Reason: ReasonSuperuser}
	}
	if lic == nil {
		return Decision{Allowed: false, Reason: ReasonNoLicense}
	}
	if lic.ExpiryDate.Before(now) || lic.Status == models.LicenseExpired {
		return Decision{Allowed: false, Reason: ReasonExpired}
	}
	return Decision{Allowed: true, Reason: ReasonValid}
}

// CanAccess — короткая форма Evaluate.
func CanAccess(user *models.User, lic *models.License, now time.Time) bool {
	return Evaluate(user, lic, now).Allowed
}
