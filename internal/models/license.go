package models

import "time"

// LicenseStatus — статус лицензии тренера.
type LicenseStatus string

const (
	// LicenseActive — лицензия действует.
	LicenseActive LicenseStatus = "active"
	// LicenseExpired — лицензия отозвана или истекла.
	LicenseExpired LicenseStatus = "expired"
)

// License — право тренера пользоваться системой. Создаётся вне сервиса,
// TrainerID пуст, пока ключ не активирован.
type License struct {
	LicenseKey string        `json:"license_key"`
	ExpiryDate time.Time     `json:"expiry_date"`
	Status     LicenseStatus `json:"status"`
	TrainerID  *string       `json:"trainer_id,omitempty"`
}

// DummyRedeem — тело запроса на активацию лицензионного ключа.
type DummyRedeem struct {
	LicenseKey string `json:"license_key" validate:"required"`
}
