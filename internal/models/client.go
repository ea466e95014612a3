// Package models содержит доменные структуры сервиса: клиента тренера,
// лицензию, пользователя и типы для приёма данных из JSON-запросов.
package models

import "time"

// DocumentType — тип документа, удостоверяющего личность клиента.
type DocumentType string

const (
	// DocumentNational — национальный документ (V).
	DocumentNational DocumentType = "V"
	// DocumentForeign — документ иностранца (E).
	DocumentForeign DocumentType = "E"
)

// Valid сообщает, известен ли тип документа.
func (d DocumentType) Valid() bool {
	return d == DocumentNational || d == DocumentForeign
}

// MembershipStatus — производный статус абонемента клиента.
type MembershipStatus string

const (
	// StatusActive — до окончания абонемента больше трёх дней.
	StatusActive MembershipStatus = "active"
	// StatusExpiring — абонемент заканчивается в ближайшие три дня.
	StatusExpiring MembershipStatus = "expiring"
	// StatusExpired — дата окончания уже прошла.
	StatusExpired MembershipStatus = "expired"
)

// Client представляет клиента (члена зала), принадлежащего одному тренеру.
//
// Status не хранится в базе: он вычисляется при каждом чтении
// по EndDate и текущей дате.
type Client struct {
	ID             string           `json:"id"`
	TrainerID      string           `json:"trainer_id"`
	FullName       string           `json:"full_name"`
	Phone          string           `json:"phone,omitempty"`
	Email          string           `json:"email,omitempty"`
	DocumentType   DocumentType     `json:"document_type"`
	Cedula         string           `json:"cedula"`
	StartDate      time.Time        `json:"start_date"`
	DurationMonths int              `json:"duration_months"`
	EndDate        time.Time        `json:"end_date"`
	Status         MembershipStatus `json:"status,omitempty"`
	CreatedAt      time.Time        `json:"created_at"`
}

// DummyClient используется для приёма данных клиента из JSON-запроса.
// Даты приходят строками в формате YYYY-MM-DD.
type DummyClient struct {
	FullName       string `json:"full_name" validate:"required"`
	Phone          string `json:"phone,omitempty" validate:"omitempty"`
	Email          string `json:"email,omitempty" validate:"omitempty,email"`
	DocumentType   string `json:"document_type" validate:"required,oneof=V E"`
	Cedula         string `json:"cedula" validate:"required,numeric"`
	StartDate      string `json:"start_date" validate:"required"`
	DurationMonths int    `json:"duration_months" validate:"required,gt=0"`
}

// DummyRenewal — тело запроса на продление абонемента.
// StartDate необязательна: без неё окно начинается сегодня.
type DummyRenewal struct {
	DurationMonths int    `json:"duration_months" validate:"required,gt=0,lte=6"`
	StartDate      string `json:"start_date,omitempty" validate:"omitempty"`
}

// ExpiringMembership — сообщение планировщика об истекающем абонементе.
type ExpiringMembership struct {
	TrainerEmail    string    `json:"trainer_email"`
	TrainerUsername string    `json:"trainer_username"`
	ClientID        string    `json:"client_id"`
	ClientName      string    `json:"client_name"`
	ClientPhone     string    `json:"client_phone,omitempty"`
	EndDate         time.Time `json:"end_date"`
	DaysLeft        int       `json:"days_left"`
}
