package models

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateIdentity — у тренера уже есть клиент с таким документом.
	ErrDuplicateIdentity = errors.New("client with this document already exists")
	// ErrInvalidDuration — длительность абонемента должна быть положительной.
	ErrInvalidDuration = errors.New("duration in months must be positive")
	// ErrInvalidDate — дата не в формате YYYY-MM-DD.
	ErrInvalidDate = errors.New("date must be in format YYYY-MM-DD")
	// ErrInvalidDocumentType — неизвестный тип документа.
	ErrInvalidDocumentType = errors.New("unknown document type")
	// ErrClientNotFound — клиента нет или он принадлежит другому тренеру.
	ErrClientNotFound = errors.New("client not found")
	// ErrLicenseNotFound — лицензионный ключ не найден.
	ErrLicenseNotFound = errors.New("license not found")
	// ErrLicenseAlreadyAssigned — ключ уже закреплён за тренером.
	ErrLicenseAlreadyAssigned = errors.New("license already assigned")
	// ErrLicenseExpired — ключ истёк или отозван.
	ErrLicenseExpired = errors.New("license expired")
	// ErrUserExists — имя пользователя или почта заняты.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials — неверная пара логин/пароль.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DuplicateIdentityError описывает конфликт документа клиента.
// ExistingID пуст, если конфликт обнаружило ограничение базы.
type DuplicateIdentityError struct {
	DocumentType DocumentType
	Cedula       string
	ExistingID   string
}

func (e *DuplicateIdentityError) Error() string {
	return fmt.Sprintf("client with document %s-%s already exists", e.DocumentType, e.Cedula)
}

// Is позволяет сравнивать ошибку с ErrDuplicateIdentity через errors.Is.
func (e *DuplicateIdentityError) Is(target error) bool {
	return target == ErrDuplicateIdentity
}
