// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и роль.
package models

// Role — роль пользователя.
type Role string

const (
	// RoleSuperuser не проходит проверку лицензии.
	RoleSuperuser Role = "superuser"
	// RoleTrainer — обычный тренер.
	RoleTrainer Role = "trainer"
)

// User представляет зарегистрированного пользователя системы.
type User struct {
	UUID         string // Уникальный идентификатор пользователя
	Email        string // Электронная почта
	Username     string // Имя пользователя (уникальное)
	PasswordHash string // Хэш пароля пользователя
	Role         Role   // Роль пользователя, superuser или trainer
}

// DummyRegister — тело запроса на регистрацию.
type DummyRegister struct {
	Username string `json:"username" validate:"required,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// DummyLogin — тело запроса на вход.
type DummyLogin struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
