// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и дату создания.
// Структура используется в бизнес‑логике и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
type User struct {
	UID          string    // Уникальный идентификатор пользователя
	Email        string    // Электронная почта (логин, уникальная)
	PasswordHash string    // Хэш пароля пользователя
	Name         string    // Отображаемое имя
	Phone        *string   // Телефон (опционально)
	ProfilePhoto *string   // Ссылка на фото профиля (опционально)
	CreatedAt    time.Time // Дата регистрации
}

// Profile представляет публичный профиль пользователя,
// возвращаемый клиенту в JSON-формате.
type Profile struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         string  `json:"name"`
	Phone        *string `json:"phone"`
	ProfilePhoto *string `json:"profilePhoto"`
}

// ProfileOf собирает публичный профиль из полной модели пользователя.
func ProfileOf(u *User) *Profile {
	return &Profile{
		ID:           u.UID,
		Email:        u.Email,
		Name:         u.Name,
		Phone:        u.Phone,
		ProfilePhoto: u.ProfilePhoto,
	}
}
