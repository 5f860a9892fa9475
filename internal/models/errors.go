// Package models определяет доменные ошибки, по которым обработчики
// выбирают HTTP-статус ответа. Тексты ошибок уходят клиенту как есть.
package models

import "errors"

var (
	// ErrEmailTaken — пользователь с таким email уже зарегистрирован.
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials — неверный email или пароль.
	// Текст одинаков для обоих случаев, чтобы не раскрывать, что именно не совпало.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUserNotFound — пользователь не найден.
	ErrUserNotFound = errors.New("user not found")
	// ErrEventNotFound — событие не найдено.
	ErrEventNotFound = errors.New("event not found")
	// ErrNotOwner — событие принадлежит другому пользователю.
	ErrNotOwner = errors.New("not your event")
	// ErrPastEvent — событие уже прошло, изменять и удалять его нельзя.
	ErrPastEvent = errors.New("cannot modify past events")
	// ErrInvalidDate — дата события не распарсилась.
	ErrInvalidDate = errors.New("invalid event date")
)
