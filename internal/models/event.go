// Package models содержит доменные структуры, описывающие событие,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Статусы события. Хранятся в базе как есть и сравниваются точно.
const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusCancelled = "CANCELLED"
	StatusCompleted = "COMPLETED"
)

// Event представляет собой основную модель события,
// используемую в бизнес-логике, хранилище и в JSON-ответах.
// Поле CreatorUID после создания не меняется.
type Event struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Description *string  `json:"description"`
	EventDate   WireTime `json:"event_date"`
	Location    string   `json:"location"`
	City        string   `json:"city"`
	Status      string   `json:"status"`
	CreatorUID  string   `json:"creator_id"`
	CreatedAt   WireTime `json:"created_at"`
}

// DummyEvent используется для приёма данных из JSON-запроса,
// прежде чем конвертировать их в Event.
// Дата приходит строкой, чтобы её можно было валидировать и парсить вручную.
type DummyEvent struct {
	Title       string `json:"title" validate:"required"`                                                // Название события
	Description string `json:"description"`                                                              // Описание (опционально)
	Date        string `json:"date" validate:"required"`                                                 // Дата события в формате RFC3339
	Location    string `json:"location" validate:"required"`                                             // Место проведения
	City        string `json:"city" validate:"required"`                                                 // Город
	Status      string `json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`    // Статус события
}
