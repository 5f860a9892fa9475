// Package services содержит бизнес-логику для управления событиями:
// создание, список, поиск и защищённые изменение/удаление с проверкой
// владельца и правила неизменяемости прошедших событий.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/eventsity/internal/models"
)

// listCacheKey — единый ключ кеша для полного списка событий.
const listCacheKey = "events:all"

// EventRepository определяет методы для работы с событиями в хранилище.
type EventRepository interface {
	// CreateEntry добавляет новое событие и возвращает его с присвоенным ID.
	CreateEntry(ctx context.Context, entry models.Event) (*models.Event, error)
	// ReadEntry возвращает событие по ID или models.ErrEventNotFound.
	ReadEntry(ctx context.Context, id int) (*models.Event, error)
	// ListEntrys возвращает список всех событий.
	ListEntrys(ctx context.Context) ([]*models.Event, error)
	// SearchEntrys ищет события по подстроке и точному статусу.
	SearchEntrys(ctx context.Context, query, status string) ([]*models.Event, error)
	// UpdateEntryGuarded перезаписывает событие одним условным запросом;
	// models.ErrEventNotFound, если ни одна строка не прошла проверку.
	UpdateEntryGuarded(ctx context.Context, id int, creatorUID string, entry models.Event) (*models.Event, error)
	// RemoveEntryGuarded удаляет событие тем же условным запросом.
	RemoveEntryGuarded(ctx context.Context, id int, creatorUID string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// Notifier публикует уведомления об изменениях событий.
type Notifier interface {
	PublishChange(action string, event *models.Event, actorUID string) error
}

// EventService реализует бизнес-логику работы с событиями.
type EventService struct {
	repo     EventRepository
	cache    Cache
	notifier Notifier
	log      *slog.Logger
}

// NewEventService создает новый экземпляр EventService.
func NewEventService(repo EventRepository, cache Cache, notifier Notifier, log *slog.Logger) *EventService {
	return &EventService{
		repo:     repo,
		cache:    cache,
		notifier: notifier,
		log:      log,
	}
}

func (s *EventService) invalidateList() {
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate events cache", slog.String("key", listCacheKey), slog.Any("err", err))
	}
}

func (s *EventService) notify(action string, event *models.Event, actorUID string) {
	if err := s.notifier.PublishChange(action, event, actorUID); err != nil {
		s.log.Warn("failed to publish event change", slog.String("action", action), slog.Any("err", err))
	}
}

func entryFromRequest(req models.DummyEvent) (models.Event, error) {
	date, err := time.Parse(time.RFC3339, req.Date)
	if err != nil {
		return models.Event{}, fmt.Errorf("%w: %s", models.ErrInvalidDate, req.Date)
	}
	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}
	var description *string
	if req.Description != "" {
		description = &req.Description
	}
	return models.Event{
		Title:       req.Title,
		Description: description,
		EventDate:   models.WireTime(date.UTC()),
		Location:    req.Location,
		City:        req.City,
		Status:      status,
	}, nil
}

// Create создает новое событие с creator_id текущего пользователя.
func (s *EventService) Create(ctx context.Context, userUID string, req models.DummyEvent) (*models.Event, error) {
	entry, err := entryFromRequest(req)
	if err != nil {
		return nil, err
	}
	entry.CreatorUID = userUID

	created, err := s.repo.CreateEntry(ctx, entry)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new event", slog.Int("id", created.ID))

	s.invalidateList()
	s.notify("created", created, userUID)
	return created, nil
}

// List возвращает все события без фильтрации, используя кеш.
func (s *EventService) List(ctx context.Context) ([]*models.Event, error) {
	var cached []*models.Event
	found, err := s.cache.Get(listCacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read events from cache", slog.String("key", listCacheKey), slog.Any("err", err))
	}
	if found {
		return cached, nil
	}

	entries, err := s.repo.ListEntrys(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(listCacheKey, entries, time.Minute); err != nil {
		s.log.Warn("failed to cache events", slog.String("key", listCacheKey), slog.Any("err", err))
	}
	return entries, nil
}

// Search ищет события по подстроке в названии, описании, городе и месте.
// Пустой статус означает PUBLISHED; сравнение статуса точное.
func (s *EventService) Search(ctx context.Context, query, status string) ([]*models.Event, error) {
	if status == "" {
		status = models.StatusPublished
	}
	return s.repo.SearchEntrys(ctx, query, status)
}

// classifyGuardFailure выясняет, какая из проверок условного запроса не прошла.
// Порядок ошибок фиксированный: отсутствие события, чужое событие, прошедшая дата.
// Чтение только выбирает текст ошибки и никогда не разрешает запись.
func (s *EventService) classifyGuardFailure(ctx context.Context, id int, userUID string) error {
	stored, err := s.repo.ReadEntry(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return models.ErrEventNotFound
		}
		return err
	}
	if stored.CreatorUID != userUID {
		return models.ErrNotOwner
	}
	return models.ErrPastEvent
}

// Update перезаписывает событие после атомарной проверки владельца
// и сохранённой даты. Дата проверяется по хранимому значению,
// а не по приходящей замене.
func (s *EventService) Update(ctx context.Context, userUID string, id int, req models.DummyEvent) (*models.Event, error) {
	entry, err := entryFromRequest(req)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateEntryGuarded(ctx, id, userUID, entry)
	if err != nil {
		if errors.Is(err, models.ErrEventNotFound) {
			return nil, s.classifyGuardFailure(ctx, id, userUID)
		}
		return nil, err
	}
	s.log.Info("updated event", slog.Int("id", id))

	s.invalidateList()
	s.notify("updated", updated, userUID)
	return updated, nil
}

// Remove удаляет событие после той же атомарной проверки, что и Update.
func (s *EventService) Remove(ctx context.Context, userUID string, id int) error {
	stored, err := s.repo.ReadEntry(ctx, id)
	if err != nil {
		return err
	}

	count, err := s.repo.RemoveEntryGuarded(ctx, id, userUID)
	if err != nil {
		return err
	}
	if count == 0 {
		return s.classifyGuardFailure(ctx, id, userUID)
	}
	s.log.Info("deleted event", slog.Int("id", id))

	s.invalidateList()
	s.notify("deleted", stored, userUID)
	return nil
}
