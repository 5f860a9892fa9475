package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/eventsity/internal/models"
)

type RepoMock struct{ mock.Mock }

func (m *RepoMock) CreateEntry(ctx context.Context, entry models.Event) (*models.Event, error) {
	args := m.Called(ctx, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}
func (m *RepoMock) ReadEntry(ctx context.Context, id int) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}
func (m *RepoMock) ListEntrys(ctx context.Context) ([]*models.Event, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) SearchEntrys(ctx context.Context, query, status string) ([]*models.Event, error) {
	args := m.Called(ctx, query, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}
func (m *RepoMock) UpdateEntryGuarded(ctx context.Context, id int, creatorUID string, entry models.Event) (*models.Event, error) {
	args := m.Called(ctx, id, creatorUID, entry)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}
func (m *RepoMock) RemoveEntryGuarded(ctx context.Context, id int, creatorUID string) (int, error) {
	args := m.Called(ctx, id, creatorUID)
	return args.Int(0), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}
func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}
func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) PublishChange(action string, event *models.Event, actorUID string) error {
	return m.Called(action, event, actorUID).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func validRequest() models.DummyEvent {
	return models.DummyEvent{
		Title:    "Джазовый вечер",
		Date:     "2026-10-01T19:00:00Z",
		Location: "Концертный зал",
		City:     "Москва",
	}
}

func TestEventService_Create(t *testing.T) {
	eventDate := time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		req        models.DummyEvent
		setupMocks func(r *RepoMock, c *CacheMock, n *NotifierMock)
		wantErr    error
	}{
		{
			name: "success create with default status",
			req:  validRequest(),
			setupMocks: func(r *RepoMock, c *CacheMock, n *NotifierMock) {
				r.On("CreateEntry", mock.Anything, mock.MatchedBy(func(e models.Event) bool {
					return e.Title == "Джазовый вечер" &&
						e.Status == models.StatusDraft &&
						e.CreatorUID == "uid-123" &&
						e.Description == nil &&
						e.EventDate.Time().Equal(eventDate)
				})).Return(&models.Event{ID: 42, Title: "Джазовый вечер", CreatorUID: "uid-123"}, nil).Once()

				c.On("Invalidate", "events:all").Return(nil).Once()
				n.On("PublishChange", "created", mock.Anything, "uid-123").Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "invalid date",
			req: models.DummyEvent{
				Title:    "Джазовый вечер",
				Date:     "01-10-2026",
				Location: "Концертный зал",
				City:     "Москва",
			},
			setupMocks: func(_ *RepoMock, _ *CacheMock, _ *NotifierMock) {},
			wantErr:    models.ErrInvalidDate,
		},
		{
			name: "storage error",
			req:  validRequest(),
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *NotifierMock) {
				r.On("CreateEntry", mock.Anything, mock.Anything).
					Return(nil, errors.New("db error")).Once()
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			notifier := new(NotifierMock)
			tt.setupMocks(repo, cache, notifier)

			svc := NewEventService(repo, cache, notifier, newNoopLogger())

			created, err := svc.Create(context.Background(), "uid-123", tt.req)
			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Nil(t, created)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 42, created.ID)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestEventService_List(t *testing.T) {
	events := []*models.Event{{ID: 1, Title: "Джазовый вечер"}}

	t.Run("cache miss reads storage and fills cache", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		cache.On("Get", "events:all", mock.Anything).Return(false, nil).Once()
		repo.On("ListEntrys", mock.Anything).Return(events, nil).Once()
		cache.On("Set", "events:all", mock.Anything, time.Minute).Return(nil).Once()

		svc := NewEventService(repo, cache, new(NotifierMock), newNoopLogger())

		got, err := svc.List(context.Background())
		assert.NoError(t, err)
		assert.Len(t, got, 1)

		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache error falls back to storage", func(t *testing.T) {
		repo := new(RepoMock)
		cache := new(CacheMock)

		cache.On("Get", "events:all", mock.Anything).
			Return(false, errors.New("redis down")).Once()
		repo.On("ListEntrys", mock.Anything).Return(events, nil).Once()
		cache.On("Set", "events:all", mock.Anything, time.Minute).Return(nil).Once()

		svc := NewEventService(repo, cache, new(NotifierMock), newNoopLogger())

		got, err := svc.List(context.Background())
		assert.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestEventService_Search(t *testing.T) {
	t.Run("empty status defaults to published", func(t *testing.T) {
		repo := new(RepoMock)

		repo.On("SearchEntrys", mock.Anything, "джаз", models.StatusPublished).
			Return([]*models.Event{{ID: 1}}, nil).Once()

		svc := NewEventService(repo, new(CacheMock), new(NotifierMock), newNoopLogger())

		got, err := svc.Search(context.Background(), "джаз", "")
		assert.NoError(t, err)
		assert.Len(t, got, 1)
		repo.AssertExpectations(t)
	})

	t.Run("explicit status passed through", func(t *testing.T) {
		repo := new(RepoMock)

		repo.On("SearchEntrys", mock.Anything, "джаз", models.StatusDraft).
			Return([]*models.Event(nil), nil).Once()

		svc := NewEventService(repo, new(CacheMock), new(NotifierMock), newNoopLogger())

		_, err := svc.Search(context.Background(), "джаз", models.StatusDraft)
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}

func TestEventService_Update(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock, n *NotifierMock)
		wantErr    error
	}{
		{
			name: "success update",
			setupMocks: func(r *RepoMock, c *CacheMock, n *NotifierMock) {
				r.On("UpdateEntryGuarded", mock.Anything, 123, "uid-123", mock.AnythingOfType("models.Event")).
					Return(&models.Event{ID: 123, Title: "Джазовый вечер", CreatorUID: "uid-123"}, nil).Once()
				c.On("Invalidate", "events:all").Return(nil).Once()
				n.On("PublishChange", "updated", mock.Anything, "uid-123").Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "guard failed because event is missing",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *NotifierMock) {
				r.On("UpdateEntryGuarded", mock.Anything, 123, "uid-123", mock.AnythingOfType("models.Event")).
					Return(nil, models.ErrEventNotFound).Once()
				r.On("ReadEntry", mock.Anything, 123).
					Return(nil, models.ErrEventNotFound).Once()
			},
			wantErr: models.ErrEventNotFound,
		},
		{
			name: "guard failed because event belongs to another user",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *NotifierMock) {
				r.On("UpdateEntryGuarded", mock.Anything, 123, "uid-123", mock.AnythingOfType("models.Event")).
					Return(nil, models.ErrEventNotFound).Once()
				r.On("ReadEntry", mock.Anything, 123).
					Return(&models.Event{ID: 123, CreatorUID: "uid-456"}, nil).Once()
			},
			wantErr: models.ErrNotOwner,
		},
		{
			name: "guard failed because event date passed",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *NotifierMock) {
				r.On("UpdateEntryGuarded", mock.Anything, 123, "uid-123", mock.AnythingOfType("models.Event")).
					Return(nil, models.ErrEventNotFound).Once()
				r.On("ReadEntry", mock.Anything, 123).
					Return(&models.Event{ID: 123, CreatorUID: "uid-123"}, nil).Once()
			},
			wantErr: models.ErrPastEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			notifier := new(NotifierMock)
			tt.setupMocks(repo, cache, notifier)

			svc := NewEventService(repo, cache, notifier, newNoopLogger())

			updated, err := svc.Update(context.Background(), "uid-123", 123, validRequest())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, updated)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 123, updated.ID)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}

func TestEventService_Remove(t *testing.T) {
	stored := &models.Event{ID: 123, Title: "Джазовый вечер", CreatorUID: "uid-123"}

	tests := []struct {
		name       string
		setupMocks func(r *RepoMock, c *CacheMock, n *NotifierMock)
		wantErr    error
	}{
		{
			name: "success remove",
			setupMocks: func(r *RepoMock, c *CacheMock, n *NotifierMock) {
				r.On("ReadEntry", mock.Anything, 123).Return(stored, nil).Once()
				r.On("RemoveEntryGuarded", mock.Anything, 123, "uid-123").Return(1, nil).Once()
				c.On("Invalidate", "events:all").Return(nil).Once()
				n.On("PublishChange", "deleted", stored, "uid-123").Return(nil).Once()
			},
			wantErr: nil,
		},
		{
			name: "event is missing",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *NotifierMock) {
				r.On("ReadEntry", mock.Anything, 123).
					Return(nil, models.ErrEventNotFound).Once()
			},
			wantErr: models.ErrEventNotFound,
		},
		{
			name: "event belongs to another user",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *NotifierMock) {
				r.On("ReadEntry", mock.Anything, 123).
					Return(&models.Event{ID: 123, CreatorUID: "uid-456"}, nil).Twice()
				r.On("RemoveEntryGuarded", mock.Anything, 123, "uid-123").Return(0, nil).Once()
			},
			wantErr: models.ErrNotOwner,
		},
		{
			name: "event date passed",
			setupMocks: func(r *RepoMock, _ *CacheMock, _ *NotifierMock) {
				r.On("ReadEntry", mock.Anything, 123).
					Return(&models.Event{ID: 123, CreatorUID: "uid-123"}, nil).Twice()
				r.On("RemoveEntryGuarded", mock.Anything, 123, "uid-123").Return(0, nil).Once()
			},
			wantErr: models.ErrPastEvent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(RepoMock)
			cache := new(CacheMock)
			notifier := new(NotifierMock)
			tt.setupMocks(repo, cache, notifier)

			svc := NewEventService(repo, cache, notifier, newNoopLogger())

			err := svc.Remove(context.Background(), "uid-123", 123)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
			cache.AssertExpectations(t)
			notifier.AssertExpectations(t)
		})
	}
}
