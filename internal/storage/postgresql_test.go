package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/eventsity/internal/models"
)

func TestStorage_Users(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()

	t.Run("register and read user", func(t *testing.T) {
		phone := "+79991234567"
		uid, err := storage.RegisterUser(ctx, models.User{
			Email:        "user@example.com",
			PasswordHash: "hashedpassword",
			Name:         "Иван",
			Phone:        &phone,
		})
		require.NoError(t, err)
		require.NotEmpty(t, uid)

		byEmail, err := storage.GetUserByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.Equal(t, uid, byEmail.UID)
		assert.Equal(t, "Иван", byEmail.Name)
		require.NotNil(t, byEmail.Phone)
		assert.Equal(t, phone, *byEmail.Phone)
		assert.Nil(t, byEmail.ProfilePhoto)

		byUID, err := storage.GetUser(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, "user@example.com", byUID.Email)
	})

	t.Run("exists by email", func(t *testing.T) {
		exists, err := storage.UserExistsByEmail(ctx, "user@example.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = storage.UserExistsByEmail(ctx, "ghost@example.com")
		require.NoError(t, err)
		assert.False(t, exists)

		// Сравнение точное, другой регистр не совпадает.
		exists, err = storage.UserExistsByEmail(ctx, "USER@example.com")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := storage.GetUserByEmail(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("update profile keeps photo when nil", func(t *testing.T) {
		factory := NewTestDataFactory(storage)
		uid := factory.CreateUser(t, "photo@example.com", "Пётр")

		photo := "/uploads/photo-abc.png"
		updated, err := storage.UpdateUserProfile(ctx, uid, "Пётр", nil, &photo)
		require.NoError(t, err)
		require.NotNil(t, updated.ProfilePhoto)
		assert.Equal(t, photo, *updated.ProfilePhoto)

		// Повторное обновление без фото не стирает сохранённое.
		phone := "+79990000000"
		updated, err = storage.UpdateUserProfile(ctx, uid, "Пётр Второй", &phone, nil)
		require.NoError(t, err)
		assert.Equal(t, "Пётр Второй", updated.Name)
		require.NotNil(t, updated.ProfilePhoto)
		assert.Equal(t, photo, *updated.ProfilePhoto)
	})

	t.Run("update profile of unknown user", func(t *testing.T) {
		_, err := storage.UpdateUserProfile(ctx, "00000000-0000-0000-0000-000000000000", "Никто", nil, nil)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})
}

func TestStorage_Events(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	ctx := context.Background()
	factory := NewTestDataFactory(storage)
	ownerUID := factory.CreateUser(t, "owner@example.com", "Иван")
	otherUID := factory.CreateUser(t, "other@example.com", "Пётр")

	t.Run("create and read event", func(t *testing.T) {
		created, err := storage.CreateEntry(ctx, GetTestEvent(ownerUID))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, models.StatusPublished, created.Status)
		assert.Equal(t, ownerUID, created.CreatorUID)
		assert.False(t, created.CreatedAt.Time().IsZero())

		read, err := storage.ReadEntry(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.Title, read.Title)
		require.NotNil(t, read.Description)
		assert.Equal(t, "Живой концерт", *read.Description)
	})

	t.Run("read missing event", func(t *testing.T) {
		_, err := storage.ReadEntry(ctx, 99999)
		assert.ErrorIs(t, err, models.ErrEventNotFound)
	})

	t.Run("search by substring and status", func(t *testing.T) {
		future := time.Now().Add(48 * time.Hour)
		factory.CreateEvent(t, "Выставка современного искусства", ownerUID, future, models.StatusPublished)
		factory.CreateEvent(t, "Черновик выставки", ownerUID, future, models.StatusDraft)

		found, err := storage.SearchEntrys(ctx, "выставка", models.StatusPublished)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Выставка современного искусства", found[0].Title)

		// Тот же запрос по другому статусу находит черновик.
		found, err = storage.SearchEntrys(ctx, "выставка", models.StatusDraft)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "Черновик выставки", found[0].Title)

		// Пустой запрос совпадает со всеми событиями статуса.
		found, err = storage.SearchEntrys(ctx, "", models.StatusDraft)
		require.NoError(t, err)
		assert.NotEmpty(t, found)
	})

	t.Run("guarded update rewrites own future event", func(t *testing.T) {
		id := factory.CreateEvent(t, "Старое название", ownerUID,
			time.Now().Add(24*time.Hour), models.StatusDraft)

		entry := GetTestEvent(ownerUID)
		entry.Title = "Новое название"
		updated, err := storage.UpdateEntryGuarded(ctx, id, ownerUID, entry)
		require.NoError(t, err)
		assert.Equal(t, "Новое название", updated.Title)
		assert.Equal(t, ownerUID, updated.CreatorUID)
	})

	t.Run("guarded update rejects foreign event", func(t *testing.T) {
		id := factory.CreateEvent(t, "Чужое событие", ownerUID,
			time.Now().Add(24*time.Hour), models.StatusPublished)

		_, err := storage.UpdateEntryGuarded(ctx, id, otherUID, GetTestEvent(otherUID))
		assert.ErrorIs(t, err, models.ErrEventNotFound)

		// Строка не изменилась.
		stored, err := storage.ReadEntry(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Чужое событие", stored.Title)
	})

	t.Run("guarded update rejects past event", func(t *testing.T) {
		id := factory.CreateEvent(t, "Прошедшее событие", ownerUID,
			time.Now().Add(-24*time.Hour), models.StatusCompleted)

		_, err := storage.UpdateEntryGuarded(ctx, id, ownerUID, GetTestEvent(ownerUID))
		assert.ErrorIs(t, err, models.ErrEventNotFound)
	})

	t.Run("guarded remove deletes own future event", func(t *testing.T) {
		id := factory.CreateEvent(t, "На удаление", ownerUID,
			time.Now().Add(24*time.Hour), models.StatusPublished)

		count, err := storage.RemoveEntryGuarded(ctx, id, ownerUID)
		require.NoError(t, err)
		assert.Equal(t, 1, count)

		_, err = storage.ReadEntry(ctx, id)
		assert.ErrorIs(t, err, models.ErrEventNotFound)
	})

	t.Run("guarded remove keeps foreign and past events", func(t *testing.T) {
		foreignID := factory.CreateEvent(t, "Чужое на удаление", ownerUID,
			time.Now().Add(24*time.Hour), models.StatusPublished)
		pastID := factory.CreateEvent(t, "Прошедшее на удаление", ownerUID,
			time.Now().Add(-24*time.Hour), models.StatusCompleted)

		count, err := storage.RemoveEntryGuarded(ctx, foreignID, otherUID)
		require.NoError(t, err)
		assert.Zero(t, count)

		count, err = storage.RemoveEntryGuarded(ctx, pastID, ownerUID)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
