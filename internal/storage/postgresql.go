// Package storage реализует хранилище данных на основе PostgreSQL
// для управления событиями и пользователями. Предоставляет методы
// создания, чтения, обновления, удаления и поиска событий,
// а также работу с пользователями.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с событиями и пользователями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

const eventColumns = `id, title, description, event_date, location, city, status, creator_id, created_at`

func scanEvent(row interface{ Scan(dest ...any) error }) (*models.Event, error) {
	var e models.Event
	var description sql.NullString
	var eventDate, createdAt time.Time
	if err := row.Scan(&e.ID, &e.Title, &description, &eventDate,
		&e.Location, &e.City, &e.Status, &e.CreatorUID, &createdAt); err != nil {
		return nil, err
	}
	if description.Valid {
		e.Description = &description.String
	}
	e.EventDate = models.WireTime(eventDate)
	e.CreatedAt = models.WireTime(createdAt)
	return &e, nil
}

// ===== EVENT METHODS =====

// CreateEntry вставляет новое событие и возвращает его с присвоенными id и created_at.
func (s *Storage) CreateEntry(ctx context.Context, entry models.Event) (*models.Event, error) {
	const op = "storage.CreateEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO events (title, description, event_date, location, city, status, creator_id, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, now())
			  RETURNING ` + eventColumns
	row := s.DB.QueryRowContext(ctx, query,
		entry.Title, entry.Description, entry.EventDate.Time(), entry.Location,
		entry.City, entry.Status, entry.CreatorUID)
	created, err := scanEvent(row)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return created, nil
}

// ReadEntry возвращает событие по его ID.
func (s *Storage) ReadEntry(ctx context.Context, id int) (*models.Event, error) {
	const op = "storage.ReadEntry"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	result, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListEntrys возвращает список всех событий.
func (s *Storage) ListEntrys(ctx context.Context) ([]*models.Event, error) {
	const op = "storage.ListEntrys"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + eventColumns + ` FROM events ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		item, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// SearchEntrys возвращает события с точным статусом, у которых запрос
// входит подстрокой (без учета регистра) в название, описание, город или место.
// Пустой запрос совпадает со всеми событиями данного статуса.
func (s *Storage) SearchEntrys(ctx context.Context, query, status string) ([]*models.Event, error) {
	const op = "storage.SearchEntrys"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	pattern := "%" + query + "%"
	sqlQuery := `SELECT ` + eventColumns + `
			  FROM events
			  WHERE status = $1
			    AND (title ILIKE $2
			      OR COALESCE(description, '') ILIKE $2
			      OR city ILIKE $2
			      OR location ILIKE $2)
			  ORDER BY id`
	rows, err := s.DB.QueryContext(ctx, sqlQuery, status, pattern)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Event
	for rows.Next() {
		item, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateEntryGuarded перезаписывает событие одним условным запросом:
// строка меняется только если она существует, принадлежит creatorUID
// и её сохранённая дата ещё в будущем. Нулевой результат означает,
// что одна из проверок не прошла — вызывающий код классифицирует причину.
// creator_id и created_at запрос не трогает.
func (s *Storage) UpdateEntryGuarded(ctx context.Context, id int, creatorUID string, entry models.Event) (*models.Event, error) {
	const op = "storage.UpdateEntryGuarded"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE events
			  SET title = $1, description = $2, event_date = $3, location = $4, city = $5, status = $6
			  WHERE id = $7 AND creator_id = $8 AND event_date > now()
			  RETURNING ` + eventColumns
	row := s.DB.QueryRowContext(ctx, query,
		entry.Title, entry.Description, entry.EventDate.Time(), entry.Location,
		entry.City, entry.Status, id, creatorUID)
	updated, err := scanEvent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return updated, nil
}

// RemoveEntryGuarded удаляет событие тем же условным запросом, что и
// UpdateEntryGuarded. Возвращает количество удалённых строк.
func (s *Storage) RemoveEntryGuarded(ctx context.Context, id int, creatorUID string) (int, error) {
	const op = "storage.RemoveEntryGuarded"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM events
			  WHERE id = $1 AND creator_id = $2 AND event_date > now()`
	result, err := s.DB.ExecContext(ctx, query, id, creatorUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ===== USER METHODS =====

// RegisterUser сохраняет нового пользователя в базу данных и возвращает его UID.
func (s *Storage) RegisterUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.RegisterUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (email, password_hash, name, phone)
			  VALUES ($1, $2, $3, $4)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Email, user.PasswordHash, user.Name, user.Phone).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return newUID, nil
}

// UserExistsByEmail проверяет, занят ли email. Сравнение точное,
// с учетом регистра сохранённого значения.
func (s *Storage) UserExistsByEmail(ctx context.Context, email string) (bool, error) {
	const op = "storage.UserExistsByEmail"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	if err := s.DB.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

const userColumns = `uid, email, password_hash, name, phone, profile_photo, created_at`

func scanUser(row interface{ Scan(dest ...any) error }) (*models.User, error) {
	u := &models.User{}
	var phone, photo sql.NullString
	if err := row.Scan(&u.UID, &u.Email, &u.PasswordHash, &u.Name, &phone, &photo, &u.CreatedAt); err != nil {
		return nil, err
	}
	if phone.Valid {
		u.Phone = &phone.String
	}
	if photo.Valid {
		u.ProfilePhoto = &photo.String
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	row := s.DB.QueryRowContext(ctx, query, userUID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// UpdateUserProfile обновляет имя и телефон пользователя. Фото заменяется
// только если photo не nil: COALESCE сохраняет прежнюю ссылку,
// когда новая не передана.
func (s *Storage) UpdateUserProfile(ctx context.Context, userUID, name string, phone, photo *string) (*models.User, error) {
	const op = "storage.UpdateUserProfile"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1, phone = $2, profile_photo = COALESCE($3, profile_photo)
			  WHERE uid = $4
			  RETURNING ` + userColumns
	row := s.DB.QueryRowContext(ctx, query, name, phone, photo, userUID)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}
