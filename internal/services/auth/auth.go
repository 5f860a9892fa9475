// Package services содержит логику бизнес-уровня для работы с пользователями и аутентификацией.
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/eventsity/internal/lib/jwt"
	"github.com/magabrotheeeer/eventsity/internal/lib/password"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// RegisterUser сохраняет нового пользователя и возвращает его UID.
	RegisterUser(ctx context.Context, user models.User) (string, error)

	// UserExistsByEmail сообщает, занят ли email.
	UserExistsByEmail(ctx context.Context, email string) (bool, error)

	// GetUserByEmail возвращает пользователя по email или models.ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по UID или models.ErrUserNotFound.
	GetUser(ctx context.Context, userUID string) (*models.User, error)

	// UpdateUserProfile обновляет имя, телефон и (если photo не nil) фото.
	UpdateUserProfile(ctx context.Context, userUID, name string, phone, photo *string) (*models.User, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// AuthService отвечает за регистрацию, авторизацию, валидацию JWT и профиль.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
	cache    Cache
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker, cache Cache, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
		cache:    cache,
		log:      log,
	}
}

func profileCacheKey(userUID string) string {
	return fmt.Sprintf("profile:%s", userUID)
}

// Register создает нового пользователя с хэшированием пароля
// и возвращает подписанный токен вместе с UID.
// Занятый email (точное совпадение) — models.ErrEmailTaken.
func (s *AuthService) Register(ctx context.Context, email, rawPassword, name string, phone *string) (token, userUID string, err error) {
	exists, err := s.users.UserExistsByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	if exists {
		return "", "", models.ErrEmailTaken
	}

	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return "", "", err
	}
	user := models.User{
		Email:        email,
		PasswordHash: hashed,
		Name:         name,
		Phone:        phone,
	}
	userUID, err = s.users.RegisterUser(ctx, user)
	if err != nil {
		return "", "", err
	}

	token, err = s.jwtMaker.GenerateToken(userUID, email)
	if err != nil {
		return "", "", err
	}
	s.log.Info("registered new user", slog.String("user_uid", userUID))
	return token, userUID, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Неизвестный email и неверный пароль дают одну и ту же ошибку,
// чтобы ответ не раскрывал, что именно не совпало.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (token, userUID string, err error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", "", models.ErrInvalidCredentials
		}
		return "", "", err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", "", models.ErrInvalidCredentials
	}
	token, err = s.jwtMaker.GenerateToken(user.UID, user.Email)
	if err != nil {
		return "", "", err
	}
	return token, user.UID, nil
}

// ValidateToken проверяет JWT и возвращает UID и email пользователя.
// Единственная точка авторизации для всех защищённых операций.
func (s *AuthService) ValidateToken(_ context.Context, token string) (userUID, email string, err error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return "", "", err
	}
	return claims.UserUID, claims.Email, nil
}

// GetProfile возвращает публичный профиль пользователя, используя кеш.
func (s *AuthService) GetProfile(ctx context.Context, userUID string) (*models.Profile, error) {
	var cached *models.Profile
	cacheKey := profileCacheKey(userUID)
	found, err := s.cache.Get(cacheKey, &cached)
	if err != nil {
		s.log.Warn("failed to read profile from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && cached != nil {
		return cached, nil
	}

	user, err := s.users.GetUser(ctx, userUID)
	if err != nil {
		return nil, err
	}
	profile := models.ProfileOf(user)

	if err := s.cache.Set(cacheKey, profile, time.Hour); err != nil {
		s.log.Warn("failed to cache profile", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return profile, nil
}

// UpdateProfile обновляет имя и телефон пользователя; фото заменяется
// только когда photoPath не nil — отсутствующая или пустая загрузка
// не стирает сохранённое фото.
func (s *AuthService) UpdateProfile(ctx context.Context, userUID, name string, phone, photoPath *string) (*models.Profile, error) {
	user, err := s.users.UpdateUserProfile(ctx, userUID, name, phone, photoPath)
	if err != nil {
		return nil, err
	}

	cacheKey := profileCacheKey(userUID)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to invalidate profile cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	s.log.Info("updated user profile", slog.String("user_uid", userUID))
	return models.ProfileOf(user), nil
}
