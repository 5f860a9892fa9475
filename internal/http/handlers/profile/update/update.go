// Package update реализует HTTP-обработчик обновления профиля пользователя.
//
// Запрос приходит как multipart/form-data: текстовые поля name и phone
// плюс необязательный файл photo. Отсутствующий или пустой файл не трогает
// сохранённое фото.
package update

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/eventsity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventsity/internal/http/response"
	"github.com/magabrotheeeer/eventsity/internal/lib/sl"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// maxUploadSize ограничивает размер multipart-запроса с фотографией.
const maxUploadSize = 10 << 20

// Service описывает интерфейс бизнес-логики профиля.
type Service interface {
	UpdateProfile(ctx context.Context, userUID, name string, phone, photoPath *string) (*models.Profile, error)
}

// PhotoStore сохраняет загруженное фото и возвращает его публичный путь.
type PhotoStore interface {
	SavePhoto(src io.Reader, originalName string) (string, error)
}

// Handler управляет HTTP-запросами на обновление профиля.
type Handler struct {
	log     *slog.Logger
	service Service
	photos  PhotoStore
}

// New создает новый Handler с переданными логгером, сервисом и хранилищем фото.
func New(log *slog.Logger, service Service, photos PhotoStore) *Handler {
	return &Handler{log: log, service: service, photos: photos}
}

// extractPhoto возвращает сохранённый публичный путь фото или nil,
// когда файл не был передан либо оказался пустым.
func (h *Handler) extractPhoto(r *http.Request) (*string, error) {
	file, header, err := r.FormFile("photo")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer func() { _ = file.Close() }()

	if header.Size == 0 {
		return nil, nil
	}

	path, err := h.photos.SavePhoto(file, header.Filename)
	if err != nil {
		return nil, err
	}
	return &path, nil
}

// ServeHTTP godoc
// @Summary Обновить профиль
// @Description Обновляет имя, телефон и при наличии файла — фото профиля.
// @Tags Users
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param name formData string true "Имя пользователя"
// @Param phone formData string false "Телефон"
// @Param photo formData file false "Фото профиля"
// @Success 200 {object} models.Profile "Обновлённый профиль"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/profile [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.profile.update"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok {
		log.Error("failed to find user uid in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user is not authorized"))
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		log.Error("failed to parse multipart form", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid multipart form"))
		return
	}

	name := r.FormValue("name")
	if name == "" {
		log.Error("empty name in profile update")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("field Name is a required field"))
		return
	}
	var phone *string
	if value := r.FormValue("phone"); value != "" {
		phone = &value
	}

	photoPath, err := h.extractPhoto(r)
	if err != nil {
		log.Error("failed to save photo", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to save photo"))
		return
	}

	profile, err := h.service.UpdateProfile(r.Context(), userUID, name, phone, photoPath)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			log.Error("user not found", slog.String("user_uid", userUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("user not found"))
			return
		}
		log.Error("failed to update profile", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to update profile"))
		return
	}

	log.Info("updated profile", slog.String("user_uid", userUID))
	render.JSON(w, r, profile)
}
