// Package update реализует HTTP-обработчик изменения события.
//
// Изменять событие может только его создатель и только пока сохранённая
// дата события ещё не прошла. Порядок ошибок фиксированный: сначала
// отсутствие события, затем чужое событие, затем прошедшая дата.
package update

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventsity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventsity/internal/http/response"
	"github.com/magabrotheeeer/eventsity/internal/lib/sl"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// Service описывает интерфейс бизнес-логики изменения события.
type Service interface {
	Update(ctx context.Context, userUID string, id int, req models.DummyEvent) (*models.Event, error)
}

// Handler управляет HTTP-запросами на изменение события.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Изменить событие
// @Description Перезаписывает событие; доступно только создателю и только для будущих событий.
// @Tags Events
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID события"
// @Param request body models.DummyEvent true "Новые данные события"
// @Success 200 {object} models.Event "Обновлённое событие"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или прошедшее событие"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужое событие"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id} [put]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.update"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid event id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid event id"))
		return
	}

	var req models.DummyEvent
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	event, err := h.service.Update(r.Context(), userUID, id, req)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrEventNotFound):
			log.Error("event not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error(models.ErrEventNotFound.Error()))
		case errors.Is(err, models.ErrNotOwner):
			log.Error("event belongs to another user", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error(models.ErrNotOwner.Error()))
		case errors.Is(err, models.ErrPastEvent):
			log.Error("event date already passed", slog.Int("id", id))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(models.ErrPastEvent.Error()))
		case errors.Is(err, models.ErrInvalidDate):
			log.Error("invalid event date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(models.ErrInvalidDate.Error()))
		default:
			log.Error("failed to update event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to update event"))
		}
		return
	}

	log.Info("updated event", slog.Int("id", id))
	render.JSON(w, r, event)
}
