// Package remove реализует HTTP-обработчик удаления события.
//
// Правила доступа те же, что и при изменении: удалить может только
// создатель и только будущее событие.
package remove

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/eventsity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventsity/internal/http/response"
	"github.com/magabrotheeeer/eventsity/internal/lib/sl"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// Service описывает интерфейс бизнес-логики удаления события.
type Service interface {
	Remove(ctx context.Context, userUID string, id int) error
}

// Handler управляет HTTP-запросами на удаление события.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Удалить событие
// @Description Удаляет событие; доступно только создателю и только для будущих событий.
// @Tags Events
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID события"
// @Success 200 {object} map[string]string "Событие удалено"
// @Failure 400 {object} response.ErrorResponse "Прошедшее событие или некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Чужое событие"
// @Failure 404 {object} response.ErrorResponse "Событие не найдено"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.remove"

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

	if err := h.service.Remove(r.Context(), userUID, id); err != nil {
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
		default:
			log.Error("failed to delete event", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete event"))
		}
		return
	}

	log.Info("deleted event", slog.Int("id", id))
	render.JSON(w, r, map[string]string{"message": "event deleted successfully"})
}
