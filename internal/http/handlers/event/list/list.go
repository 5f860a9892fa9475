// Package list реализует HTTP-обработчик получения списка всех событий.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/eventsity/internal/http/response"
	"github.com/magabrotheeeer/eventsity/internal/lib/sl"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// Service описывает интерфейс бизнес-логики списка событий.
type Service interface {
	List(ctx context.Context) ([]*models.Event, error)
}

// Handler управляет HTTP-запросами на получение списка событий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Список событий
// @Description Возвращает все события без фильтрации.
// @Tags Events
// @Produce  json
// @Security BearerAuth
// @Success 200 {array} models.Event "Список событий"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	events, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list events"))
		return
	}
	if events == nil {
		events = []*models.Event{}
	}

	render.JSON(w, r, events)
}
