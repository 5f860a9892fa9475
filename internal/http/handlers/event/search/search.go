// Package search реализует HTTP-обработчик поиска событий.
//
// Поиск идёт по подстроке в названии, описании, городе и месте проведения;
// статус фильтруется точным совпадением, по умолчанию PUBLISHED.
package search

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/eventsity/internal/http/response"
	"github.com/magabrotheeeer/eventsity/internal/lib/sl"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// Service описывает интерфейс бизнес-логики поиска событий.
type Service interface {
	Search(ctx context.Context, query, status string) ([]*models.Event, error)
}

// Handler управляет HTTP-запросами на поиск событий.
type Handler struct {
	log     *slog.Logger
	service Service
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Поиск событий
// @Description Ищет события по подстроке и статусу.
// @Tags Events
// @Produce  json
// @Security BearerAuth
// @Param query query string false "Подстрока для поиска"
// @Param status query string false "Статус события (по умолчанию PUBLISHED)"
// @Success 200 {array} models.Event "Найденные события"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	query := r.URL.Query().Get("query")
	status := strings.ToUpper(r.URL.Query().Get("status"))

	events, err := h.service.Search(r.Context(), query, status)
	if err != nil {
		log.Error("failed to search events", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to search events"))
		return
	}
	if events == nil {
		events = []*models.Event{}
	}

	render.JSON(w, r, events)
}
