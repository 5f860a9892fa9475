// Package create реализует HTTP-обработчик создания нового события.
package create

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventsity/internal/http/middlewarectx"
	"github.com/magabrotheeeer/eventsity/internal/http/response"
	"github.com/magabrotheeeer/eventsity/internal/lib/sl"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// Service описывает интерфейс бизнес-логики создания события.
type Service interface {
	Create(ctx context.Context, userUID string, req models.DummyEvent) (*models.Event, error)
}

// Handler управляет HTTP-запросами на создание события.
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
// @Summary Создать событие
// @Description Создает новое событие от имени авторизованного пользователя.
// @Tags Events
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyEvent true "Данные события"
// @Success 201 {object} models.Event "Созданное событие"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /events [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.event.create"

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

	event, err := h.service.Create(r.Context(), userUID, req)
	if err != nil {
		if errors.Is(err, models.ErrInvalidDate) {
			log.Error("invalid event date", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(models.ErrInvalidDate.Error()))
			return
		}
		log.Error("failed to create event", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create event"))
		return
	}

	log.Info("created event", slog.Int("id", event.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, event)
}
