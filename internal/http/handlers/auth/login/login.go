// Package login реализует HTTP-обработчик авторизации пользователя.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventsity/internal/http/response"
	"github.com/magabrotheeeer/eventsity/internal/lib/sl"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// Request — входные данные для авторизации
type Request struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Response — тело успешного ответа: токен и идентификатор пользователя.
type Response struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Service описывает интерфейс бизнес-логики авторизации.
type Service interface {
	Login(ctx context.Context, email, password string) (token, userUID string, err error)
}

// Handler управляет HTTP-запросами на авторизацию.
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
// @Summary Войти в систему
// @Description Проверяет email и пароль, возвращает токен с идентификатором пользователя.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Учётные данные"
// @Success 200 {object} Response "Успешный вход"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Неверный email или пароль"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	token, userUID, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			log.Error("invalid credentials")
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error(models.ErrInvalidCredentials.Error()))
			return
		}
		log.Error("login failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to login"))
		return
	}

	log.Info("user logged in", slog.String("user_uid", userUID))
	render.JSON(w, r, Response{Token: token, UserID: userUID})
}
