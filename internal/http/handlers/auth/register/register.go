// Package register реализует HTTP-обработчик регистрации нового пользователя.
//
// Handler принимает JSON-запрос с данными учётной записи, валидирует их,
// вызывает бизнес-логику регистрации и возвращает подписанный токен
// вместе с идентификатором пользователя.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/eventsity/internal/http/response"
	"github.com/magabrotheeeer/eventsity/internal/lib/sl"
	"github.com/magabrotheeeer/eventsity/internal/models"
)

// emailRegex проверяет форму local@domain.tld.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Request — входные данные для регистрации
type Request struct {
	Email    string  `json:"email" validate:"required"`
	Password string  `json:"password" validate:"required,min=6"`
	Name     string  `json:"name" validate:"required"`
	Phone    *string `json:"phone"`
}

// Response — тело успешного ответа: токен и идентификатор пользователя.
type Response struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, email, password, name string, phone *string) (token, userUID string, err error)
}

// Handler управляет HTTP-запросами на регистрацию.
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
// @Summary Зарегистрировать пользователя
// @Description Создает учётную запись и возвращает токен с идентификатором пользователя.
// @Tags Users
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные новой учётной записи"
// @Success 201 {object} Response "Успешная регистрация"
// @Failure 400 {object} response.ErrorResponse "Некорректные данные или занятый email"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /users/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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
	if !emailRegex.MatchString(req.Email) {
		log.Error("invalid email format", slog.String("email", req.Email))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid email"))
		return
	}

	token, userUID, err := h.service.Register(r.Context(), req.Email, req.Password, req.Name, req.Phone)
	if err != nil {
		if errors.Is(err, models.ErrEmailTaken) {
			log.Error("email already registered", slog.String("email", req.Email))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error(models.ErrEmailTaken.Error()))
			return
		}
		log.Error("registration failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to register user"))
		return
	}

	log.Info("registered new user", slog.String("user_uid", userUID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, Response{Token: token, UserID: userUID})
}
