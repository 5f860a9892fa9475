// Package logout реализует HTTP-обработчик выхода из системы.
//
// Токены stateless, сервер не хранит сессии, поэтому обработчик только
// подтверждает запрос — клиент сам удаляет сохранённый токен.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
)

// Handler управляет HTTP-запросами на выход из системы.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler с переданным логгером.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Выйти из системы
// @Description Подтверждает выход; состояние на сервере не меняется.
// @Tags Users
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]string "Выход выполнен"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Router /users/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.logout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	log.Info("user logged out")
	render.JSON(w, r, map[string]string{"message": "logged out successfully"})
}
