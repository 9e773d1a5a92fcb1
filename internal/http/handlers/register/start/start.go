// Package start реализует HTTP-обработчик начала регистрации.
//
// Создается пустой черновик анкеты на первом шаге; его идентификатор
// клиент передает во все последующие запросы регистрации.
package start

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/registration"
)

// Handler обрабатывает HTTP-запросы начала регистрации.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Start(ctx context.Context) (*registration.Draft, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Начать регистрацию
// @Description Создает пустой черновик анкеты на первом шаге.
// @Tags Register
// @Produce json
// @Success 200 {object} response.Response "Созданный черновик"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.register.start"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	draft, err := h.service.Start(r.Context())
	if err != nil {
		log.Error("failed to start registration", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("registration draft created", slog.String("draft_id", draft.ID))
	render.JSON(w, r, response.StatusOKWithData(draft))
}
