// Package previous реализует HTTP-обработчик возврата анкеты на предыдущий шаг.
package previous

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/registration"
)

// Handler обрабатывает HTTP-запросы возврата анкеты назад.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Previous(ctx context.Context, id string) (*registration.Draft, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Вернуться к предыдущему шагу
// @Description Возвращает черновик на предыдущий шаг без повторной проверки, сбрасывая ошибки.
// @Tags Register
// @Produce json
// @Param id path string true "Идентификатор черновика"
// @Success 200 {object} response.Response "Черновик на предыдущем шаге"
// @Failure 404 {object} response.ErrorResponse "Черновик не найден или истек"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register/{id}/previous [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.register.previous"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	draftID := chi.URLParam(r, "id")

	draft, err := h.service.Previous(r.Context(), draftID)
	if err != nil {
		if errors.Is(err, registration.ErrDraftNotFound) {
			log.Warn("draft not found", slog.String("draft_id", draftID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("registration draft not found or expired"))
			return
		}
		log.Error("failed to move draft back", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(draft))
}
