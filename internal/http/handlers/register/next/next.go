// Package next реализует HTTP-обработчик продвижения анкеты на следующий шаг.
//
// Текущий шаг проверяется целиком; при нарушениях черновик остается на
// месте, а клиент получает карту ошибок по именам полей.
package next

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

// Handler обрабатывает HTTP-запросы продвижения анкеты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Next(ctx context.Context, id string) (*registration.Draft, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Перейти к следующему шагу
// @Description Проверяет текущий шаг анкеты и продвигает черновик при успехе.
// @Tags Register
// @Produce json
// @Param id path string true "Идентификатор черновика"
// @Success 200 {object} response.Response "Черновик на следующем шаге"
// @Failure 404 {object} response.ErrorResponse "Черновик не найден или истек"
// @Failure 422 {object} response.Response "Ошибки валидации текущего шага"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register/{id}/next [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.register.next"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	draftID := chi.URLParam(r, "id")

	draft, err := h.service.Next(r.Context(), draftID)
	if err != nil {
		if errors.Is(err, registration.ErrDraftNotFound) {
			log.Warn("draft not found", slog.String("draft_id", draftID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("registration draft not found or expired"))
			return
		}
		log.Error("failed to advance draft", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	if len(draft.Errors) > 0 {
		log.Info("step validation failed",
			slog.String("draft_id", draftID), slog.Int("step", draft.Step))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FieldErrors("step validation failed", draft.Errors))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(draft))
}
