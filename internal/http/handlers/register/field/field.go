// Package field реализует HTTP-обработчик изменения поля черновика анкеты.
package field

import (
	"context"
	"encoding/json"
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

// Request — структура входных данных для изменения поля анкеты.
type Request struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// Handler обрабатывает HTTP-запросы изменения полей черновика.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	UpdateField(ctx context.Context, id, field string, value any) (*registration.Draft, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Изменить поле анкеты
// @Description Записывает значение поля черновика. Ошибка этого поля, если была, снимается.
// @Tags Register
// @Accept json
// @Produce json
// @Param id path string true "Идентификатор черновика"
// @Param request body Request true "Имя поля и новое значение"
// @Success 200 {object} response.Response "Обновлённый черновик"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестное поле"
// @Failure 404 {object} response.ErrorResponse "Черновик не найден или истек"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register/{id}/field [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.register.field"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	draftID := chi.URLParam(r, "id")

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	draft, err := h.service.UpdateField(r.Context(), draftID, req.Field, req.Value)
	if err != nil {
		if errors.Is(err, registration.ErrDraftNotFound) {
			log.Warn("draft not found", slog.String("draft_id", draftID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("registration draft not found or expired"))
			return
		}
		log.Error("failed to update field", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(draft))
}
