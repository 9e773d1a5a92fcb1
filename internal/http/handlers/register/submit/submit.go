// Package submit реализует HTTP-обработчик финальной отправки анкеты.
//
// Последний шаг проверяется повторно; при успехе создается учётная запись
// со статусом pending, и до одобрения администратором вход в защищённые
// разделы не открывается.
package submit

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

// Handler обрабатывает HTTP-запросы отправки анкеты.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Submit(ctx context.Context, id string) (string, *registration.Draft, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отправить анкету
// @Description Повторно проверяет последний шаг и создает учётную запись со статусом pending.
// @Tags Register
// @Produce json
// @Param id path string true "Идентификатор черновика"
// @Success 200 {object} response.Response "UID созданной учётной записи"
// @Failure 404 {object} response.ErrorResponse "Черновик не найден или истек"
// @Failure 422 {object} response.Response "Ошибки валидации последнего шага"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /register/{id}/submit [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.register.submit"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	draftID := chi.URLParam(r, "id")

	userUID, failed, err := h.service.Submit(r.Context(), draftID)
	if err != nil {
		if errors.Is(err, registration.ErrDraftNotFound) {
			log.Warn("draft not found", slog.String("draft_id", draftID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("registration draft not found or expired"))
			return
		}
		// Черновик сохранён, отправку можно повторить.
		log.Error("failed to submit registration", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	if failed != nil {
		log.Info("submit validation failed", slog.String("draft_id", draftID))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.FieldErrors("step validation failed", failed.Errors))
		return
	}

	log.Info("registration submitted",
		slog.String("draft_id", draftID), slog.String("user_uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"user_uid": userUID,
		"status":   "pending",
	}))
}
