// Package listown реализует HTTP-обработчик вопросов текущего участника.
package listown

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nerdshive/membership-portal/internal/http/middlewarectx"
	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/models"
)

// Handler обрабатывает HTTP-запросы вопросов участника.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики вопросов.
type Service interface {
	ListByUser(ctx context.Context, userUID string) ([]*models.Query, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Вопросы участника
// @Description Возвращает вопросы текущего участника с ответами, новые первыми.
// @Tags Queries
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Список вопросов"
// @Failure 401 {object} response.ErrorResponse "Личность не разрешена"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /queries [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.query.listown"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	queries, err := h.service.ListByUser(r.Context(), userUID)
	if err != nil {
		log.Error("failed to list queries", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	if queries == nil {
		queries = []*models.Query{}
	}
	render.JSON(w, r, response.StatusOKWithData(queries))
}
