// Package list реализует HTTP-обработчик списков участников для панели
// администратора.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/models"
)

// Handler обрабатывает HTTP-запросы списков участников.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики участников.
type Service interface {
	ListByStatus(ctx context.Context, status models.UserStatus) ([]*models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Участники по статусу
// @Description Возвращает участников с заданным статусом; по умолчанию pending.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус учётной записи" Enums(pending, approved, rejected)
// @Success 200 {object} response.Response "Список участников"
// @Failure 400 {object} response.ErrorResponse "Неизвестный статус"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/members [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.member.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := models.UserStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.UserStatusPending
	}
	if !status.Valid() {
		log.Error("unknown user status", slog.String("status", string(status)))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown user status"))
		return
	}

	members, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		log.Error("failed to list members", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	if members == nil {
		members = []*models.User{}
	}
	render.JSON(w, r, response.StatusOKWithData(members))
}
