// Package listpending реализует HTTP-обработчик списка платежей по статусу
// для панели администратора.
package listpending

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

// Handler обрабатывает HTTP-запросы списка платежей.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики платежей.
type Service interface {
	ListByStatus(ctx context.Context, status models.PaymentStatus) ([]*models.Payment, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Платежи по статусу
// @Description Возвращает платежи с заданным статусом; по умолчанию pending.
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "Статус платежа" Enums(pending, verified, rejected)
// @Success 200 {object} response.Response "Список платежей"
// @Failure 400 {object} response.ErrorResponse "Неизвестный статус"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /admin/payments [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.listpending"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	status := models.PaymentStatus(r.URL.Query().Get("status"))
	if status == "" {
		status = models.PaymentStatusPending
	}
	if !status.Valid() {
		log.Error("unknown payment status", slog.String("status", string(status)))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown payment status"))
		return
	}

	payments, err := h.service.ListByStatus(r.Context(), status)
	if err != nil {
		log.Error("failed to list payments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	if payments == nil {
		payments = []*models.Payment{}
	}
	render.JSON(w, r, response.StatusOKWithData(payments))
}
