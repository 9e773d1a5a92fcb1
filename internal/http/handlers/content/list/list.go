// Package list реализует HTTP-обработчик справочных документов портала.
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

// Handler обрабатывает HTTP-запросы справочных документов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики справочных документов.
type Service interface {
	List(ctx context.Context) ([]*models.Content, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Справочные документы
// @Description Возвращает все документы портала: FAQ, правила, Wi-Fi, реквизиты оплаты.
// @Tags Content
// @Produce json
// @Success 200 {object} response.Response "Список документов"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /content [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.content.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	docs, err := h.service.List(r.Context())
	if err != nil {
		log.Error("failed to list content", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	if docs == nil {
		docs = []*models.Content{}
	}
	render.JSON(w, r, response.StatusOKWithData(docs))
}
