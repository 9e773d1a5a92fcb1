// Package checkout реализует HTTP-обработчик отметки ухода участника.
package checkout

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nerdshive/membership-portal/internal/http/middlewarectx"
	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/services/membersession"
)

// Handler обрабатывает HTTP-запросы отметок ухода.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики посещений.
type Service interface {
	CheckOut(ctx context.Context, id int, userUID string) error
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Отметить уход
// @Description Закрывает посещение участника, фиксируя длительность. Чужое или уже закрытое посещение не изменяется.
// @Tags Sessions
// @Produce json
// @Security BearerAuth
// @Param id path int true "Идентификатор посещения"
// @Success 200 {object} response.Response "Посещение закрыто"
// @Failure 400 {object} response.ErrorResponse "Некорректный идентификатор"
// @Failure 401 {object} response.ErrorResponse "Личность не разрешена"
// @Failure 409 {object} response.ErrorResponse "Посещение уже закрыто"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /sessions/{id}/checkout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.session.checkout"

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

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		log.Error("invalid session id", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid session id"))
		return
	}

	if err := h.service.CheckOut(r.Context(), id, userUID); err != nil {
		if errors.Is(err, membersession.ErrAlreadyClosed) {
			log.Warn("session already closed", slog.Int("session_id", id))
			w.WriteHeader(http.StatusConflict)
			render.JSON(w, r, response.Error("session already closed"))
			return
		}
		log.Error("failed to check out", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("member checked out",
		slog.Int("session_id", id), slog.String("user_uid", userUID))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{"id": id}))
}
