// Package me реализует HTTP-обработчик профиля текущего пользователя.
//
// Вместе с профилем возвращается исход проверки доступа: по нему клиент
// решает, показывать личный кабинет или экран ожидания одобрения.
package me

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nerdshive/membership-portal/internal/gate"
	"github.com/nerdshive/membership-portal/internal/http/middlewarectx"
	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/models"
)

// Handler обрабатывает HTTP-запросы профиля текущего пользователя.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	GetIdentity(ctx context.Context, userUID string) (*models.User, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{log: log, service: service}
}

// ServeHTTP godoc
// @Summary Профиль текущего пользователя
// @Description Возвращает профиль и исход проверки доступа к личному кабинету.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response "Профиль и исход проверки доступа"
// @Failure 401 {object} response.ErrorResponse "Личность не разрешена"
// @Router /me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.me"

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

	identity, err := h.service.GetIdentity(r.Context(), userUID)
	if err != nil {
		// Токен есть, а профиля нет: считаем личность неразрешённой.
		log.Error("failed to resolve identity", sl.Err(err))
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("authentication required"))
		return
	}

	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"profile": identity,
		"access":  gate.Decide(identity, false, false).String(),
	}))
}
