// Package verify реализует HTTP-обработчик подтверждения входа администратора
// одноразовым кодом.
package verify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/lib/validate"
	"github.com/nerdshive/membership-portal/internal/services/auth"
)

// Request — структура входных данных для подтверждения входа.
type Request struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// Handler обрабатывает HTTP-запросы подтверждения входа.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики аутентификации.
type Service interface {
	VerifyTwoFactor(ctx context.Context, email, code string) (*auth.LoginResult, error)
}

// New создает новый экземпляр Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validate.New(),
	}
}

// ServeHTTP godoc
// @Summary Подтвердить вход кодом
// @Description Сверяет одноразовый код подтверждения и выдает JWT администратору.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Почта и код подтверждения"
// @Success 200 {object} response.Response "Токен администратора"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Код истек или не совпал"
// @Failure 422 {object} response.Response "Ошибка валидации"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /login/verify [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.verify"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	result, err := h.service.VerifyTwoFactor(r.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, auth.ErrCodeMismatch) || errors.Is(err, auth.ErrInvalidCredentials) {
			log.Warn("verification failed", slog.String("email", req.Email))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("verification code expired or mismatched"))
			return
		}
		log.Error("two-factor verification failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	log.Info("two-factor verification success", slog.String("email", req.Email))
	render.JSON(w, r, response.StatusOKWithData(map[string]any{
		"token": result.Token,
		"role":  result.Role,
		"email": req.Email,
	}))
}
