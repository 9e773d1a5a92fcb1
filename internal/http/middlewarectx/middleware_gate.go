package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/nerdshive/membership-portal/internal/gate"
	"github.com/nerdshive/membership-portal/internal/http/response"
	"github.com/nerdshive/membership-portal/internal/lib/sl"
	"github.com/nerdshive/membership-portal/internal/models"
)

// IdentityService возвращает профиль пользователя по UID.
// Профиль нужен охране разделов: роль и статус в токене могли устареть
// с момента его выдачи.
type IdentityService interface {
	GetIdentity(ctx context.Context, userUID string) (*models.User, error)
}

// GateMiddleware возвращает HTTP middleware, охраняющий защищённые разделы.
// Профиль читается из базы по UID из контекста, после чего исход определяет
// gate.Decide. Ошибка чтения профиля трактуется как отсутствие личности:
// пользователь получает 401, а не доступ.
func GateMiddleware(identities IdentityService, requireAdmin bool, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.GateMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			identity, err := identities.GetIdentity(r.Context(), userUID)
			if err != nil {
				log.Error("failed to resolve identity", sl.Err(err))
				identity = nil
			}

			switch gate.Decide(identity, requireAdmin, false) {
			case gate.DecisionAllow:
				next.ServeHTTP(w, r)
			case gate.DecisionDenied:
				log.Warn("admin section requested by non-admin",
					slog.String("user_uid", userUID))
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("admin access required"))
			case gate.DecisionPendingApproval:
				render.Status(r, http.StatusForbidden)
				render.JSON(w, r, response.Error("account pending approval"))
			default:
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("authentication required"))
			}
		})
	}
}
