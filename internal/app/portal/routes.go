// Package portal собирает HTTP-приложение портала: маршруты, middleware
// и жизненный цикл сервера.
package portal

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	loginhandler "github.com/nerdshive/membership-portal/internal/http/handlers/auth/login"
	logouthandler "github.com/nerdshive/membership-portal/internal/http/handlers/auth/logout"
	mehandler "github.com/nerdshive/membership-portal/internal/http/handlers/auth/me"
	verifyhandler "github.com/nerdshive/membership-portal/internal/http/handlers/auth/verify"
	contentlist "github.com/nerdshive/membership-portal/internal/http/handlers/content/list"
	contentupdate "github.com/nerdshive/membership-portal/internal/http/handlers/content/update"
	joinrequestcreate "github.com/nerdshive/membership-portal/internal/http/handlers/joinrequest/create"
	joinrequestlist "github.com/nerdshive/membership-portal/internal/http/handlers/joinrequest/list"
	joinrequestprocess "github.com/nerdshive/membership-portal/internal/http/handlers/joinrequest/process"
	memberlist "github.com/nerdshive/membership-portal/internal/http/handlers/member/list"
	memberprocess "github.com/nerdshive/membership-portal/internal/http/handlers/member/process"
	paymentcreate "github.com/nerdshive/membership-portal/internal/http/handlers/payment/create"
	paymentlistown "github.com/nerdshive/membership-portal/internal/http/handlers/payment/listown"
	paymentlistpending "github.com/nerdshive/membership-portal/internal/http/handlers/payment/listpending"
	paymentreview "github.com/nerdshive/membership-portal/internal/http/handlers/payment/review"
	planlist "github.com/nerdshive/membership-portal/internal/http/handlers/plan/list"
	querycreate "github.com/nerdshive/membership-portal/internal/http/handlers/query/create"
	querylistall "github.com/nerdshive/membership-portal/internal/http/handlers/query/listall"
	querylistown "github.com/nerdshive/membership-portal/internal/http/handlers/query/listown"
	queryrespond "github.com/nerdshive/membership-portal/internal/http/handlers/query/respond"
	registerfield "github.com/nerdshive/membership-portal/internal/http/handlers/register/field"
	registernext "github.com/nerdshive/membership-portal/internal/http/handlers/register/next"
	registerprevious "github.com/nerdshive/membership-portal/internal/http/handlers/register/previous"
	registerstart "github.com/nerdshive/membership-portal/internal/http/handlers/register/start"
	registersubmit "github.com/nerdshive/membership-portal/internal/http/handlers/register/submit"
	registerupload "github.com/nerdshive/membership-portal/internal/http/handlers/register/upload"
	sessioncheckin "github.com/nerdshive/membership-portal/internal/http/handlers/session/checkin"
	sessioncheckout "github.com/nerdshive/membership-portal/internal/http/handlers/session/checkout"
	sessionlist "github.com/nerdshive/membership-portal/internal/http/handlers/session/list"
	"github.com/nerdshive/membership-portal/internal/http/middlewarectx"
	"github.com/nerdshive/membership-portal/internal/lib/jwt"
	"github.com/nerdshive/membership-portal/internal/registration"
	authservice "github.com/nerdshive/membership-portal/internal/services/auth"
	contentservice "github.com/nerdshive/membership-portal/internal/services/content"
	joinrequestservice "github.com/nerdshive/membership-portal/internal/services/joinrequest"
	memberservice "github.com/nerdshive/membership-portal/internal/services/member"
	sessionservice "github.com/nerdshive/membership-portal/internal/services/membersession"
	paymentservice "github.com/nerdshive/membership-portal/internal/services/payment"
	planservice "github.com/nerdshive/membership-portal/internal/services/plan"
	queryservice "github.com/nerdshive/membership-portal/internal/services/query"
	"github.com/nerdshive/membership-portal/internal/storage/filestore"
)

// Deps — зависимости маршрутов: бизнес-логика и инфраструктура.
type Deps struct {
	Auth         *authservice.Service
	Registration *registration.Service
	Plans        *planservice.Service
	Payments     *paymentservice.Service
	JoinRequests *joinrequestservice.Service
	Queries      *queryservice.Service
	Content      *contentservice.Service
	Members      *memberservice.Service
	Sessions     *sessionservice.Service

	JWTMaker       jwt.Maker
	Denylist       middlewarectx.Denylist
	Files          *filestore.Store
	UploadsBucket  string
	AllowedOrigins []string
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Get("/plans", planlist.New(logger, deps.Plans).ServeHTTP)
		r.Get("/content", contentlist.New(logger, deps.Content).ServeHTTP)
		r.Post("/join-requests", joinrequestcreate.New(logger, deps.JoinRequests).ServeHTTP)

		// Регистрация и вход с ограничением частоты запросов
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Post("/register", registerstart.New(logger, deps.Registration).ServeHTTP)
			r.Post("/register/{id}/field", registerfield.New(logger, deps.Registration).ServeHTTP)
			r.Post("/register/{id}/next", registernext.New(logger, deps.Registration).ServeHTTP)
			r.Post("/register/{id}/previous", registerprevious.New(logger, deps.Registration).ServeHTTP)
			r.Post("/register/{id}/document", registerupload.New(logger, deps.Registration, deps.Files, deps.UploadsBucket).ServeHTTP)
			r.Post("/register/{id}/submit", registersubmit.New(logger, deps.Registration).ServeHTTP)
			r.Post("/login", loginhandler.New(logger, deps.Auth).ServeHTTP)
			r.Post("/login/verify", verifyhandler.New(logger, deps.Auth).ServeHTTP)
		})

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(deps.JWTMaker, deps.Denylist, logger))
			r.Get("/me", mehandler.New(logger, deps.Auth).ServeHTTP)
			r.Post("/logout", logouthandler.New(logger, deps.Auth).ServeHTTP)

			// Личный кабинет: только одобренные участники
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.GateMiddleware(deps.Auth, false, logger))
				r.Post("/payments", paymentcreate.New(logger, deps.Payments).ServeHTTP)
				r.Get("/payments", paymentlistown.New(logger, deps.Payments).ServeHTTP)
				r.Post("/queries", querycreate.New(logger, deps.Queries).ServeHTTP)
				r.Get("/queries", querylistown.New(logger, deps.Queries).ServeHTTP)
				r.Post("/sessions/checkin", sessioncheckin.New(logger, deps.Sessions).ServeHTTP)
				r.Post("/sessions/{id}/checkout", sessioncheckout.New(logger, deps.Sessions).ServeHTTP)
				r.Get("/sessions", sessionlist.New(logger, deps.Sessions).ServeHTTP)
			})

			// Панель администратора
			r.Route("/admin", func(r chi.Router) {
				r.Use(middlewarectx.GateMiddleware(deps.Auth, true, logger))
				r.Get("/members", memberlist.New(logger, deps.Members).ServeHTTP)
				r.Post("/members/{uid}/process", memberprocess.New(logger, deps.Members).ServeHTTP)
				r.Get("/payments", paymentlistpending.New(logger, deps.Payments).ServeHTTP)
				r.Post("/payments/{id}/review", paymentreview.New(logger, deps.Payments).ServeHTTP)
				r.Get("/join-requests", joinrequestlist.New(logger, deps.JoinRequests).ServeHTTP)
				r.Post("/join-requests/{id}/process", joinrequestprocess.New(logger, deps.JoinRequests).ServeHTTP)
				r.Get("/queries", querylistall.New(logger, deps.Queries).ServeHTTP)
				r.Post("/queries/{id}/respond", queryrespond.New(logger, deps.Queries).ServeHTTP)
				r.Put("/content/{id}", contentupdate.New(logger, deps.Content).ServeHTTP)
			})
		})
	})

	// Раздача загруженных документов
	r.Handle("/uploads/*", http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(deps.Files.Dir()))))

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
