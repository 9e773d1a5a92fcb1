package portal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/nerdshive/membership-portal/internal/cache"
	"github.com/nerdshive/membership-portal/internal/config"
	"github.com/nerdshive/membership-portal/internal/lib/jwt"
	"github.com/nerdshive/membership-portal/internal/lib/smtp"
	"github.com/nerdshive/membership-portal/internal/migrations"
	"github.com/nerdshive/membership-portal/internal/registration"
	authservice "github.com/nerdshive/membership-portal/internal/services/auth"
	contentservice "github.com/nerdshive/membership-portal/internal/services/content"
	joinrequestservice "github.com/nerdshive/membership-portal/internal/services/joinrequest"
	"github.com/nerdshive/membership-portal/internal/services/mailer"
	memberservice "github.com/nerdshive/membership-portal/internal/services/member"
	sessionservice "github.com/nerdshive/membership-portal/internal/services/membersession"
	paymentservice "github.com/nerdshive/membership-portal/internal/services/payment"
	planservice "github.com/nerdshive/membership-portal/internal/services/plan"
	queryservice "github.com/nerdshive/membership-portal/internal/services/query"
	"github.com/nerdshive/membership-portal/internal/storage"
	"github.com/nerdshive/membership-portal/internal/storage/filestore"
)

// App объединяет HTTP-сервер портала и его инфраструктурные подключения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *storage.Storage
	cache  *cache.Cache
}

// New создает приложение: подключается к PostgreSQL и Redis, применяет
// миграции, собирает сервисы и маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := storage.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	files, err := filestore.New(cfg.Uploads.Directory, cfg.Uploads.BaseURL)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	drafts := registration.NewRedisDraftStore(cacheRedis, cfg.Registration.DraftTTL)

	var codeSender authservice.CodeSender
	if cfg.SMTPHost != "" {
		codeSender = mailer.NewService(smtp.NewTransport(cfg), logger)
	}

	authService := authservice.NewService(db, cacheRedis, codeSender, jwtMaker, cfg.TwoFactor.CodeTTL, logger)
	registrationService := registration.NewService(drafts, authService, logger)
	planService := planservice.NewService(db, cacheRedis, logger)
	paymentService := paymentservice.NewService(db, db, logger)
	joinRequestService := joinrequestservice.NewService(db, logger)
	queryService := queryservice.NewService(db, db, logger)
	contentService := contentservice.NewService(db, cacheRedis, logger)
	memberService := memberservice.NewService(db, logger)
	sessionService := sessionservice.NewService(db, db, logger)

	router := chi.NewRouter()

	RegisterRoutes(router, logger, Deps{
		Auth:         authService,
		Registration: registrationService,
		Plans:        planService,
		Payments:     paymentService,
		JoinRequests: joinRequestService,
		Queries:      queryService,
		Content:      contentService,
		Members:      memberService,
		Sessions:     sessionService,

		JWTMaker:       jwtMaker,
		Denylist:       cacheRedis,
		Files:          files,
		UploadsBucket:  cfg.Uploads.Bucket,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до остановки контекста
// либо ошибки сервера. При остановке выполняет graceful shutdown.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		a.db.DB.Close()
		_ = a.cache.Db.Close()
		return err
	}
}
