package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/njprem/Portfolio_APP_BackEnd/internal/config"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/logging"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/media"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/ratelimit"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/minio"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/ports"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/repository/postgres"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/service"
	httpx "github.com/njprem/Portfolio_APP_BackEnd/internal/transport/http"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/transport/mail"
	"github.com/njprem/Portfolio_APP_BackEnd/internal/util"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg := config.Load()

	logCloser, err := logging.Setup(cfg.LogstashTCPAddr)
	if err != nil {
		log.Printf("logstash disabled: %v", err)
	} else {
		defer logCloser.Close()
	}

	db, err := postgres.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect db: %v", err)
	}
	defer db.Close()

	startCtx, cancelStart := context.WithTimeout(context.Background(), time.Minute)
	if err := postgres.Migrate(startCtx, db); err != nil {
		cancelStart()
		log.Fatalf("migrate: %v", err)
	}

	users := postgres.NewUserRepo(db)
	resets := postgres.NewPasswordResetRepo(db)
	blogs := postgres.NewBlogRepo(db)
	recommendations := postgres.NewRecommendationRepo(db)
	contacts := postgres.NewContactRepo(db)

	dispatcher := newMailDispatcher(cfg)
	var resetMailer service.PasswordResetSender
	if dispatcher != nil {
		resetMailer = dispatcher
	}

	jwt := util.NewJWTManager(cfg.JWTSecret, cfg.SessionTTL)
	auth := service.NewAuthService(users, resets, resetMailer, jwt, service.AuthConfig{
		ResetTTL:        cfg.PasswordResetTTL,
		BcryptCost:      cfg.BcryptCost,
		FrontendBaseURL: cfg.FrontendBaseURL,
	})
	bootstrap(startCtx, cfg, auth)
	cancelStart()

	storage := newBlogStorage(cfg)
	blogService := service.NewBlogService(blogs, storage, media.NewInspector(cfg.BlogMediaMaxBytes, cfg.BlogMediaMaxPixels), cfg.MinIOBucketBlog)

	e := httpx.NewRouter(httpx.RouterConfig{
		AllowOrigins:   cfg.AllowOrigins,
		TrustedProxies: cfg.TrustedProxies,
		BodyLimit:      cfg.BodyLimit,
		APIRateLimit:   cfg.APIRateLimit,
		APIRateWindow:  cfg.APIRateWindow,
	})
	httpx.RegisterHealth(e, db)
	httpx.RegisterAuth(e, auth, ratelimit.NewSlidingWindow(cfg.AuthRateLimit, cfg.AuthRateWindow))
	httpx.RegisterAdminUsers(e, auth, service.NewUserAdminService(users))
	httpx.RegisterBlogs(e, auth, blogService)
	httpx.RegisterAdminRecommendations(e, auth, service.NewRecommendationService(recommendations))
	httpx.RegisterAdminContacts(e, auth, service.NewContactService(contacts))
	httpx.RegisterSwagger(e, cfg.SwaggerPath)
	httpx.RegisterPages(e, cfg.StaticDir)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 15 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("portfolio api listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if dispatcher != nil {
		if err := dispatcher.Close(ctx); err != nil {
			log.Printf("mail drain: %v", err)
		}
	}
	log.Println("stopped")
}

// bootstrap purges dead reset tokens and provisions the configured admin.
func bootstrap(ctx context.Context, cfg config.Config, auth *service.AuthService) {
	if n, err := auth.PurgeStaleResets(ctx); err != nil {
		log.Printf("purge reset tokens: %v", err)
	} else if n > 0 {
		log.Printf("purged %d stale reset tokens", n)
	}

	if cfg.AdminEmail == "" {
		return
	}
	changed, err := auth.EnsureAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	switch {
	case err != nil:
		log.Printf("bootstrap admin %s: %v", cfg.AdminEmail, err)
	case changed:
		log.Printf("bootstrap admin %s ready", cfg.AdminEmail)
	}
}

func newMailDispatcher(cfg config.Config) *mail.Dispatcher {
	if !cfg.MailEnabled() {
		log.Println("smtp not configured; password reset links will not be mailed")
		return nil
	}
	sender, err := mail.NewSMTPSender(mail.SMTPConfig{
		Host:       cfg.SMTPHost,
		Port:       strconv.Itoa(cfg.SMTPPort),
		Username:   cfg.SMTPUsername,
		Password:   cfg.SMTPPassword,
		From:       cfg.SMTPFrom,
		UseTLS:     cfg.SMTPUseTLS,
		SkipVerify: cfg.SMTPSkipVerify,
	})
	if err != nil {
		log.Printf("smtp disabled: %v", err)
		return nil
	}
	return mail.NewDispatcher(mail.NewPasswordResetMailer(sender, cfg.PasswordResetTTL), cfg.MailSendTimeout)
}

// newBlogStorage returns nil when MinIO is not configured so media uploads
// answer 503.
func newBlogStorage(cfg config.Config) ports.ObjectStorage {
	if !cfg.MinIOEnabled() {
		return nil
	}
	client, err := minio.NewClient(cfg.MinIOEndpoint, cfg.MinIOAccessKey, cfg.MinIOSecretKey, cfg.MinIOUseSSL)
	if err != nil {
		log.Printf("minio disabled: %v", err)
		return nil
	}
	storage := minio.NewStorage(client, cfg.MinIOPublicURL)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := storage.EnsureBucket(ctx, cfg.MinIOBucketBlog); err != nil {
		log.Printf("minio bucket %s: %v", cfg.MinIOBucketBlog, err)
		return nil
	}
	return storage
}
