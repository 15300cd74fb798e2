package app

import (
	"github.com/gin-gonic/gin"
	"github.com/postform/core/internal/config"
	"github.com/postform/core/internal/middleware"
	"github.com/postform/core/internal/modules/auth/user"
	"github.com/postform/core/internal/modules/content/submission"
	"github.com/postform/core/internal/modules/storage/media"
	"github.com/postform/core/internal/pkg/mail"
	pkgredis "github.com/postform/core/internal/pkg/redis"
	"github.com/postform/core/internal/pkg/response"
)

func (a *App) registerRoutes(rc *pkgredis.Client) error {
	r := a.router
	db := a.db
	cfg := a.cfg
	authMW := middleware.Auth(db)

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c)
	})

	// The submission form and its assets.
	r.StaticFile("/submit", "./web/submit.html")
	r.Static("/assets", "./web/static")
	// Uploaded files when local storage is in use.
	r.Static("/static", cfg.StaticDir())

	r.GET("/", func(c *gin.Context) {
		response.OK(c, gin.H{
			"name":    "postform-core",
			"version": "1.0.0",
		})
	})

	store, storage, err := a.buildBlobStore()
	if err != nil {
		return err
	}
	mediaEngine := media.NewEngine(db, store, storage)
	mailer := mail.New(buildMailConfig(cfg))

	userSvc := user.NewService(db)
	subSvc := submission.NewService(
		submission.NewGormDraftStore(db),
		mediaEngine,
		mailer,
		cfg.Site,
		a.logger,
	)

	// OptionalAuth runs exactly once so a session is touched at most once
	// per request; the rate limiter depends on it to spare logged-in users.
	api := r.Group("/api/v1")
	api.Use(middleware.OptionalAuth(db))
	if rc != nil {
		api.Use(middleware.RateLimit(rc.Raw()))
	}
	api.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	user.NewHandler(userSvc).RegisterRoutes(api, authMW)
	submission.NewHandler(subSvc, userSvc).RegisterRoutes(api, authMW)

	return nil
}

// buildBlobStore picks S3 when configured, local disk otherwise.
func (a *App) buildBlobStore() (media.BlobStore, string, error) {
	if a.cfg.S3.Enable {
		store, err := media.NewS3Store(a.cfg.S3)
		if err != nil {
			return nil, "", err
		}
		return store, "s3", nil
	}
	return media.NewLocalStore(a.cfg.StaticDir(), a.cfg.Site.URL), "local", nil
}

// buildMailConfig maps the app config onto the mailer's own config type so
// every caller builds it consistently.
func buildMailConfig(cfg *config.AppConfig) mail.Config {
	return mail.Config{
		Enable:    cfg.Mail.Enable,
		Host:      cfg.Mail.Host,
		Port:      cfg.Mail.Port,
		User:      cfg.Mail.User,
		Pass:      cfg.Mail.Pass,
		From:      cfg.Mail.From,
		ReplyTo:   cfg.Mail.ReplyTo,
		UseResend: cfg.Mail.UseResend,
		ResendKey: cfg.Mail.ResendKey,
	}
}
