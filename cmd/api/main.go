package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hospitalhq/hospital-api/internal/cache"
	"github.com/hospitalhq/hospital-api/internal/config"
	dbpkg "github.com/hospitalhq/hospital-api/internal/db"
	"github.com/hospitalhq/hospital-api/internal/mailer"
	"github.com/hospitalhq/hospital-api/internal/routes"
	"github.com/hospitalhq/hospital-api/internal/storage"
)

func main() {

	cfg := config.Load()

	if cfg.IsProd {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		gin.SetMode(gin.ReleaseMode)
	}

	db := dbpkg.NewDB(cfg)

	// Redis is optional; a nil cache degrades to recomputing on every
	// request.
	var cc *cache.Cache
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		c, err := cache.New(ctx, cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		cancel()
		if err != nil {
			logrus.WithError(err).Warn("redis unavailable, caching disabled")
		} else {
			cc = c
		}
	}

	var store storage.ConditionStore
	switch cfg.StorageDriver {
	case "s3":
		store = storage.NewS3Store(
			cfg.S3Region,
			cfg.S3Endpoint,
			cfg.S3AccessKey,
			cfg.S3SecretKey,
			cfg.S3Bucket,
		)
	default:
		local, err := storage.NewLocalStore(cfg.UploadDir)
		if err != nil {
			logrus.Fatalf("failed to prepare upload directory: %v", err)
		}
		store = local
	}

	var sender mailer.Sender = mailer.Discard{}
	if cfg.SMTPHost != "" {
		sender = mailer.NewSMTPSender(
			cfg.SMTPHost,
			cfg.SMTPPort,
			cfg.SMTPUser,
			cfg.SMTPPass,
			cfg.MailFrom,
		)
	}
	dispatcher := mailer.NewDispatcher(sender)
	defer dispatcher.Close()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, cc, store, dispatcher)

	logrus.Infof("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logrus.Fatalf("failed to start server: %v", err)
	}
}
