package app

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kamol1dd1nbek/quote-backend/internal/config"
	httpx "github.com/Kamol1dd1nbek/quote-backend/internal/http"
	"github.com/Kamol1dd1nbek/quote-backend/internal/http/handlers"
	"github.com/Kamol1dd1nbek/quote-backend/internal/http/middleware"
	"github.com/Kamol1dd1nbek/quote-backend/internal/infrastructure/auth"
	"github.com/Kamol1dd1nbek/quote-backend/internal/infrastructure/database"
	"github.com/Kamol1dd1nbek/quote-backend/internal/infrastructure/notifications"
	"github.com/Kamol1dd1nbek/quote-backend/internal/infrastructure/repositories"
	"github.com/Kamol1dd1nbek/quote-backend/internal/infrastructure/storage"
	"github.com/Kamol1dd1nbek/quote-backend/internal/services"
)

func Run(cfg *config.Config) error {
	logger, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer logger.Sync()

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	gdb, err := database.Open(cfg.DSN)
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(gdb); err != nil {
		return err
	}

	// Infrastructure services
	passwordSvc := auth.NewPasswordService(cfg.BcryptCost)
	tokenSvc := auth.NewJWTService(cfg.AccessSecret, cfg.RefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	otpCodec, err := auth.NewOtpCodec(cfg.OtpEnvelopeKey, cfg.OtpLength)
	if err != nil {
		return err
	}
	mailer := notifications.NewMailerService(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom, cfg.APIHost, logger)
	fileStore, err := storage.NewS3Store(context.Background(), storage.S3Options{
		Region:        cfg.S3Region,
		Bucket:        cfg.S3Bucket,
		Endpoint:      cfg.S3Endpoint,
		AccessKey:     cfg.S3AccessKey,
		SecretKey:     cfg.S3SecretKey,
		PublicBaseURL: cfg.S3PublicBase,
	})
	if err != nil {
		return err
	}

	// Repositories
	userRepo := repositories.NewUserRepository(gdb)
	otpRepo := repositories.NewOtpRepository(gdb)

	// Services
	authSvc := services.NewAuthService(userRepo, otpRepo, passwordSvc, tokenSvc, otpCodec, mailer, cfg.OtpTTL, logger)
	userSvc := services.NewUserService(userRepo, fileStore, logger)

	// Handlers and middleware
	authH := handlers.NewAuthHandlers(authSvc, int(cfg.RefreshTTL.Seconds()), logger)
	userH := handlers.NewUserHandlers(userSvc, logger)
	jwtMW := middleware.NewAuthMW(tokenSvc)

	r := httpx.BuildRouter(authH, userH, jwtMW)

	addr := ":" + cfg.Port
	logger.Info("listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, r)
}
