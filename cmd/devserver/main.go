package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/funnytutor6/tutor-fe-sub002/internal/config"
	"github.com/funnytutor6/tutor-fe-sub002/internal/devserver"
)

func main() {
	cfg, err := config.Load("config/config.yml")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	gin.SetMode(cfg.GinMode)

	store, err := devserver.OpenStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("store: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	otp := devserver.NewOTPService(redisClient, devserver.OTPConfig{
		Length:       cfg.OTP_Length,
		TTL:          cfg.OTP_TTL,
		MaxAttempts:  cfg.OTP_MaxAttempts,
		ResendWindow: cfg.OTP_ResendWindow,
	})
	tokens := devserver.NewTokenService(cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL)
	passwords := devserver.NewPasswordService()
	notifier := devserver.NewTwilioNotifier(cfg.TwilioSID, cfg.TwilioToken, cfg.TwilioFrom)

	media, err := devserver.NewMediaService(cfg.CloudinaryName, cfg.CloudinaryKey, cfg.CloudinarySecret)
	if err != nil {
		log.Fatalf("media: %v", err)
	}

	server, err := devserver.NewServer(store, otp, tokens, passwords, notifier, media)
	if err != nil {
		log.Fatalf("server: %v", err)
	}
	if err := server.SeedAdmin("admin@local.test", "admin-dev-password"); err != nil {
		log.Fatalf("seed admin: %v", err)
	}

	log.Printf("dev server listening on :%s", cfg.Port)
	if err := server.Router().Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
