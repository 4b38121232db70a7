package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gg-eng/portfolio-api/internal/config"
	"github.com/gg-eng/portfolio-api/internal/infrastructure/dynamo"
	"github.com/gg-eng/portfolio-api/internal/infrastructure/email"
	s3infra "github.com/gg-eng/portfolio-api/internal/infrastructure/s3"
	transporthttp "github.com/gg-eng/portfolio-api/internal/transport/http"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	// Bootstrap the DynamoDB KV table (created if it doesn't exist, TTL
	// enabled as the backstop for confirmation tickets and analytics keys).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTableKV)
	store := dynamo.NewKVStore(dynamoClient, cfg.DynamoTableKV)

	// CV object store.
	s3Client := s3infra.NewClient(cfg)
	cvStore := s3infra.NewStore(s3Client, cfg.CVBucketName)

	// Email sender: Resend in real deployments, log-only when no key is set.
	var mailer email.Sender
	if cfg.ResendAPIKey != "" {
		mailer = email.NewResendSender(cfg.ResendAPIKey, cfg.EmailFrom)
	} else {
		log.Println("WARN: RESEND_API_KEY not set, emails will only be logged")
		mailer = email.LogSender{}
	}

	deps := &transporthttp.Deps{
		Store:   store,
		CVStore: cvStore,
		Mailer:  mailer,
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s, newsletter=%v)", cfg.AppPort, cfg.AppEnv, cfg.NewsletterEnabled)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
