package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"quizdeck/internal/auth"
	"quizdeck/internal/config"
	"quizdeck/internal/generate"
	"quizdeck/internal/httpapi"
	"quizdeck/internal/quiz"
	"quizdeck/internal/storage"
	"quizdeck/internal/together"
)

const devJWTSecret = "quizdeck-dev-secret"

func main() {
	cfg := config.Load()

	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	dbPath := flag.String("db", cfg.DBPath, "sqlite database path")
	flag.Parse()

	if cfg.JWTSecret == "" {
		log.Printf("JWT_SECRET not set, using development secret")
		cfg.JWTSecret = devJWTSecret
	}

	db, err := storage.Open(*dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	quizStore, err := quiz.NewSQLiteStore(db)
	if err != nil {
		log.Fatalf("init quiz store: %v", err)
	}
	authStore, err := auth.NewSQLiteStore(db)
	if err != nil {
		log.Fatalf("init auth store: %v", err)
	}

	authService := auth.NewService(authStore, authStore, cfg.JWTSecret, cfg.TokenTTL)
	quizService := quiz.NewService(quizStore, quizStore)

	var complete generate.CompleteFunc
	if cfg.TogetherAPIKey != "" {
		client := together.NewClient(cfg.TogetherAPIKey, cfg.TogetherModel, &http.Client{Timeout: 60 * time.Second})
		complete = client.Complete
		log.Printf("quiz generation using model %s", cfg.TogetherModel)
	} else {
		log.Printf("TOGETHER_API_KEY not set, quiz generation uses the built-in bank")
	}
	generator := generate.NewGenerator(complete)

	sweeper := auth.StartBlacklistSweeper(authService)
	defer sweeper.Stop()

	server := &http.Server{
		Addr:              *addr,
		Handler:           httpapi.NewRouter(authService, quizService, generator),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("quizdeck-server listening on %s", *addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = server.Shutdown(ctx)
}
