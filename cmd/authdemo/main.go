package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/WilsonSunBritten/serverless-tools/internal/config"
	httptransport "github.com/WilsonSunBritten/serverless-tools/internal/transport/http"
)

const shutdownTimeoutSeconds = 10

func main() {
	cfg := config.MustLoad()

	srv, err := httptransport.NewAuthServer(cfg)
	if err != nil {
		log.Fatalf("Failed to create server: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(ctx, shutdownTimeoutSeconds*time.Second); err != nil {
		stop()
		log.Printf("Server exited with error: %v", err)
		os.Exit(1)
	}
}
