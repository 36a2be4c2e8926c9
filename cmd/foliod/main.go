package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/foliohq/folio/internal/config"
	"github.com/foliohq/folio/internal/server"
)

func main() {
	cfg := config.LoadOrDefault()

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatalf("folio: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() { errc <- srv.Run() }()

	select {
	case <-ctx.Done():
		if err := srv.Close(); err != nil {
			log.Printf("folio: shutdown: %v", err)
		}
	case err := <-errc:
		if err != nil {
			log.Fatalf("folio: %v", err)
		}
	}
}
