package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"chessrules/internal/game"
	"chessrules/internal/httpx"
)

func main() {
	// Flags (env fallbacks).
	addr := flag.String("addr", getenv("CHESS_ADDR", ":8080"), "listen address")
	logRequests := flag.Bool("log-requests", getenb("CHESS_LOG_REQUESTS", true), "write an access log line per request to stdout")
	flag.Parse()

	eng := game.NewEngine()
	log.Printf("New game: %s to move", eng.Position().ToMove())

	var accessLog io.Writer
	if *logRequests {
		accessLog = os.Stdout
	}
	srv, err := httpx.NewServer(eng, httpx.Options{AccessLog: accessLog})
	if err != nil {
		log.Fatalf("http init: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Close(shutdownCtx); err != nil {
			log.Printf("shutdown: %v", err)
		}
	}()

	if err := srv.Listen(*addr); err != nil {
		log.Fatal(err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenb(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "t", "yes", "y", "on":
			return true
		case "0", "false", "f", "no", "n", "off":
			return false
		}
	}
	return def
}
