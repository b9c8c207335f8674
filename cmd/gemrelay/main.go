package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gemrelay/internal/config"
	"gemrelay/internal/provider"
	"gemrelay/internal/server"
	"gemrelay/internal/session"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	useMock := flag.Bool("mock", false, "use a scripted provider instead of the Gemini API")
	port := flag.Int("port", 0, "override listen port")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if *port > 0 {
		cfg.Port = *port
	}

	var p provider.Provider
	if *useMock {
		p = &provider.Mock{Reply: "This is a mock response.", Delay: 300 * time.Millisecond}
		log.Println("mode: mock provider enabled")
	} else {
		p = provider.NewGemini()
		log.Printf("mode: gemini (%d candidate models)", len(cfg.Models))
	}

	if cfg.APIKey != "" {
		log.Println("auth: API key required (X-API-Key header)")
	} else {
		log.Println("auth: disabled (no api_key configured)")
	}

	handler := server.New(server.Options{
		Sessions:        session.NewRegistry(),
		Provider:        p,
		Candidates:      cfg.Models,
		APIKey:          cfg.APIKey,
		ProviderTimeout: time.Duration(cfg.ProviderTimeout) * time.Second,
		RateLimit:       cfg.RateLimit,
		StaticDir:       cfg.StaticDir,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("gemrelay api listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server: %v", err)
		}
	}()

	<-done
	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
	log.Println("server stopped")
}
