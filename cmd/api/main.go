package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wellworld/internal/cache"
	"wellworld/internal/config"
	httphandler "wellworld/internal/http"
	"wellworld/internal/services/geo"
	"wellworld/internal/services/llm"
	"wellworld/internal/services/search"
)

func main() {
	port := flag.String("port", "", "Port to run the server on (overrides PORT)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *port == "" {
		*port = cfg.Server.Port
	}

	redisCache, err := cache.NewRedisCache(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisCache.Close()

	llmClient, err := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	if err != nil {
		log.Fatalf("Failed to create LLM client: %v", err)
	}

	searchClient := search.NewIdealistClient(cfg.Search.BaseURL, cfg.Search.PageSize)

	geoService := geo.NewService(searchClient, llmClient, redisCache, geo.Options{
		MaxRetries:  cfg.Geo.MaxRetries,
		FastModel:   cfg.Geo.FastModel,
		StrongModel: cfg.Geo.StrongModel,
		CacheTTL:    cfg.Geo.CacheTTL,
	})

	router := httphandler.NewRouter(cfg.CORS.AllowedOrigins)
	router.RegisterGeoRoutes(httphandler.NewGeoHandler(geoService))
	router.RegisterHealthRoutes()
	router.RegisterLandingRoute()

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Printf("Starting server on port %s", *port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
