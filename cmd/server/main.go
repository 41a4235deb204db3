package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"content-monitor/history"
	"content-monitor/shared/ai"
	"content-monitor/shared/config"
	"content-monitor/shared/monitoring"
	"content-monitor/web"
	"content-monitor/youtube"
)

func main() {
	log.SetFlags(log.LstdFlags)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	youtubeClient, err := youtube.NewClient(ctx, &cfg.YouTube)
	if err != nil {
		log.Fatalf("Failed to create YouTube client: %v", err)
	}

	geminiClient, err := ai.NewGeminiClient(ctx, &cfg.AI)
	if err != nil {
		log.Fatalf("Failed to create Gemini client: %v", err)
	}

	historyService := history.NewService(youtubeClient)
	analyzer := ai.NewAnalyzer(historyService, geminiClient)
	monitor := monitoring.NewMonitor()

	server := web.NewServer(&cfg.Server, historyService, analyzer, monitor)
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Fatalf("Server failed: %v", err)
	}
}
