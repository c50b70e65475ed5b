package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/nexpos-assistant/internal/config"
	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
)

func main() {
	// Carregar variáveis de ambiente
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Aviso: falha ao ler .env: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro na configuração: %v", err)
	}

	zl, err := logger.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer zl.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Criar aplicação
	app, err := NewApp(ctx, cfg, zl)
	if err != nil {
		zl.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	app.SetupRoutes()

	// Iniciar o servidor
	if err := app.Run(ctx); err != nil {
		zl.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	zl.Info("server stopped")
}
