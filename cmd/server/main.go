package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/agenthands/kgraph/internal/config"
	"github.com/agenthands/kgraph/internal/core"
	"github.com/agenthands/kgraph/internal/llm"
	"github.com/agenthands/kgraph/internal/logging"
	"github.com/agenthands/kgraph/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}
	cfg, err := config.Load(cfgPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("No config file at %s, using defaults", cfgPath)
		cfg = config.Default()
	} else if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger := logging.New(cfg.Logging)
	defer logger.Sync()

	client, err := llm.NewClient(context.Background(), cfg.LLM, logger)
	if err != nil {
		logger.Fatal("failed to initialize LLM client", zap.Error(err))
	}
	if closer, ok := client.(io.Closer); ok {
		defer closer.Close()
	}

	srv := server.NewServer(core.NewBuilder(cfg, client, logger), logger)
	r := srv.SetupRouter()

	logger.Info("starting server", zap.String("port", cfg.Server.Port), zap.String("output", cfg.Paths.Output))
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
