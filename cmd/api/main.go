package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	apidashboard "finsight/pkg/api/dashboard"
	"finsight/pkg/core/agent"
	"finsight/pkg/core/config"
	coredashboard "finsight/pkg/core/dashboard"
	"finsight/pkg/core/gateway"
	"finsight/pkg/core/logger"
	"finsight/pkg/core/store"
)

func main() {
	godotenv.Load()

	cfg := config.Load()
	if err := logger.Init(cfg.DevelopmentLog, logger.LogLevel(cfg.LogLevel)); err != nil {
		fmt.Printf("[FATAL] Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	ctx := context.Background()

	// Agent routing config; missing file falls back to the HTTP gateway.
	agentCfg := agent.Config{ActiveProvider: "http"}
	if data, err := os.ReadFile(cfg.AgentsConfig); err == nil {
		if err := yaml.Unmarshal(data, &agentCfg); err != nil {
			log.Warn("agents config unreadable, using defaults", zap.Error(err))
		}
	}

	providers := map[string]gateway.Gateway{
		"http":   gateway.NewHTTPGateway(cfg.AgentEndpoint),
		"gemini": &gateway.GeminiGateway{},
	}
	if os.Getenv("GEMINI_API_KEY") != "" {
		if legacy, err := gateway.NewLegacyGeminiGateway(ctx, ""); err == nil {
			providers["gemini_legacy"] = legacy
			defer legacy.Close()
		} else {
			log.Warn("legacy gemini gateway unavailable", zap.Error(err))
		}
	}
	agentMgr := agent.NewManager(agentCfg, providers)

	// The store is best effort: if nothing durable opens, the dashboard
	// runs on memory for this session.
	var kv store.KV
	if cfg.DatabaseURL != "" {
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Warn("postgres store unavailable", zap.Error(err))
		} else {
			kv = pg
		}
	}
	if kv == nil {
		sq, err := store.OpenSQLite(cfg.StorePath)
		if err != nil {
			log.Warn("sqlite store unavailable, running in-memory", zap.Error(err))
			kv = store.NewMemory()
		} else {
			kv = sq
		}
	}
	defer kv.Close()

	orch := coredashboard.New(ctx, agentMgr, cfg.AgentID, kv)
	log.Info("dashboard session started",
		zap.String("session_id", orch.SessionID()),
		zap.String("agent_id", cfg.AgentID),
		zap.String("provider", agentMgr.GetActiveProvider()))

	mux := http.NewServeMux()
	apidashboard.NewHandler(orch).Register(mux)

	addr := ":" + cfg.ServerPort
	log.Info("API server starting", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("server failed", zap.Error(err))
		os.Exit(1)
	}
}
