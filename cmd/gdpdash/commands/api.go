package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/gdpdash/internal/api"
	"github.com/wonny/gdpdash/internal/api/handlers"
	"github.com/wonny/gdpdash/internal/scheduler"
	"github.com/wonny/gdpdash/internal/scheduler/jobs"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- 데이터셋 로드 (시작 시 1회, 이후 캐시)
- HTTP API 서버 시작
- RELOAD_SCHEDULE이 설정된 경우 주기적 재로드

Endpoints:
  GET  /health               - Health check
  GET  /api/gdp/countries    - 국가 목록
  GET  /api/gdp/years        - 연도 범위
  GET  /api/gdp/series       - 시계열 (?from=&to=&countries=)
  GET  /api/gdp/summary      - 시작/종료 값과 성장 배수
  GET  /api/gdp/quality      - 커버리지 리포트
  POST /api/gdp/reload       - 캐시 무효화 후 재로드

Example:
  go run ./cmd/gdpdash api
  go run ./cmd/gdpdash api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (default: PORT)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== gdpdash API Server ===")

	ctx := context.Background()

	// 1. Config, logger, dataset provider
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	a.log.WithFields(map[string]interface{}{
		"port": a.cfg.Port,
		"env":  a.cfg.Env,
	}).Info("Initializing API server")

	// 2. Warm the cache; a broken dataset fails startup
	ds, err := a.provider.Dataset(ctx)
	if err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	a.log.WithFields(map[string]interface{}{
		"source":       ds.Source,
		"entities":     len(ds.Entities),
		"observations": len(ds.Observations),
	}).Info("Dataset loaded")

	// 3. Optional periodic reload
	var sched *scheduler.Scheduler
	if a.cfg.Data.ReloadSchedule != "" {
		sched = scheduler.New(a.log)
		if err := sched.AddJob(jobs.NewReloadJob(a.provider, a.gate, a.cfg.Data.ReloadSchedule, a.log)); err != nil {
			return fmt.Errorf("register reload job: %w", err)
		}
		if a.cfg.Data.CacheTTL > 0 {
			if err := sched.AddJob(jobs.NewCachePruneJob(a.provider, a.log)); err != nil {
				return fmt.Errorf("register prune job: %w", err)
			}
		}
		sched.Start()
		defer sched.Stop()
	}

	// 4. Handlers, router, server
	gdpHandler := handlers.NewGDPHandler(a.provider, a.gate, a.defaults, a.log)
	healthHandler := handlers.NewHealthHandler("gdpdash", a.provider, a.healthChecker())
	router := api.NewRouter(gdpHandler, healthHandler, a.cfg, a.log)
	server := api.New(a.cfg, a.log, router)

	// 5. Start server with graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	a.log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal or a failed listen
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	a.log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	a.log.Info("Server stopped")
	return nil
}
