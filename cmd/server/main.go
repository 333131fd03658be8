package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"github.com/rl1809/harbor/internal/adapter/handler"
	"github.com/rl1809/harbor/internal/adapter/handler/rpc"
	"github.com/rl1809/harbor/internal/adapter/storage"
	"github.com/rl1809/harbor/internal/config"
	"github.com/rl1809/harbor/internal/core/service"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := config.NewLogger(cfg.Log, os.Stdout)

	if err := run(cfg, logger); err != nil {
		logger.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize MySQL
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		return err
	}
	logger.Info("connected to mysql")

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		PoolSize: cfg.Redis.PoolSize,
	})
	defer rdb.Close()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return err
	}
	logger.Info("connected to redis", "addr", cfg.Redis.Addr)

	// Initialize adapters
	redisAdapter := storage.NewRedisAdapter(rdb, cfg.Redis.RollCallTTL, cfg.Redis.IdempotencyTTL)
	mysqlAdapter := storage.NewMySQLAdapter(db)
	if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
		return err
	}

	vesselService := service.NewVesselService(mysqlAdapter, redisAdapter, cfg.Workers.QueueSize, logger)

	// Start captain's log workers
	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers.Count; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			service.RunLogWorker(id, vesselService.LogQueue(), mysqlAdapter, logger)
		}(i)
	}
	logger.Info("started log workers", "count", cfg.Workers.Count)

	// Start gRPC server
	grpcServer := grpc.NewServer()
	rpc.RegisterVesselServiceServer(grpcServer, handler.NewGRPCHandler(vesselService))

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		return err
	}

	go func() {
		logger.Info("gRPC server listening", "addr", cfg.Server.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			logger.Error("gRPC server error", "error", err)
		}
	}()

	// Start HTTP server
	httpServer := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: handler.NewHTTPHandler(vesselService, logger).Routes(),
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.Server.HTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("HTTP shutdown incomplete", "error", err)
	}
	logger.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")

	// Close log queue and wait for workers. Handlers left running by a
	// timed-out shutdown drop their entries instead of sending on it.
	vesselService.Close()
	wg.Wait()
	logger.Info("log workers stopped")

	return nil
}
