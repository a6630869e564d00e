package main

import (
	"bytes"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"shopsearch/internal/config"
	"shopsearch/internal/core/bootstrap"
	"shopsearch/internal/core/catalog"
	"shopsearch/internal/core/job"
	"shopsearch/internal/core/rank"
	"shopsearch/internal/core/scrape"
	"shopsearch/internal/core/search"
	"shopsearch/internal/logger"
	rds "shopsearch/internal/platform/redis"
	tasks "shopsearch/internal/platform/tasks"
	"shopsearch/internal/server"
	"shopsearch/internal/worker"
)

func main() {
	cfg := config.Load()
	log.Printf("[shopsearch] starting at %s (env=%s)\n", cfg.HTTPAddr, cfg.AppEnv)

	logr := logger.New("main")

	// Redis client
	redisSvc, err := rds.New(rds.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer redisSvc.Close()

	// Asynq client and server
	taskClient := tasks.New(redisSvc)
	asynqServer := asynq.NewServer(redisSvc.AsynqRedisOpt(), asynq.Config{
		Concurrency: 10,
		Queues:      map[string]int{"default": 1},
	})

	// Extraction selectors, optionally overridden from a YAML file
	selectors := scrape.DefaultSelectors()
	if cfg.SelectorFile != "" {
		if selectors, err = scrape.LoadSelectors(cfg.SelectorFile); err != nil {
			logr.LogWarnf("selector file %s: %v, using defaults", cfg.SelectorFile, err)
		}
	}

	// Core services
	jobSvc := job.NewService(job.DefaultRetention)
	scrapeSvc := scrape.NewService(selectors, scrape.RandomFill())
	store := catalog.NewRedisStore(redisSvc)
	memory := catalog.NewMemoryStore()
	bootstrapSvc := bootstrap.NewService(cfg, jobSvc, scrapeSvc, store, memory, taskClient)
	searchSvc := search.NewService(store, memory, rank.NewEngine())

	// Worker mux
	mux := worker.NewMux()
	mux.HandleFunc(bootstrap.TaskTypeBootstrap, bootstrapSvc.HandleBootstrapTask)

	go func() {
		if err := asynqServer.Start(mux.Mux()); err != nil {
			log.Printf("[worker] stopped: %v\n", err)
		}
	}()

	// HTTP server
	app := fiber.New(fiber.Config{
		AppName: "Shopsearch Engine",
		JSONEncoder: func(v interface{}) ([]byte, error) {
			var buf bytes.Buffer
			encoder := json.NewEncoder(&buf)
			encoder.SetEscapeHTML(false)
			if err := encoder.Encode(v); err != nil {
				return nil, err
			}
			return buf.Bytes(), nil
		},
	})

	server.RegisterRoutes(app, server.Dependencies{
		Bootstrap: bootstrap.NewHandler(bootstrapSvc, jobSvc, cfg.AdminToken),
		Search:    search.NewHandler(searchSvc),
		Redis:     redisSvc,
	})

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		logr.LogInfo("Shutting down...")
		asynqServer.Shutdown()
		_ = taskClient.Close()
		_ = app.ShutdownWithTimeout(5 * time.Second)
	}()

	if err := app.Listen(cfg.HTTPAddr); err != nil {
		log.Fatalf("server listen: %v", err)
	}
}
