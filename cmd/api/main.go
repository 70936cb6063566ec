package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Yatube/internal/config"
	"Yatube/internal/middleware"
	"Yatube/internal/pkg"
	"Yatube/internal/repository/database"
	"Yatube/internal/repository/redis"
	"Yatube/internal/router"
	"Yatube/internal/service"

	"github.com/gin-gonic/gin"
)

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to the config file")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)
	pkg.SetAccessSecret(cfg.Auth.AccessSecret)

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = database.Close(db) }()

	userRepo := &database.UserRepository{DB: db}
	var (
		sessions middleware.SessionStore
		cache    service.IndexCache
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redis.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatalf("connect redis: %v", err)
		}
		defer func() { _ = rdb.Close() }()
		sessions = &redis.SessionRepository{RDB: rdb}
		cache = redis.NewIndexCache(rdb, cfg.Redis.IndexTTL)
	} else {
		log.Printf("redis disabled: no session check, no index cache")
	}

	var sender service.Sender = service.LogSender
	if len(cfg.Kafka.Brokers) > 0 {
		producer := pkg.NewKafkaProducer(pkg.KafkaConfig{Brokers: cfg.Kafka.Brokers, Topic: cfg.Kafka.Topic})
		defer func() { _ = producer.Close() }()
		sender = service.KafkaSender(producer)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	relayer := service.NewOutboxRelayer(db, sender, cfg.Kafka.RelayInterval, cfg.Kafka.RelayBatchSize)
	relayDone := make(chan struct{})
	go func() {
		defer close(relayDone)
		relayer.Run(ctx)
	}()

	auth := middleware.NewAuth(userRepo, sessions, cfg.Auth.LoginURL)
	r := router.InitRouter(router.Services{
		Posts:    service.NewPostService(db, cache, cfg.Posts.PerPage),
		Groups:   service.NewGroupService(db, cache),
		Comments: service.NewCommentService(db),
		Follows:  service.NewFollowService(db, cfg.Posts.PerPage),
	}, auth, router.Options{AllowOrigins: cfg.Server.AllowOrigins})

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("serve: %v", err)
		}
	}()

	<-ctx.Done()
	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	<-relayDone
}
