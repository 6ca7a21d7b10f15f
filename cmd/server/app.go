package main

import (
	"context"
	"gameforge/internal/config"
	"gameforge/internal/db"
	"gameforge/internal/fallback"
	"gameforge/internal/services"
	"gameforge/internal/store"
	"gameforge/internal/utils"
	"log"

	"gocloud.dev/blob"
)

// app 持有一次进程运行所需的全部组件
type app struct {
	store      *store.Store
	bucket     *blob.Bucket
	events     services.Broker
	thumbnails *services.ThumbnailService
	generator  *services.GameGenerator
	scheduler  *services.Scheduler
	votes      *services.VoteService
	closeDB    func() error
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {
	conn, err := db.Open(cfg.Database, cfg.Scheduler.Interval)
	if err != nil {
		return nil, err
	}
	sqlDB, err := conn.DB()
	if err != nil {
		return nil, err
	}

	bucket, err := services.OpenBucket(ctx, cfg.Storage.BucketURL)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	var events services.Broker = services.NewMemoryBroker()
	if cfg.Redis.URL != "" {
		rb, err := services.NewRedisBroker(ctx, cfg.Redis.URL)
		if err != nil {
			log.Printf("Redis 不可用，使用进程内事件总线: %v", err)
		} else {
			events = rb
			log.Println("Vote events via redis pub/sub")
		}
	}

	if cfg.LLM.Token == "" {
		log.Println("LLM token not configured, generation endpoints will return 500")
	}

	st := store.New(conn, utils.GetCache())
	llm := services.NewLLMService(cfg.LLM)
	thumbs := services.NewThumbnailService(llm, bucket, cfg.Storage)
	generator := services.NewGameGenerator(llm, thumbs, st, fallback.New(), services.GeneratorOptions{
		CodeTemperature: cfg.LLM.CodeTemperature,
		StrictMatch:     cfg.LLM.StrictMatch,
	})

	return &app{
		store:      st,
		bucket:     bucket,
		events:     events,
		thumbnails: thumbs,
		generator:  generator,
		scheduler:  services.NewScheduler(st, generator, cfg.Scheduler.Interval, cfg.Scheduler.Retry),
		votes:      services.NewVoteService(st, events),
		closeDB:    sqlDB.Close,
	}, nil
}

func (a *app) Close() {
	if err := a.events.Close(); err != nil {
		log.Printf("close events: %v", err)
	}
	if err := a.bucket.Close(); err != nil {
		log.Printf("close bucket: %v", err)
	}
	if err := a.closeDB(); err != nil {
		log.Printf("close database: %v", err)
	}
}
