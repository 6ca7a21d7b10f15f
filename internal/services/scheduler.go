package services

import (
	"context"
	"fmt"
	"gameforge/internal/models"
	"log"
	"math"
	"time"
)

// ScheduleStore 自动生成计划所在的 generation_stats 行
type ScheduleStore interface {
	GetStats(ctx context.Context) (*models.GenerationStats, error)
	ClaimAutoGeneration(ctx context.Context, stats *models.GenerationStats, next time.Time) (bool, error)
	CompleteAutoGeneration(ctx context.Context, at, next time.Time) error
	RescheduleAutoGeneration(ctx context.Context, next time.Time) error
}

// AutoGenerator GameGenerator 实现了它
type AutoGenerator interface {
	Generate(ctx context.Context, userPrompt string, isAuto bool) (*GenerateResult, error)
}

// TickResult 一次调度检查的结果。Due 为 false 时只有 NextGeneration 与 TimeRemaining 有意义
type TickResult struct {
	Due            bool
	Game           *models.Game
	NextGeneration time.Time
	TimeRemaining  int64
	RetryIn        time.Duration
}

// Scheduler 自动生成调度：空闲 → 到期时先改写下一次时间，再生成。
// 改写依赖存储层的 compare-and-set，只能缩小重复运行的窗口，不是分布式锁。
type Scheduler struct {
	store    ScheduleStore
	gen      AutoGenerator
	interval time.Duration
	retry    time.Duration
	now      func() time.Time
}

func NewScheduler(store ScheduleStore, gen AutoGenerator, interval, retry time.Duration) *Scheduler {
	if interval <= 0 {
		interval = 3 * time.Hour
	}
	if retry <= 0 {
		retry = 30 * time.Minute
	}
	return &Scheduler{store: store, gen: gen, interval: interval, retry: retry, now: time.Now}
}

// Tick 检查一次是否到期；到期则生成一个游戏
func (s *Scheduler) Tick(ctx context.Context) (TickResult, error) {
	stats, err := s.store.GetStats(ctx)
	if err != nil {
		return TickResult{}, fmt.Errorf("load schedule: %w", err)
	}

	now := s.now()
	if now.Before(stats.NextAutoGeneration) {
		return notDue(now, stats.NextAutoGeneration), nil
	}

	next := now.Add(s.interval)
	claimed, err := s.store.ClaimAutoGeneration(ctx, stats, next)
	if err != nil {
		return TickResult{}, err
	}
	if !claimed {
		// 另一个调用已经接手这个窗口
		log.Printf("自动生成窗口已被其他调用占用")
		if latest, err := s.store.GetStats(ctx); err == nil {
			next = latest.NextAutoGeneration
		}
		return notDue(now, next), nil
	}

	log.Printf("自动生成开始，下一次计划于 %s", next.Format(time.RFC3339))
	result, err := s.gen.Generate(ctx, "", true)

	// 生成可能因超时失败，记账不跟随原 ctx 取消
	bookkeeping := context.WithoutCancel(ctx)
	if err != nil {
		retryAt := now.Add(s.retry)
		if rerr := s.store.RescheduleAutoGeneration(bookkeeping, retryAt); rerr != nil {
			log.Printf("自动生成重试时间写入失败: %v", rerr)
		}
		return TickResult{Due: true, NextGeneration: retryAt, RetryIn: s.retry}, fmt.Errorf("auto generation: %w", err)
	}

	if err := s.store.CompleteAutoGeneration(bookkeeping, now, next); err != nil {
		log.Printf("自动生成完成时间写入失败: %v", err)
	}
	log.Printf("自动生成完成: %s", result.Game.Title)
	return TickResult{Due: true, Game: result.Game, NextGeneration: next}, nil
}

// Run 按固定间隔轮询 Tick，直到 ctx 结束
func (s *Scheduler) Run(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	log.Printf("自动生成轮询已启动，间隔 %s", every)
	for {
		select {
		case <-ctx.Done():
			log.Println("自动生成轮询已停止")
			return
		case <-ticker.C:
			res, err := s.Tick(ctx)
			if err != nil {
				log.Printf("自动生成失败，%s 后重试: %v", res.RetryIn, err)
				continue
			}
			if res.Due {
				log.Printf("自动生成了游戏 %s", res.Game.ID)
			}
		}
	}
}

func notDue(now, next time.Time) TickResult {
	remaining := int64(math.Ceil(next.Sub(now).Seconds()))
	if remaining < 0 {
		remaining = 0
	}
	return TickResult{NextGeneration: next, TimeRemaining: remaining}
}
