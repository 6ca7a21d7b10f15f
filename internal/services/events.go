package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/redis/go-redis/v9"
)

const voteChannel = "gameforge:votes"

// VoteEvent 某个游戏的投票汇总发生变化
type VoteEvent struct {
	GameID    string `json:"game_id"`
	VoteScore int    `json:"vote_score"`
	VoteCount int    `json:"vote_count"`
}

// Broker 按游戏 ID 订阅投票变化。Subscribe 返回的函数用于取消订阅
type Broker interface {
	Publish(ctx context.Context, event VoteEvent) error
	Subscribe(gameID string, fn func(VoteEvent)) (cancel func())
	Close() error
}

// MemoryBroker 进程内广播，单实例部署时使用
type MemoryBroker struct {
	mu   sync.RWMutex
	next uint64
	subs map[string]map[uint64]func(VoteEvent)
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{subs: make(map[string]map[uint64]func(VoteEvent))}
}

func (b *MemoryBroker) Publish(_ context.Context, event VoteEvent) error {
	b.dispatch(event)
	return nil
}

func (b *MemoryBroker) dispatch(event VoteEvent) {
	b.mu.RLock()
	fns := make([]func(VoteEvent), 0, len(b.subs[event.GameID]))
	for _, fn := range b.subs[event.GameID] {
		fns = append(fns, fn)
	}
	b.mu.RUnlock()

	for _, fn := range fns {
		fn(event)
	}
}

func (b *MemoryBroker) Subscribe(gameID string, fn func(VoteEvent)) func() {
	b.mu.Lock()
	b.next++
	id := b.next
	if b.subs[gameID] == nil {
		b.subs[gameID] = make(map[uint64]func(VoteEvent))
	}
	b.subs[gameID][id] = fn
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			delete(b.subs[gameID], id)
			if len(b.subs[gameID]) == 0 {
				delete(b.subs, gameID)
			}
		})
	}
}

// Subscribers 当前订阅某游戏的回调数量
func (b *MemoryBroker) Subscribers(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[gameID])
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	b.subs = make(map[string]map[uint64]func(VoteEvent))
	b.mu.Unlock()
	return nil
}

// RedisBroker 通过 redis pub/sub 在多个实例间转发事件，本地分发仍走 MemoryBroker
type RedisBroker struct {
	client *redis.Client
	pubsub *redis.PubSub
	local  *MemoryBroker
	done   chan struct{}
}

func NewRedisBroker(ctx context.Context, redisURL string) (*RedisBroker, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	pubsub := client.Subscribe(ctx, voteChannel)
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		client.Close()
		return nil, fmt.Errorf("subscribe %s: %w", voteChannel, err)
	}

	b := &RedisBroker{
		client: client,
		pubsub: pubsub,
		local:  NewMemoryBroker(),
		done:   make(chan struct{}),
	}
	go b.listen()
	return b, nil
}

func (b *RedisBroker) listen() {
	defer close(b.done)
	for msg := range b.pubsub.Channel() {
		var event VoteEvent
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("忽略无法解析的投票事件: %v", err)
			continue
		}
		b.local.dispatch(event)
	}
}

func (b *RedisBroker) Publish(ctx context.Context, event VoteEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return b.client.Publish(ctx, voteChannel, payload).Err()
}

func (b *RedisBroker) Subscribe(gameID string, fn func(VoteEvent)) func() {
	return b.local.Subscribe(gameID, fn)
}

func (b *RedisBroker) Close() error {
	err := b.pubsub.Close()
	<-b.done
	b.local.Close()
	if cerr := b.client.Close(); err == nil {
		err = cerr
	}
	return err
}
