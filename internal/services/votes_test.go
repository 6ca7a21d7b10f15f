package services

import (
	"context"
	"errors"
	"gameforge/internal/config"
	"gameforge/internal/db"
	"gameforge/internal/models"
	"gameforge/internal/store"
	"gameforge/internal/utils"
	"strings"
	"sync"
	"testing"
	"time"
)

func newSQLiteStore(t *testing.T) *store.Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(config.DatabaseConfig{
		Driver: "sqlite",
		URL:    "file:" + name + "?mode=memory&cache=shared",
	}, 3*time.Hour)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	sqlDB, _ := conn.DB()
	t.Cleanup(func() { sqlDB.Close() })
	return store.New(conn, utils.NewCache(50))
}

func TestCastVoteRoundTrip(t *testing.T) {
	s := newSQLiteStore(t)
	ctx := context.Background()
	game := &models.Game{Title: "Round Trip", Code: "<!DOCTYPE html><html></html>", Status: models.GameStatusApproved}
	if err := s.CreateGame(ctx, game); err != nil {
		t.Fatal(err)
	}

	broker := NewMemoryBroker()
	var mu sync.Mutex
	var events []VoteEvent
	cancel := broker.Subscribe(game.ID, func(e VoteEvent) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})
	defer cancel()

	votes := NewVoteService(s, broker)
	alice := utils.HashIP("203.0.113.7", "salt_for_privacy")
	bob := utils.HashIP("198.51.100.20", "salt_for_privacy")

	steps := []struct {
		identity string
		value    int
		want     VoteResult
	}{
		{alice, 1, VoteResult{Score: 1, Count: 1, Vote: 1}},
		{bob, 1, VoteResult{Score: 2, Count: 2, Vote: 1}},
		{alice, 1, VoteResult{Score: 1, Count: 1, Vote: 0}},
		{alice, -1, VoteResult{Score: 0, Count: 2, Vote: -1}},
		{bob, -1, VoteResult{Score: -2, Count: 2, Vote: -1}},
	}
	for i, step := range steps {
		got, err := votes.CastVote(ctx, game.ID, step.identity, step.value)
		if err != nil {
			t.Fatalf("step %d: CastVote failed: %v", i, err)
		}
		if got != step.want {
			t.Errorf("step %d: got %+v, want %+v", i, got, step.want)
		}
	}

	stored, err := s.GetGame(ctx, game.ID)
	if err != nil {
		t.Fatal(err)
	}
	if stored.VoteScore != -2 || stored.VoteCount != 2 {
		t.Errorf("stored aggregate = %d/%d", stored.VoteScore, stored.VoteCount)
	}

	if v, _ := votes.CurrentVote(ctx, game.ID, alice); v != -1 {
		t.Errorf("CurrentVote(alice) = %d", v)
	}
	if v, _ := votes.CurrentVote(ctx, game.ID, "nobody"); v != 0 {
		t.Errorf("CurrentVote(nobody) = %d", v)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(events) != len(steps) {
		t.Fatalf("expected %d events, got %d", len(steps), len(events))
	}
	last := events[len(events)-1]
	if last.GameID != game.ID || last.VoteScore != -2 || last.VoteCount != 2 {
		t.Errorf("unexpected last event %+v", last)
	}
}

func TestCastVoteValidation(t *testing.T) {
	s := newSQLiteStore(t)
	votes := NewVoteService(s, nil)

	if _, err := votes.CastVote(context.Background(), "any", "id", 2); !errors.Is(err, ErrInvalidVote) {
		t.Errorf("expected ErrInvalidVote, got %v", err)
	}
	if _, err := votes.CastVote(context.Background(), "missing", "id", 1); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
