package services

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestMemoryBrokerSubscribe(t *testing.T) {
	b := NewMemoryBroker()
	ctx := context.Background()

	var gotA, gotB []VoteEvent
	cancelA := b.Subscribe("a", func(e VoteEvent) { gotA = append(gotA, e) })
	cancelB := b.Subscribe("b", func(e VoteEvent) { gotB = append(gotB, e) })

	b.Publish(ctx, VoteEvent{GameID: "a", VoteScore: 1, VoteCount: 1})
	b.Publish(ctx, VoteEvent{GameID: "c", VoteScore: 9, VoteCount: 9})
	if len(gotA) != 1 || len(gotB) != 0 {
		t.Fatalf("events routed to wrong subscribers: a=%v b=%v", gotA, gotB)
	}

	cancelA()
	cancelA()
	if n := b.Subscribers("a"); n != 0 {
		t.Errorf("Subscribers(a) = %d after cancel", n)
	}
	b.Publish(ctx, VoteEvent{GameID: "a", VoteScore: 2, VoteCount: 2})
	if len(gotA) != 1 {
		t.Error("cancelled subscriber still receives events")
	}

	cancelB()
	b.Close()
}

// 需要本地 redis：GAMEFORGE_TEST_REDIS=redis://localhost:6379/0
func TestRedisBroker(t *testing.T) {
	url := os.Getenv("GAMEFORGE_TEST_REDIS")
	if url == "" {
		t.Skip("GAMEFORGE_TEST_REDIS not set")
	}
	ctx := context.Background()
	b, err := NewRedisBroker(ctx, url)
	if err != nil {
		t.Fatalf("NewRedisBroker failed: %v", err)
	}
	defer b.Close()

	got := make(chan VoteEvent, 1)
	cancel := b.Subscribe("g1", func(e VoteEvent) { got <- e })
	defer cancel()

	if err := b.Publish(ctx, VoteEvent{GameID: "g1", VoteScore: 3, VoteCount: 5}); err != nil {
		t.Fatal(err)
	}
	select {
	case e := <-got:
		if e.VoteScore != 3 || e.VoteCount != 5 {
			t.Errorf("unexpected event %+v", e)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("event not delivered")
	}
}
