package services

import (
	"context"
	"errors"
	"gameforge/internal/models"
	"reflect"
	"testing"
	"time"
)

// recordingStore 记录调用顺序，用于验证先改写计划再生成
type recordingStore struct {
	calls   *[]string
	stats   models.GenerationStats
	claimOK bool
	claimed time.Time
	last    time.Time
	next    time.Time
}

func (r *recordingStore) GetStats(ctx context.Context) (*models.GenerationStats, error) {
	*r.calls = append(*r.calls, "get")
	s := r.stats
	return &s, nil
}

func (r *recordingStore) ClaimAutoGeneration(ctx context.Context, stats *models.GenerationStats, next time.Time) (bool, error) {
	*r.calls = append(*r.calls, "claim")
	r.claimed = next
	return r.claimOK, nil
}

func (r *recordingStore) CompleteAutoGeneration(ctx context.Context, at, next time.Time) error {
	*r.calls = append(*r.calls, "complete")
	r.last, r.next = at, next
	return nil
}

func (r *recordingStore) RescheduleAutoGeneration(ctx context.Context, next time.Time) error {
	*r.calls = append(*r.calls, "reschedule")
	r.next = next
	return nil
}

type recordingGenerator struct {
	calls *[]string
	err   error
	auto  bool
}

func (g *recordingGenerator) Generate(ctx context.Context, userPrompt string, isAuto bool) (*GenerateResult, error) {
	*g.calls = append(*g.calls, "generate")
	g.auto = isAuto
	if g.err != nil {
		return nil, g.err
	}
	return &GenerateResult{Game: &models.Game{ID: "auto-1", Title: "Auto"}}, nil
}

var schedulerNow = time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

func newRecordingScheduler(next time.Time, claimOK bool, genErr error) (*Scheduler, *recordingStore, *recordingGenerator, *[]string) {
	calls := &[]string{}
	st := &recordingStore{calls: calls, stats: models.GenerationStats{ID: 1, NextAutoGeneration: next}, claimOK: claimOK}
	gen := &recordingGenerator{calls: calls, err: genErr}
	s := NewScheduler(st, gen, 3*time.Hour, 30*time.Minute)
	s.now = func() time.Time { return schedulerNow }
	return s, st, gen, calls
}

func TestTickNotDue(t *testing.T) {
	s, _, _, calls := newRecordingScheduler(schedulerNow.Add(90*time.Minute+500*time.Millisecond), true, nil)

	res, err := s.Tick(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Due || res.TimeRemaining != 5401 {
		t.Errorf("unexpected result %+v", res)
	}
	if !reflect.DeepEqual(*calls, []string{"get"}) {
		t.Errorf("not-due tick must not write, calls = %v", *calls)
	}
}

func TestTickDueReschedulesBeforeGenerating(t *testing.T) {
	s, st, gen, calls := newRecordingScheduler(schedulerNow.Add(-time.Minute), true, nil)

	res, err := s.Tick(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"get", "claim", "generate", "complete"}
	if !reflect.DeepEqual(*calls, want) {
		t.Fatalf("calls = %v, want %v", *calls, want)
	}
	if !st.claimed.Equal(schedulerNow.Add(3 * time.Hour)) {
		t.Errorf("claimed next = %s", st.claimed)
	}
	if !gen.auto {
		t.Error("scheduler must generate with isAuto")
	}
	if !st.last.Equal(schedulerNow) || !st.next.Equal(schedulerNow.Add(3*time.Hour)) {
		t.Errorf("complete wrote last=%s next=%s", st.last, st.next)
	}
	if !res.Due || res.Game.ID != "auto-1" || !res.NextGeneration.Equal(st.claimed) {
		t.Errorf("unexpected result %+v", res)
	}
}

func TestTickFailureSchedulesFastRetry(t *testing.T) {
	s, st, _, calls := newRecordingScheduler(schedulerNow.Add(-time.Hour), true, errors.New("llm down"))

	res, err := s.Tick(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	want := []string{"get", "claim", "generate", "reschedule"}
	if !reflect.DeepEqual(*calls, want) {
		t.Fatalf("calls = %v, want %v", *calls, want)
	}
	if !st.next.Equal(schedulerNow.Add(30*time.Minute)) || res.RetryIn != 30*time.Minute {
		t.Errorf("retry next=%s retryIn=%s", st.next, res.RetryIn)
	}
}

func TestTickLostClaimIsNotDue(t *testing.T) {
	s, _, _, calls := newRecordingScheduler(schedulerNow.Add(-time.Minute), false, nil)

	res, err := s.Tick(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if res.Due {
		t.Error("losing the claim must not generate")
	}
	for _, c := range *calls {
		if c == "generate" {
			t.Fatal("generator invoked after losing the claim")
		}
	}
}
