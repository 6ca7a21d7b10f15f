package services

import (
	"context"
	"errors"
	"gameforge/internal/store"
	"log"
)

// ErrInvalidVote 投票值只能是 1 或 -1
var ErrInvalidVote = errors.New("vote must be 1 or -1")

// VoteStore 投票需要的存储操作；汇总由存储层在同一事务内维护
type VoteStore interface {
	RetractVote(ctx context.Context, gameID, ipHash string, value int) (bool, error)
	UpsertVote(ctx context.Context, gameID, ipHash string, value int) error
	FindVote(ctx context.Context, gameID, ipHash string) (int, error)
	GameVoteTotals(ctx context.Context, gameID string) (store.VoteTotals, error)
}

// VoteResult 投票后的最新汇总，Vote 为调用者当前的有效投票（0 表示无）
type VoteResult struct {
	Score int `json:"score"`
	Count int `json:"count"`
	Vote  int `json:"vote"`
}

type VoteService struct {
	store  VoteStore
	events Broker
}

func NewVoteService(s VoteStore, events Broker) *VoteService {
	return &VoteService{store: s, events: events}
}

// CastVote 同值再投一次即撤销，不同值覆盖。写入后重新读取汇总
func (s *VoteService) CastVote(ctx context.Context, gameID, identity string, value int) (VoteResult, error) {
	if value != 1 && value != -1 {
		return VoteResult{}, ErrInvalidVote
	}

	retracted, err := s.store.RetractVote(ctx, gameID, identity, value)
	if err != nil {
		return VoteResult{}, err
	}

	effective := 0
	if !retracted {
		if err := s.store.UpsertVote(ctx, gameID, identity, value); err != nil {
			return VoteResult{}, err
		}
		effective = value
	}

	totals, err := s.store.GameVoteTotals(ctx, gameID)
	if err != nil {
		return VoteResult{}, err
	}

	if s.events != nil {
		event := VoteEvent{GameID: gameID, VoteScore: totals.Score, VoteCount: totals.Count}
		if err := s.events.Publish(ctx, event); err != nil {
			log.Printf("投票事件发布失败 %s: %v", gameID, err)
		}
	}

	return VoteResult{Score: totals.Score, Count: totals.Count, Vote: effective}, nil
}

// CurrentVote 调用者对该游戏的当前投票，没有则为 0
func (s *VoteService) CurrentVote(ctx context.Context, gameID, identity string) (int, error) {
	return s.store.FindVote(ctx, gameID, identity)
}

func (s *VoteService) Totals(ctx context.Context, gameID string) (store.VoteTotals, error) {
	return s.store.GameVoteTotals(ctx, gameID)
}
