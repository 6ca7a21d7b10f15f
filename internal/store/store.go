package store

import (
	"context"
	"errors"
	"fmt"
	"gameforge/internal/models"
	"gameforge/internal/utils"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("record not found")

const (
	SortNewest   = "newest"
	SortPopular  = "popular"
	SortTrending = "trending"

	listCachePrefix = "games:"
	listCacheTTL    = 30 * time.Second
)

// Store 是 games / game_votes / generation_stats 的唯一数据入口
type Store struct {
	db    *gorm.DB
	cache *utils.GlobalCache
}

func New(db *gorm.DB, cache *utils.GlobalCache) *Store {
	if cache == nil {
		cache = utils.GetCache()
	}
	return &Store{db: db, cache: cache}
}

// CreateGame 写入新游戏，ID 为空时自动生成
func (s *Store) CreateGame(ctx context.Context, game *models.Game) error {
	if game.ID == "" {
		game.ID = uuid.NewString()
	}
	if game.Status == "" {
		game.Status = models.GameStatusPending
	}
	if err := s.db.WithContext(ctx).Create(game).Error; err != nil {
		return fmt.Errorf("insert game: %w", err)
	}
	s.cache.DeletePrefix(listCachePrefix)
	return nil
}

func (s *Store) GetGame(ctx context.Context, id string) (*models.Game, error) {
	var game models.Game
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &game, nil
}

// ListApproved 按排序方式返回已审核的游戏，结果短暂缓存
func (s *Store) ListApproved(ctx context.Context, sortBy string, limit int) ([]models.Game, error) {
	cacheKey := fmt.Sprintf("%s%s:%d", listCachePrefix, sortBy, limit)
	if cached := s.cache.Get(cacheKey); cached != nil {
		return cached.([]models.Game), nil
	}

	query := s.db.WithContext(ctx).Where("status = ?", models.GameStatusApproved)
	switch sortBy {
	case SortPopular:
		query = query.Order("vote_score DESC").Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}
	if limit > 0 && sortBy != SortTrending {
		query = query.Limit(limit)
	}

	var games []models.Game
	if err := query.Find(&games).Error; err != nil {
		return nil, err
	}

	if sortBy == SortTrending {
		now := time.Now()
		for i := range games {
			games[i].Trending = utils.CalculateTrending(games[i].CreatedAt, now, games[i].VoteScore, games[i].VoteCount)
		}
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].Trending > games[j].Trending
		})
		if limit > 0 && len(games) > limit {
			games = games[:limit]
		}
	}

	s.cache.Set(cacheKey, games, listCacheTTL)
	return games, nil
}

// VoteTotals 游戏当前的净分与票数
type VoteTotals struct {
	Score int `json:"score"`
	Count int `json:"count"`
}

func (s *Store) GameVoteTotals(ctx context.Context, gameID string) (VoteTotals, error) {
	var game models.Game
	err := s.db.WithContext(ctx).Select("id", "vote_score", "vote_count").Where("id = ?", gameID).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return VoteTotals{}, ErrNotFound
	}
	if err != nil {
		return VoteTotals{}, err
	}
	return VoteTotals{Score: game.VoteScore, Count: game.VoteCount}, nil
}

// FindVote 返回访客在该游戏上的投票值，没有投票返回 0
func (s *Store) FindVote(ctx context.Context, gameID, ipHash string) (int, error) {
	var vote models.Vote
	err := s.db.WithContext(ctx).Where("game_id = ? AND ip_hash = ?", gameID, ipHash).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return vote.Value, nil
}

// RetractVote 仅当已有投票且值相同才删除，返回是否删除。
// 删除与汇总重算在同一事务内完成。
func (s *Store) RetractVote(ctx context.Context, gameID, ipHash string, value int) (bool, error) {
	retracted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockGame(tx, gameID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil
			}
			return err
		}
		res := tx.Where("game_id = ? AND ip_hash = ? AND vote = ?", gameID, ipHash, value).Delete(&models.Vote{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		retracted = true
		return recomputeTotals(tx, gameID)
	})
	if err != nil {
		return false, fmt.Errorf("retract vote: %w", err)
	}
	if retracted {
		s.cache.DeletePrefix(listCachePrefix)
	}
	return retracted, nil
}

// UpsertVote 以 (game_id, ip_hash) 为冲突键写入投票，后写覆盖
func (s *Store) UpsertVote(ctx context.Context, gameID, ipHash string, value int) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockGame(tx, gameID); err != nil {
			return err
		}

		vote := models.Vote{
			ID:     uuid.NewString(),
			GameID: gameID,
			IPHash: ipHash,
			Value:  value,
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "game_id"}, {Name: "ip_hash"}},
			DoUpdates: clause.AssignmentColumns([]string{"vote"}),
		}).Create(&vote).Error
		if err != nil {
			return err
		}
		return recomputeTotals(tx, gameID)
	})
	if errors.Is(err, ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("upsert vote: %w", err)
	}
	s.cache.DeletePrefix(listCachePrefix)
	return nil
}

// lockGame 在事务内对游戏行加 FOR UPDATE 锁，同一游戏的投票写入串行执行。
// 之后的语句各自取新快照，recomputeTotals 能看到先提交事务的投票。
// sqlite 不支持行锁，方言会忽略该子句
func lockGame(tx *gorm.DB, gameID string) error {
	var game models.Game
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").Where("id = ?", gameID).First(&game).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// recomputeTotals 用子查询一次性刷新 vote_score / vote_count，
// 必须在 lockGame 之后调用
func recomputeTotals(tx *gorm.DB, gameID string) error {
	return tx.Model(&models.Game{}).Where("id = ?", gameID).UpdateColumns(map[string]interface{}{
		"vote_score": tx.Model(&models.Vote{}).Select("COALESCE(SUM(vote), 0)").Where("game_id = ?", gameID),
		"vote_count": tx.Model(&models.Vote{}).Select("COUNT(*)").Where("game_id = ?", gameID),
	}).Error
}
