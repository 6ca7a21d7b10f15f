package store

import (
	"context"
	"errors"
	"fmt"
	"gameforge/internal/models"
	"time"

	"gorm.io/gorm"
)

func (s *Store) GetStats(ctx context.Context) (*models.GenerationStats, error) {
	var stats models.GenerationStats
	err := s.db.WithContext(ctx).Order("id").First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

// ClaimAutoGeneration 以 schedule_version 做 compare-and-set，把下一次自动生成时间改写为 next。
// 返回 false 表示版本已被其他调用改写。
func (s *Store) ClaimAutoGeneration(ctx context.Context, stats *models.GenerationStats, next time.Time) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.GenerationStats{}).
		Where("id = ? AND schedule_version = ?", stats.ID, stats.ScheduleVersion).
		Updates(map[string]interface{}{
			"next_auto_generation": next.UTC(),
			"schedule_version":     gorm.Expr("schedule_version + ?", 1),
		})
	if res.Error != nil {
		return false, fmt.Errorf("claim auto generation: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// CompleteAutoGeneration 自动生成成功后记录时间并再次确认下一次时间
func (s *Store) CompleteAutoGeneration(ctx context.Context, at, next time.Time) error {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.GenerationStats{}).
		Where("id = ?", stats.ID).
		Updates(map[string]interface{}{
			"last_auto_generation": at.UTC(),
			"next_auto_generation": next.UTC(),
			"schedule_version":     gorm.Expr("schedule_version + ?", 1),
		}).Error
}

// RescheduleAutoGeneration 失败时把下一次时间提前到 next（快速重试）
func (s *Store) RescheduleAutoGeneration(ctx context.Context, next time.Time) error {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.GenerationStats{}).
		Where("id = ?", stats.ID).
		Updates(map[string]interface{}{
			"next_auto_generation": next.UTC(),
			"schedule_version":     gorm.Expr("schedule_version + ?", 1),
		}).Error
}

// RecordGeneration 累加生成计数；auto 为 false 时同时累加用户触发数
func (s *Store) RecordGeneration(ctx context.Context, auto bool) error {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return err
	}
	updates := map[string]interface{}{
		"total_games_generated": gorm.Expr("total_games_generated + ?", 1),
	}
	if !auto {
		updates["total_users_generated"] = gorm.Expr("total_users_generated + ?", 1)
	}
	return s.db.WithContext(ctx).Model(&models.GenerationStats{}).Where("id = ?", stats.ID).Updates(updates).Error
}
