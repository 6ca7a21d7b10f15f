package models

import (
	"time"
)

// GenerationStatsID 单行表固定主键，并发初始化时靠主键冲突保证只有一行
const GenerationStatsID = 1

// GenerationStats 单行表，记录生成总数与自动生成的时间窗口
type GenerationStats struct {
	ID                  uint       `gorm:"primaryKey" json:"id"`
	TotalGamesGenerated int        `gorm:"default:0;not null" json:"total_games_generated"`
	TotalUsersGenerated int        `gorm:"default:0;not null" json:"total_users_generated"`
	LastAutoGeneration  *time.Time `json:"last_auto_generation"`
	NextAutoGeneration  time.Time  `gorm:"not null" json:"next_auto_generation"`
	// ScheduleVersion 每次改写 next_auto_generation 时递增，用于 compare-and-set
	ScheduleVersion int64     `gorm:"default:0;not null" json:"-"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (GenerationStats) TableName() string {
	return "generation_stats"
}
