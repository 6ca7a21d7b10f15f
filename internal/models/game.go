package models

import (
	"time"
)

const (
	GameStatusPending  = "pending"
	GameStatusApproved = "approved"
)

type Game struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Title        string    `gorm:"not null" json:"title"`
	Prompt       string    `gorm:"type:text" json:"prompt"` // 游戏描述
	Code         string    `gorm:"type:text;not null" json:"code"`
	ThumbnailURL string    `json:"thumbnail_url"`
	Status       string    `gorm:"size:20;default:'pending';not null;index" json:"status"` // pending, approved
	VoteScore    int       `gorm:"default:0;not null;index" json:"vote_score"`            // 由 game_votes 汇总，只在存储层维护
	VoteCount    int       `gorm:"default:0;not null" json:"vote_count"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// 非数据库字段，热度排序时填充
	Trending float64 `gorm:"-" json:"trending,omitempty"`
}
