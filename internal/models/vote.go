package models

import (
	"time"
)

// Vote 一个访客对一个游戏的投票，(game_id, ip_hash) 唯一
type Vote struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	GameID    string    `gorm:"size:36;not null;uniqueIndex:idx_game_votes_identity" json:"game_id"`
	IPHash    string    `gorm:"size:64;not null;uniqueIndex:idx_game_votes_identity" json:"ip_hash"`
	Value     int       `gorm:"column:vote;not null" json:"vote"` // 1 or -1
	CreatedAt time.Time `json:"created_at"`
}

func (Vote) TableName() string {
	return "game_votes"
}
