package utils

import (
	"math"
	"time"
)

type RankConfig struct {
	Gravity        float64 // 时间重力 (1.5)
	WeightUpvote   float64 // 1.0
	WeightDownvote float64 // 1.5
	ScaleFactor    float64 // 放大系数 (100)
}

var DefaultConfig = RankConfig{
	Gravity:        1.5,
	WeightUpvote:   1.0,
	WeightDownvote: 1.5,
	ScaleFactor:    100.0,
}

// VoteSplit 由净分与总票数还原赞/踩数量
// score = up - down, count = up + down
func VoteSplit(score, count int) (up, down int) {
	up = (count + score) / 2
	down = count - up
	if up < 0 {
		up = 0
	}
	if down < 0 {
		down = 0
	}
	return up, down
}

// CalculateTrending 热度分：对数平滑的加权票数除以时间衰减
func CalculateTrending(createdAt time.Time, now time.Time, score, count int) float64 {
	hours := now.Sub(createdAt).Hours()
	if hours < 0 {
		hours = 0
	}

	up, down := VoteSplit(score, count)
	weightedSum := float64(up)*DefaultConfig.WeightUpvote - float64(down)*DefaultConfig.WeightDownvote
	if weightedSum < 0 {
		weightedSum = 0 // 防止负数无法取对数
	}

	numerator := math.Log10(weightedSum+1) * DefaultConfig.ScaleFactor
	decay := math.Pow(hours+2, DefaultConfig.Gravity)

	return numerator / decay
}
