package services

import "strings"

var (
	racingKeywords   = []string{"speed", "race", "car", "vehicle", "track", "lap", "finish"}
	shootingKeywords = []string{"shoot", "bullet", "enemy", "target", "weapon", "fire"}
)

// GameCodeMatchesTitle 粗略判断生成的代码是否实现了标题描述的游戏。
// 只是关键字启发：同义词会误判为不匹配，关键字巧合会误判为匹配。
func GameCodeMatchesTitle(code, title, description string) bool {
	codeText := strings.ToLower(code)
	lowerTitle := strings.ToLower(title)

	if strings.Contains(lowerTitle, "racing") || strings.Contains(lowerTitle, "grand prix") {
		return containsAny(codeText, racingKeywords)
	}
	if strings.Contains(lowerTitle, "shooter") || strings.Contains(lowerTitle, "battle") {
		return containsAny(codeText, shootingKeywords)
	}

	var titleWords []string
	for _, w := range strings.Split(lowerTitle, " ") {
		if len(w) > 3 {
			titleWords = append(titleWords, w)
		}
	}
	matched := 0
	for _, w := range titleWords {
		if strings.Contains(codeText, w) {
			matched++
		}
	}
	return matched >= min(2, len(titleWords))
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
