package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"regexp"
	"strings"
)

// ErrIdeaGeneration 构思步骤失败；没有可用的兜底，生成中止
var ErrIdeaGeneration = errors.New("failed to generate game idea")

const (
	DefaultTitle       = "Mystery Game"
	DefaultDescription = "A unique gaming experience"

	ideaTemperature = 0.9
	ideaMaxTokens   = 150
)

var gameTypes = []string{
	"endless runner with unique mechanics",
	"puzzle game with physics",
	"arcade shooter with power-ups",
	"platformer with special abilities",
	"rhythm-based action game",
	"maze navigation challenge",
	"reaction time tester",
	"memory pattern game",
	"resource management mini-game",
	"physics-based destruction game",
}

var themes = []string{
	"space exploration",
	"underwater adventure",
	"magical forest",
	"cyberpunk city",
	"ancient temple",
	"candy world",
	"robot factory",
	"dinosaur era",
	"alien planet",
	"steampunk laboratory",
}

var mechanics = []string{
	"collect items while avoiding obstacles",
	"match patterns under time pressure",
	"stack objects without falling",
	"navigate through moving barriers",
	"defend against waves of enemies",
	"solve puzzles to progress",
	"race against the clock",
	"balance resources carefully",
	"chain combos for higher scores",
	"survive as long as possible",
}

const ideaSystemPrompt = "You create unique, creative browser mini-games. Each game should have completely different mechanics, visuals, and gameplay from typical games. Be creative and weird!"

var (
	titlePattern       = regexp.MustCompile(`(?i)Title:\s*(.+)`)
	descriptionPattern = regexp.MustCompile(`(?i)Description:\s*(.+)`)
)

type Idea struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// BuildIdeaPrompt 有用户描述时直接包装；自动生成或无描述时从三个池子各抽一项组合
func BuildIdeaPrompt(userPrompt string, isAuto bool, pick func(n int) int) string {
	userPrompt = strings.TrimSpace(userPrompt)
	if userPrompt != "" && !isAuto {
		return fmt.Sprintf(`Create a unique browser mini-game based on this description: "%s"

REQUIREMENTS:
- Must be playable in a web browser
- Should be fun and engaging
- Include clear objectives and controls
- Make it creative and unique
- Keep the core concept focused

Format:
Title: [Creative Game Name]
Description: [One sentence describing the core gameplay]`, userPrompt)
	}

	if pick == nil {
		pick = rand.IntN
	}
	return fmt.Sprintf(`Create a unique %s set in a %s where the player must %s.

REQUIREMENTS:
- Must be completely different from typical games
- Unique control scheme (not just arrow keys)
- Creative visual style and colors
- Unexpected gameplay twist
- Clear win/lose conditions
- Should feel fresh and original

Examples of CREATIVE concepts:
- "Gravity-switching space janitor cleaning cosmic debris"
- "Time-rewinding ninja avoiding laser grids"
- "Color-mixing wizard painting portals to escape"
- "Sound-wave surfer riding music through dimensions"

Format:
Title: [Creative Unique Name]
Description: [One sentence describing the unique core gameplay]`,
		gameTypes[pick(len(gameTypes))], themes[pick(len(themes))], mechanics[pick(len(mechanics))])
}

// ParseIdea 按行匹配 Title:/Description:，缺失时使用默认值
func ParseIdea(text string) Idea {
	idea := Idea{Title: DefaultTitle, Description: DefaultDescription}
	if m := titlePattern.FindStringSubmatch(text); m != nil {
		if t := strings.TrimSpace(m[1]); t != "" {
			idea.Title = t
		}
	}
	if m := descriptionPattern.FindStringSubmatch(text); m != nil {
		if d := strings.TrimSpace(m[1]); d != "" {
			idea.Description = d
		}
	}
	return idea
}

// RequestIdea 构思步骤：上游失败即致命
func (s *LLMService) RequestIdea(ctx context.Context, userPrompt string, isAuto bool) (Idea, error) {
	text, err := s.Chat(ctx, []ChatMessage{
		{Role: "system", Content: ideaSystemPrompt},
		{Role: "user", Content: BuildIdeaPrompt(userPrompt, isAuto, nil)},
	}, ideaMaxTokens, ideaTemperature)
	if err != nil {
		if errors.Is(err, ErrNotConfigured) || errors.Is(err, context.DeadlineExceeded) {
			return Idea{}, err
		}
		return Idea{}, fmt.Errorf("%w: %v", ErrIdeaGeneration, err)
	}
	return ParseIdea(text), nil
}
