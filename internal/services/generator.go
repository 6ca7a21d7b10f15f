package services

import (
	"context"
	"errors"
	"fmt"
	"gameforge/internal/fallback"
	"gameforge/internal/models"
	"gameforge/internal/utils"
	"log"
	"strings"

	"golang.org/x/sync/errgroup"
)

const (
	codeMaxTokens    = 4000
	codeSystemPrompt = "You are a master game developer who creates EXACTLY what is requested. You MUST implement the exact game described in the title and description. No generic templates - create the specific game requested."
)

// GameStore 生成流程需要的存储操作
type GameStore interface {
	CreateGame(ctx context.Context, game *models.Game) error
	RecordGeneration(ctx context.Context, auto bool) error
}

// Synthesizer 兜底游戏生成器
type Synthesizer interface {
	Synthesize(title, description, hints string) string
}

// GenerateResult 对应 generate 接口的成功响应
type GenerateResult struct {
	Game         *models.Game
	Title        string
	Description  string
	Thumbnail    string
	UsedFallback bool
}

type GeneratorOptions struct {
	CodeTemperature float64
	StrictMatch     bool
}

// GameGenerator 构思 → 缩略图 + 代码（并行）→ 校验 → 入库
type GameGenerator struct {
	llm    *LLMService
	thumbs *ThumbnailService
	store  GameStore
	synth  Synthesizer
	opts   GeneratorOptions
}

func NewGameGenerator(llm *LLMService, thumbs *ThumbnailService, store GameStore, synth Synthesizer, opts GeneratorOptions) *GameGenerator {
	if synth == nil {
		synth = fallback.New()
	}
	if opts.CodeTemperature <= 0 {
		opts.CodeTemperature = 0.7
	}
	return &GameGenerator{llm: llm, thumbs: thumbs, store: store, synth: synth, opts: opts}
}

// Generate 生成并保存一个游戏。缩略图与代码步骤的失败只会降级，不会中止。
func (g *GameGenerator) Generate(ctx context.Context, userPrompt string, isAuto bool) (*GenerateResult, error) {
	if !g.llm.Configured() {
		return nil, ErrNotConfigured
	}
	if isAuto {
		userPrompt = ""
	}
	userPrompt = strings.TrimSpace(userPrompt)
	log.Printf("开始生成游戏 (auto=%v, prompt=%q)", isAuto, userPrompt)

	idea, err := g.llm.RequestIdea(ctx, userPrompt, isAuto)
	if err != nil {
		return nil, err
	}
	log.Printf("构思完成: %s - %s", idea.Title, idea.Description)

	var (
		thumbnail    string
		code         string
		usedFallback bool
	)
	var eg errgroup.Group
	eg.Go(func() error {
		thumbnail = g.thumbs.Generate(ctx, idea.Title, idea.Description)
		return nil
	})
	eg.Go(func() error {
		code, usedFallback = g.generateCode(ctx, idea, userPrompt)
		return ctx.Err()
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	game := &models.Game{
		Title:        idea.Title,
		Prompt:       idea.Description,
		Code:         code,
		ThumbnailURL: thumbnail,
		Status:       models.GameStatusApproved,
	}
	if err := g.store.CreateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("save game: %w", err)
	}
	log.Printf("游戏已保存: %s (%s, fallback=%v)", game.ID, game.Title, usedFallback)

	if err := g.store.RecordGeneration(ctx, isAuto); err != nil {
		log.Printf("更新生成统计失败: %v", err)
	}

	return &GenerateResult{
		Game:         game,
		Title:        idea.Title,
		Description:  idea.Description,
		Thumbnail:    thumbnail,
		UsedFallback: usedFallback,
	}, nil
}

// generateCode 请求代码并校验；任何失败都交给兜底生成器
func (g *GameGenerator) generateCode(ctx context.Context, idea Idea, userPrompt string) (string, bool) {
	raw, err := g.llm.Chat(ctx, []ChatMessage{
		{Role: "system", Content: codeSystemPrompt},
		{Role: "user", Content: BuildCodePrompt(idea, userPrompt)},
	}, codeMaxTokens, g.opts.CodeTemperature)
	if err != nil {
		log.Printf("代码生成失败，使用兜底模板: %v", err)
		return g.synth.Synthesize(idea.Title, idea.Description, userPrompt), true
	}

	code := utils.StripCodeFence(raw)
	if !utils.HasDocumentShell(code) {
		log.Printf("生成的代码不是完整 HTML 文档，使用兜底模板")
		return g.synth.Synthesize(idea.Title, idea.Description, userPrompt), true
	}
	info, err := utils.DescribeDocument(code)
	if err != nil || !info.Playable() {
		log.Printf("生成的文档没有脚本或 body 为空，使用兜底模板")
		return g.synth.Synthesize(idea.Title, idea.Description, userPrompt), true
	}
	if g.opts.StrictMatch && !GameCodeMatchesTitle(code, idea.Title, idea.Description) {
		log.Printf("生成的代码与标题不符，使用兜底模板")
		return g.synth.Synthesize(idea.Title, idea.Description, userPrompt), true
	}

	log.Printf("代码校验通过: %d 字节, %d 个脚本, %d 个画布", len(code), info.Scripts, info.Canvases)
	return code, false
}

func BuildCodePrompt(idea Idea, userPrompt string) string {
	var original string
	if userPrompt != "" {
		original = fmt.Sprintf("Original User Request: %q\n", userPrompt)
	}
	return fmt.Sprintf(`Create a complete HTML game that EXACTLY implements: "%[1]s"

Game Description: %[2]s
%[3]s
CRITICAL REQUIREMENTS - MUST IMPLEMENT EXACTLY:
- The game MUST match the title "%[1]s" exactly
- The game MUST implement the mechanics described in: "%[2]s"
- If it's a racing game, implement actual racing mechanics
- If it's a shooter, implement shooting mechanics
- If it's a puzzle, implement puzzle mechanics
- If it's about food, include food-themed visuals and mechanics

TECHNICAL SPECIFICATIONS:
- Complete HTML document with embedded CSS and JavaScript
- Canvas size: 800x600px
- Smooth 60fps animation using requestAnimationFrame
- Proper game states (menu, playing, game over)
- Creative visual style matching the theme
- Unique controls appropriate for the game type
- Sound effects using Web Audio API
- Progressive difficulty
- Score/progress tracking
- Restart functionality

VISUAL REQUIREMENTS:
- Use colors and graphics that match the game theme
- Creative particle effects and animations
- Professional game UI with HUD elements
- Smooth transitions and feedback

GAMEPLAY REQUIREMENTS:
- Implement the EXACT mechanics described in the title/description
- Clear objectives and win/lose conditions
- Engaging and fun gameplay loop
- Appropriate difficulty curve

The game MUST be a complete, playable implementation of "%[1]s" - not a generic template!

Provide ONLY the complete HTML code with no markdown formatting.`, idea.Title, idea.Description, original)
}

// IsTimeout 生成是否因超时中止
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}
