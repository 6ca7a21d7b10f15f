// Package fallback 在 LLM 生成的代码缺失或校验失败时，合成一个可独立运行的 HTML5 小游戏。
//
// 分类是确定性的：标题、描述与提示拼接后小写，按 racing → shooter → puzzle →
// platformer → rhythm 的优先级做关键字匹配，命中第一个即采用，否则使用 adaptive 模板。
// 每次合成只随机选择强调色，玩法完全一致。
package fallback

import (
	"gameforge/internal/utils"
	"log"
	"math/rand/v2"
	"strings"
	"sync"
)

type Kind string

const (
	Racing     Kind = "racing"
	Shooter    Kind = "shooter"
	Puzzle     Kind = "puzzle"
	Platformer Kind = "platformer"
	Rhythm     Kind = "rhythm"
	Adaptive   Kind = "adaptive"
)

var (
	warmPalette   = []string{"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD", "#98D8C8"}
	puzzlePalette = []string{"#9B59B6", "#3498DB", "#E74C3C", "#F39C12", "#2ECC71", "#E67E22"}
)

// classifiers 顺序即优先级
var classifiers = []struct {
	kind     Kind
	keywords []string
}{
	{Racing, []string{"racing", "race", "grand prix", "speed", "car", "vehicle"}},
	{Shooter, []string{"shoot", "battle", "fight", "enemy", "defend"}},
	{Puzzle, []string{"puzzle", "match", "solve", "memory"}},
	{Platformer, []string{"jump", "platform", "adventure", "collect"}},
	{Rhythm, []string{"rhythm", "music", "beat", "dance"}},
}

// Classify 返回输入对应的模板类型，子串匹配
func Classify(title, description, hints string) Kind {
	all := strings.ToLower(title + " " + description + " " + hints)
	for _, c := range classifiers {
		for _, kw := range c.keywords {
			if strings.Contains(all, kw) {
				return c.kind
			}
		}
	}
	return Adaptive
}

// Synthesizer 持有随机源；可并发使用
type Synthesizer struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func New() *Synthesizer {
	return NewWithSource(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// NewWithSource 测试中用固定种子复现配色
func NewWithSource(src rand.Source) *Synthesizer {
	return &Synthesizer{rnd: rand.New(src)}
}

var defaultSynthesizer = New()

// Synthesize 使用包级默认合成器
func Synthesize(title, description, hints string) string {
	return defaultSynthesizer.Synthesize(title, description, hints)
}

// Synthesize 总是返回完整的 HTML 文档（doctype + html + head + body）
func (s *Synthesizer) Synthesize(title, description, hints string) string {
	kind := Classify(title, description, hints)
	doc, _ := s.Build(kind, title, description)
	return doc
}

// Build 按指定类型合成文档，同时返回实际使用的配色
func (s *Synthesizer) Build(kind Kind, title, description string) (string, Palette) {
	g, ok := genres[kind]
	if !ok {
		g = genres[Adaptive]
	}

	palette := s.pickPalette(g.palette, g.singleAccent)
	data := shellData{
		Kind:        string(g.kind),
		Title:       utils.PlainText(title),
		Description: utils.PlainText(description),
		Primary:     palette.Primary,
		Secondary:   palette.Secondary,
		Background:  g.background,
		Controls:    g.controls,
		StartLabel:  g.startLabel,
		HUD:         g.hud,
		Script:      g.script,
	}
	if data.Title == "" {
		data.Title = "Mystery Game"
	}

	var b strings.Builder
	if err := shellTemplate.Execute(&b, data); err != nil {
		log.Printf("fallback template %s failed: %v", kind, err)
		return minimalDocument(data.Title), palette
	}
	return b.String(), palette
}

// Palette 一次合成选中的强调色
type Palette struct {
	Primary   string
	Secondary string
}

func (s *Synthesizer) pickPalette(colors []string, single bool) Palette {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := Palette{Primary: colors[s.rnd.IntN(len(colors))]}
	if single {
		p.Secondary = p.Primary
		return p
	}
	p.Secondary = colors[s.rnd.IntN(len(colors))]
	return p
}

func minimalDocument(title string) string {
	return "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"UTF-8\">\n<title>" + title +
		"</title>\n</head>\n<body>\n<canvas id=\"gameCanvas\" width=\"800\" height=\"600\"></canvas>\n</body>\n</html>\n"
}
