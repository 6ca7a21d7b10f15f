package utils

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

var mdParser = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// StripCodeFence 去掉 LLM 输出外层的 ```html ... ``` 包裹。
// 不以 ``` 开头的内容原样返回。
func StripCodeFence(source string) string {
	trimmed := strings.TrimSpace(source)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}

	src := []byte(trimmed)
	doc := mdParser.Parser().Parse(text.NewReader(src))

	var buf bytes.Buffer
	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(src))
		}
		found = true
		return ast.WalkStop, nil
	})

	if !found {
		// 兜底：手动去掉首尾围栏
		trimmed = strings.TrimPrefix(trimmed, "```html")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(trimmed, "```")
		return strings.TrimSpace(trimmed)
	}
	return strings.TrimSpace(buf.String())
}
