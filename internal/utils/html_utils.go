package utils

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// PlainText 去掉所有标签，结果可以直接放进 HTML 文本节点
func PlainText(s string) string {
	return strings.TrimSpace(strictPolicy.Sanitize(s))
}

// DocumentInfo 生成游戏代码的概要，用于日志与校验
type DocumentInfo struct {
	Title        string
	Scripts      int
	Canvases     int
	BodyElements int // body 下的直接子元素
}

// Playable 至少有一段脚本，且 body 不是空的
func (d DocumentInfo) Playable() bool {
	return d.Scripts > 0 && d.BodyElements > 0
}

// HasDocumentShell 粗略判断是否为完整的独立 HTML 文档：包含 doctype 与 html 根标签
func HasDocumentShell(code string) bool {
	lower := strings.ToLower(code)
	return strings.Contains(lower, "<!doctype html") &&
		strings.Contains(lower, "<html") &&
		strings.Contains(lower, "</html>")
}

// DescribeDocument 解析 HTML，统计脚本、画布与 body 子元素数量。
// 解析器会自动补全缺失的 body，因此只看子元素
func DescribeDocument(code string) (DocumentInfo, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(code))
	if err != nil {
		return DocumentInfo{}, err
	}
	return DocumentInfo{
		Title:        strings.TrimSpace(doc.Find("title").First().Text()),
		Scripts:      doc.Find("script").Length(),
		Canvases:     doc.Find("canvas").Length(),
		BodyElements: doc.Find("body").Children().Length(),
	}, nil
}
