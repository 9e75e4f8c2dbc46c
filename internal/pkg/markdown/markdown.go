package markdown

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	htmlrenderer "github.com/yuin/goldmark/renderer/html"
)

var (
	engine = goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Strikethrough,
			extension.Linkify,
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			htmlrenderer.WithHardWraps(),
			htmlrenderer.WithXHTML(),
		),
	)
	policy = bluemonday.UGCPolicy()
)

func init() {
	policy.AllowImages()
	policy.AddTargetBlankToFullyQualifiedLinks(true)
	policy.RequireNoReferrerOnLinks(true)
}

// Render converts markdown to sanitized HTML.
func Render(source string) string {
	text := strings.TrimSpace(source)
	if text == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := engine.Convert([]byte(text), &buf); err != nil {
		return string(policy.SanitizeBytes([]byte(text)))
	}
	return string(policy.SanitizeBytes(buf.Bytes()))
}
