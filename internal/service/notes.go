package service

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// NotesRenderer 将备注 Markdown 渲染为安全的 HTML
type NotesRenderer struct {
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewNotesRenderer 构造 NotesRenderer
func NewNotesRenderer() *NotesRenderer {
	return &NotesRenderer{
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Linkify),
			goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// Render 渲染备注，空备注返回空字符串
func (r *NotesRenderer) Render(notes string) string {
	trimmed := strings.TrimSpace(notes)
	if trimmed == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(trimmed), &buf); err != nil {
		return r.sanitizer.Sanitize(trimmed)
	}
	return strings.TrimSpace(r.sanitizer.Sanitize(buf.String()))
}
