package service

import (
	"bytes"
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// renderer turns admin-written markdown into HTML that is safe to embed.
type renderer struct {
	markdown goldmark.Markdown
	ugc      *bluemonday.Policy
	strict   *bluemonday.Policy
}

func newRenderer() *renderer {
	return &renderer{
		markdown: goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		ugc:      bluemonday.UGCPolicy(),
		strict:   bluemonday.StrictPolicy(),
	}
}

// HTML renders markdown and sanitizes the result.
func (r *renderer) HTML(markdown string) string {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(markdown), &buf); err != nil {
		return html.EscapeString(markdown)
	}
	return r.ugc.Sanitize(buf.String())
}

// PlainText strips every tag from s and trims it.
func (r *renderer) PlainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(r.strict.Sanitize(s)))
}
