// Package markdown turns Markdown source into highlight spans using goldmark.
package markdown

import (
	"bytes"
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// Supported flavors.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Lexer produces highlight spans for Markdown documents. A Lexer is safe
// for concurrent use.
type Lexer struct {
	flavor string
	md     goldmark.Markdown
}

// NewLexer returns a lexer for flavor. Unknown flavors fall back to
// CommonMark.
func NewLexer(flavor string) *Lexer {
	f := flavorOrDefault(flavor)
	return &Lexer{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured flavor.
func (l *Lexer) Flavor() string {
	return l.flavor
}

// Lex parses content and returns its spans in document pre-order: a
// container span always precedes the spans nested inside it, so painting
// them in order lets inner spans overwrite outer ones.
func (l *Lexer) Lex(ctx context.Context, content []byte) ([]Span, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lex cancelled: %w", err)
	}

	src := source(bytes.Clone(content))
	doc := l.md.Parser().Parse(text.NewReader(src), parser.WithContext(parser.NewContext()))

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("lex cancelled: %w", err)
	}

	w := &walker{src: src}
	if err := ast.Walk(doc, w.visit); err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}
	return w.spans, nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
