package web

import (
	"bytes"
	"html/template"
	"strings"
	"unicode/utf8"

	"extras-cli/internal/model"

	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

const (
	// descriptionHeadingShift keeps description headings below the todo
	// title, which a page renders as h2.
	descriptionHeadingShift = 2
	maxDescriptionRunes     = 8000
)

// Raw HTML in descriptions is escaped: html.WithUnsafe is not set.
var descriptionRenderer = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		emoji.Emoji,
	),
	goldmark.WithParserOptions(
		parser.WithASTTransformers(util.Prioritized(headingShift(descriptionHeadingShift), 100)),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
	),
)

type headingShift int

func (s headingShift) Transform(doc *ast.Document, _ text.Reader, _ parser.Context) {
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if h, ok := n.(*ast.Heading); ok && entering {
			h.Level = min(h.Level+int(s), 6)
		}
		return ast.WalkContinue, nil
	})
}

// truncateDescription cuts src to maxDescriptionRunes on a line boundary
// when one is near, and reports whether anything was dropped.
func truncateDescription(src string) (string, bool) {
	if utf8.RuneCountInString(src) <= maxDescriptionRunes {
		return src, false
	}
	cut := 0
	for i := range src {
		if cut == maxDescriptionRunes {
			src = src[:i]
			break
		}
		cut++
	}
	if nl := strings.LastIndexByte(src, '\n'); nl > len(src)/2 {
		src = src[:nl]
	}
	return src, true
}

// renderDescriptionHTML renders a todo description as an HTML fragment
// wrapped in an article tagged with the todo id.
func renderDescriptionHTML(t model.Todo) template.HTML {
	src := strings.TrimSpace(t.Description)
	var b bytes.Buffer
	b.WriteString(`<article class="todo-description" data-todo-id="`)
	b.WriteString(template.HTMLEscapeString(t.ID))
	b.WriteString(`">`)
	if src != "" {
		src, truncated := truncateDescription(src)
		if err := descriptionRenderer.Convert([]byte(src), &b); err != nil {
			b.WriteString("<pre>" + template.HTMLEscapeString(src) + "</pre>")
		}
		if truncated {
			b.WriteString(`<p class="truncated">Description truncated.</p>`)
		}
	}
	b.WriteString("</article>")
	return template.HTML(b.String())
}
