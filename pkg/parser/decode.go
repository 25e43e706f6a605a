package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/adrianliechti/docparse/pkg/document"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var errUnrecognized = errors.New("unrecognized response shape")

// Decode turns a model response into pages. The response may be JSON itself or Markdown wrapping
// it in a fenced json block. Responses that are neither a JSON list of pages nor an object with a
// "pages" list end up as Fallback carrying the text cut to maxLength runes.
func Decode(text string, maxLength int) (Result, error) {
	text = strings.TrimSpace(text)

	if text == "" {
		return Structured{}, nil
	}

	pages, err := decodePages(text)

	if err != nil {
		if block, ok := fencedJSON(text); ok {
			pages, err = decodePages(block)
		}
	}

	if err != nil {
		return Fallback{Text: truncate(text, maxLength)}, err
	}

	return Structured(pages), nil
}

func decodePages(text string) ([]document.Page, error) {
	data := []byte(text)

	if len(data) == 0 || !json.Valid(data) {
		return nil, errUnrecognized
	}

	switch data[0] {
	case '[':
		var pages []document.Page

		if err := json.Unmarshal(data, &pages); err != nil {
			return nil, err
		}

		if pages == nil {
			pages = []document.Page{}
		}

		return pages, nil

	case '{':
		var object struct {
			Pages json.RawMessage `json:"pages"`
		}

		if err := json.Unmarshal(data, &object); err != nil {
			return nil, err
		}

		if !bytes.HasPrefix(bytes.TrimSpace(object.Pages), []byte("[")) {
			return nil, errUnrecognized
		}

		return decodePages(string(object.Pages))
	}

	return nil, errUnrecognized
}

// fencedJSON returns the content of the first fenced code block tagged json or untagged.
func fencedJSON(markdown string) (string, bool) {
	source := []byte(markdown)

	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var result strings.Builder
	found := false

	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || found {
			return ast.WalkContinue, nil
		}

		block, ok := n.(*ast.FencedCodeBlock)

		if !ok {
			return ast.WalkContinue, nil
		}

		lang := strings.ToLower(string(block.Language(source)))

		if lang != "" && lang != "json" {
			return ast.WalkSkipChildren, nil
		}

		lines := block.Lines()

		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			result.Write(segment.Value(source))
		}

		found = true

		return ast.WalkStop, nil
	})

	return strings.TrimSpace(result.String()), found
}

func truncate(text string, n int) string {
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}

	return string([]rune(text)[:n])
}
