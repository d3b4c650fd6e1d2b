// Package highlight wraps keyword matches inside a text in a styled span,
// sanitizing the result so a search query can never inject executable markup.
package highlight

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const (
	defaultColor           = "black"
	defaultBackgroundColor = "yellow"
)

// Options controls the colors of the highlight span. Zero values mean
// black text on a yellow background.
type Options struct {
	Color           string
	BackgroundColor string
}

var policy = func() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("span")
	p.AllowStyles("background-color", "color").OnElements("span")
	return p
}()

// Mark returns text with every occurrence of query wrapped in a styled span.
// Matching is case-insensitive and treats query literally, not as a pattern.
// An empty or whitespace-only query returns text unchanged. The returned
// markup is sanitized; only the highlight span survives.
func Mark(text, query string, opts Options) string {
	if strings.TrimSpace(query) == "" {
		return text
	}

	color := opts.Color
	if color == "" {
		color = defaultColor
	}
	background := opts.BackgroundColor
	if background == "" {
		background = defaultBackgroundColor
	}

	pattern := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(query))
	marked := pattern.ReplaceAllStringFunc(text, func(match string) string {
		return fmt.Sprintf(`<span style="background-color: %s; color: %s">%s</span>`, background, color, match)
	})

	return policy.Sanitize(marked)
}
