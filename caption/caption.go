// Package caption draws the localized hero copy over the particle field
package caption

import (
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lixenwraith/starfield/render"
)

// Handle is the alias shown under the title
const Handle = "Dasfax3034"

var supportedTags = []language.Tag{
	language.English,
	language.French,
}

var tagMatcher = language.NewMatcher(supportedTags)

// Supported returns the list of supported language tags
func Supported() []language.Tag {
	tags := make([]language.Tag, len(supportedTags))
	copy(tags, supportedTags)
	return tags
}

// Default returns the fallback language
func Default() language.Tag {
	return language.English
}

// Resolve picks the best supported language for a locale string
// POSIX forms such as fr_FR.UTF-8 are accepted; empty or unknown locales fall back to Default
func Resolve(locale string) language.Tag {
	locale = strings.TrimSpace(locale)
	if i := strings.IndexAny(locale, ".@"); i >= 0 {
		locale = locale[:i]
	}
	locale = strings.ReplaceAll(locale, "_", "-")
	if locale == "" || locale == "C" || locale == "POSIX" {
		return Default()
	}

	tag, err := language.Parse(locale)
	if err != nil {
		return Default()
	}
	_, index, confidence := tagMatcher.Match(tag)
	if confidence == language.No {
		return Default()
	}
	return supportedTags[index]
}

// Caption is a centred block of hero copy
type Caption struct {
	Lines []string
	Color colorful.Color
}

// New renders the hero copy for tag
func New(tag language.Tag, color colorful.Color) *Caption {
	p := message.NewPrinter(tag)
	return &Caption{
		Lines: []string{
			p.Sprintf(keyTitle),
			p.Sprintf(keyAlias, Handle),
			"",
			p.Sprintf(keySubtitle),
			"",
			p.Sprintf(keyHint),
		},
		Color: color,
	}
}

// Draw centres the lines on the context's cell grid
// Contexts without text support are left untouched
func (c *Caption) Draw(ctx render.Context) {
	td, ok := ctx.(render.TextDrawer)
	if !ok {
		return
	}
	cols, rows := td.Cells()
	top := (rows - len(c.Lines)) / 2

	for i, line := range c.Lines {
		if line == "" {
			continue
		}
		col := (cols - runewidth.StringWidth(line)) / 2
		td.DrawText(max(col, 0), top+i, line, c.Color)
	}
}
