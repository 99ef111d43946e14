// Package action parses the structured action tag the dialogue engine embeds
// in its replies and maps it to a dispatchable kind.
package action

import (
	"regexp"
	"strings"
)

// Kind is the dispatchable action kind.
type Kind string

// Recognized action kinds. Anything else in the ACTION slot dispatches as
// KindNone (the tag is still stripped from the display text).
const (
	KindSearch         Kind = "Search"
	KindAddToCart      Kind = "Add_to_Cart"
	KindRemoveFromCart Kind = "Remove_from_Cart"
	KindClearCart      Kind = "Clear_Cart"
	KindNone           Kind = ""
)

// Action is the structured directive extracted from one reply. It is
// transient: parsed, dispatched once, never stored.
type Action struct {
	Kind   Kind
	Title  string
	Author string
	Genre  string
}

// Grammar selects which tag shape a deployment accepts. Only one is active
// at a time: the short grammar is a prefix of the full one, so accepting
// both would make parses ambiguous.
type Grammar string

const (
	// GrammarFull is [ACTION: k; BOOK_TITLE: t; AUTHOR: a; GENRE: g],
	// all four fields always present even when empty.
	GrammarFull Grammar = "full"
	// GrammarShort is [ACTION: k; BOOK_TITLE: t], author and genre implied absent.
	GrammarShort Grammar = "short"
)

var (
	fullPattern  = regexp.MustCompile(`\[ACTION: (.*?); BOOK_TITLE: (.*?); AUTHOR: (.*?); GENRE: (.*?)\]`)
	shortPattern = regexp.MustCompile(`\[ACTION: (.*?); BOOK_TITLE: (.*?)\]`)
)

// Parser extracts actions for one configured grammar.
type Parser struct {
	grammar Grammar
}

// NewParser returns a parser for the given grammar; an unknown grammar
// falls back to full.
func NewParser(g Grammar) *Parser {
	if g != GrammarShort {
		g = GrammarFull
	}
	return &Parser{grammar: g}
}

// Extract scans text for action tags. Every matched tag is removed from the
// returned display text verbatim. When several tags appear, the last match
// wins; earlier ones are stripped but otherwise ignored. With no tags, the
// text is returned unchanged and the action kind is KindNone.
func (p *Parser) Extract(text string) (Action, string) {
	pattern := fullPattern
	if p.grammar == GrammarShort {
		pattern = shortPattern
	}

	var act Action
	matches := pattern.FindAllStringSubmatch(text, -1)
	for _, m := range matches {
		act = Action{Kind: parseKind(m[1]), Title: m[2]}
		if len(m) > 4 {
			act.Author = m[3]
			act.Genre = m[4]
		}
		text = strings.Replace(text, m[0], "", 1)
	}
	return act, text
}

func parseKind(s string) Kind {
	switch Kind(s) {
	case KindSearch, KindAddToCart, KindRemoveFromCart, KindClearCart:
		return Kind(s)
	}
	return KindNone
}
