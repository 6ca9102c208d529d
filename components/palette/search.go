package palette

import (
	"sort"
	"strings"

	"github.com/goliatone/go-formbuilder/pkg/elements"
)

// Search filters buttons by a case-insensitive match on label or type tag.
// Prefix matches come first; ties keep palette order. An empty query keeps
// every button.
func Search(buttons []elements.PaletteButton, query string, group elements.Group, limit int, opts Options) []elements.PaletteButton {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	q := strings.ToLower(strings.TrimSpace(query))
	matches := make([]match, 0, len(buttons))
	for pos, button := range buttons {
		if group != "" && button.Group != group {
			continue
		}
		if q == "" {
			matches = append(matches, match{button: button, pos: pos})
			continue
		}
		label := strings.ToLower(button.Label)
		tag := strings.ToLower(string(button.Type))
		if !strings.Contains(label, q) && !strings.Contains(tag, q) {
			continue
		}
		matches = append(matches, match{
			button:   button,
			pos:      pos,
			isPrefix: strings.HasPrefix(label, q) || strings.HasPrefix(tag, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].pos < matches[j].pos
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]elements.PaletteButton, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.button)
	}
	return out
}

type match struct {
	button   elements.PaletteButton
	pos      int
	isPrefix bool
}
