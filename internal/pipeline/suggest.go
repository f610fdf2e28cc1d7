package pipeline

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"banlist/internal"
)

const (
	// Translated aliases index at 20% of the reported frequency, floored,
	// with a floor of 1 so every alias stays discoverable.
	termAliasDivisor = 5
	itemBaseFreq     = 1
)

// BuildSuggestions merges term-list observations with catalog item names into
// the ranked autocomplete index. A term seen more than once keeps its maximum
// frequency, never a sum. Item names enter at a baseline of 1 and their
// English names at half that, floored to 0, so they rank behind every
// observed search term.
func BuildSuggestions(terms []internal.TermRow, items []internal.Item) []internal.SuggestEntry {
	freqs := map[string]int{}
	add := func(term string, freq int) {
		term = strings.TrimSpace(term)
		if term == "" {
			return
		}
		if cur, ok := freqs[term]; !ok || freq > cur {
			freqs[term] = freq
		}
	}

	for _, t := range terms {
		add(t.NameKo, t.Freq)
		if t.NameEn != "" {
			alias := t.Freq / termAliasDivisor
			if alias < 1 {
				alias = 1
			}
			add(t.NameEn, alias)
		}
	}

	for _, it := range items {
		add(it.NameKo, itemBaseFreq)
		if it.NameEn != nil {
			add(*it.NameEn, itemBaseFreq/2)
		}
	}

	out := make([]internal.SuggestEntry, 0, len(freqs))
	for term, freq := range freqs {
		out = append(out, internal.SuggestEntry{Term: term, Freq: freq})
	}

	coll := collate.New(language.Korean)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Freq != out[j].Freq {
			return out[i].Freq > out[j].Freq
		}
		return coll.CompareString(out[i].Term, out[j].Term) < 0
	})
	return out
}
