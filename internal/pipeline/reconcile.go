package pipeline

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"banlist/internal"
	"banlist/internal/taxonomy"
	"banlist/internal/util"
)

type Reconciler struct {
	country  string
	citation string
	coll     *collate.Collator
}

func NewReconciler(country, citation string) *Reconciler {
	return &Reconciler{country: country, citation: citation, coll: collate.New(language.Korean)}
}

type BuildStats struct {
	AuthorityRows     int
	SkippedEmpty      int
	SkippedDuplicates int
	Joined            int
	Items             int
}

type BuildResult struct {
	Items []internal.Item
	Stats BuildStats
}

// Build reconciles the authority list against the term list into the item
// catalog. Authority rows are processed in source order; for rows sharing a
// normalized name the first wins and later ones are dropped, not merged.
func (r *Reconciler) Build(authority []internal.AuthorityRow, terms []internal.TermRow) BuildResult {
	termIndex := map[string][]internal.TermRow{}
	for _, t := range terms {
		key := util.NormalizeKey(t.NameKo)
		termIndex[key] = append(termIndex[key], t)
	}

	seen := map[string]struct{}{}
	stats := BuildStats{AuthorityRows: len(authority)}
	items := make([]internal.Item, 0, len(authority))

	for _, row := range authority {
		if row.NameKo == "" {
			stats.SkippedEmpty++
			continue
		}
		key := util.NormalizeKey(row.NameKo)
		if _, dup := seen[key]; dup {
			stats.SkippedDuplicates++
			continue
		}
		seen[key] = struct{}{}

		// Exact normalized-name join only. Substring joins were rejected
		// upstream: a short generic term matches every compound that
		// contains it.
		var nameEn *string
		var broadCat string
		if matches := termIndex[key]; len(matches) > 0 {
			m := matches[0]
			if m.NameEn != "" {
				nameEn = util.StringPtr(m.NameEn)
			}
			broadCat = m.BroadCategory
			stats.Joined++
		}

		primary := taxonomy.ClassifyPrimary(row.Label)

		items = append(items, internal.Item{
			NameKo:          row.NameKo,
			NameEn:          nameEn,
			PrimaryCategory: primary,
			Tags:            collectTags(primary, broadCat, row.Label),
			RulesSummary: map[string]internal.ChannelRules{
				r.country: {CarryOn: verdictText(row.Cabin), Checked: verdictText(row.Checked)},
			},
			RulesSources: map[string][]string{r.country: {r.citation}},
			Published:    true,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		return r.coll.CompareString(items[i].NameKo, items[j].NameKo) < 0
	})
	for i := range items {
		items[i].ItemID = i + 1
	}
	stats.Items = len(items)

	return BuildResult{Items: items, Stats: stats}
}

func collectTags(values ...string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// verdictText collapses Unknown into 금지: the authority export leaves cells
// blank instead of writing a cross, so absence reads as denied.
func verdictText(f internal.RuleFlag) string {
	if f == internal.FlagAllowed {
		return "허용"
	}
	return "금지"
}
