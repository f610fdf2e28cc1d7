package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"banlist/internal"
	"banlist/internal/taxonomy"
)

// AssignCategories sets sub_category on every item of a catalog document in
// place and returns the taxonomy grouped under each primary category,
// deduplicated and sorted. The document is handled loosely typed so it can be
// a fresh build (허용/금지 flag strings) or a normalized one (boolean-or-null
// flags); flags and fields this pass does not touch, description included,
// survive the rewrite.
func AssignCategories(doc map[string]any) ([]internal.Category, error) {
	rawItems, ok := doc["items"].([]any)
	if !ok {
		return nil, fmt.Errorf("invalid catalog: expected items array")
	}

	groups := map[string]map[string]struct{}{}
	for _, raw := range rawItems {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}

		view := internal.Item{
			ItemID:          intValue(obj["item_id"]),
			NameKo:          stringOr(obj["name_ko"]),
			PrimaryCategory: stringOr(obj["primary_category"]),
			SubCategory:     stringValue(obj["sub_category"]),
			Tags:            stringList(obj["tags"]),
		}
		sub := taxonomy.RefineSub(view)
		obj["sub_category"] = sub

		if groups[view.PrimaryCategory] == nil {
			groups[view.PrimaryCategory] = map[string]struct{}{}
		}
		groups[view.PrimaryCategory][sub] = struct{}{}
	}

	out := make([]internal.Category, 0, len(groups))
	for name, subs := range groups {
		list := make([]string, 0, len(subs))
		for sub := range subs {
			list = append(list, sub)
		}
		sort.Strings(list)
		out = append(out, internal.Category{Name: name, SubCategories: list})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// AssignCategoriesFile rewrites the items file at path with sub_categories
// assigned and returns the item count and taxonomy. Nothing is written when
// validation fails.
func AssignCategoriesFile(path string) (int, []internal.Category, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, nil, err
	}

	categories, err := AssignCategories(doc)
	if err != nil {
		return 0, nil, err
	}
	if err := WriteJSON(path, doc); err != nil {
		return 0, nil, err
	}
	return len(doc["items"].([]any)), categories, nil
}

func stringOr(v any) string {
	s, _ := v.(string)
	return s
}
