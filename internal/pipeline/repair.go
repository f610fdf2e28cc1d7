package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

type ChannelFlags struct {
	CarryOn *bool `json:"carry_on"`
	Checked *bool `json:"checked"`
}

// RepairedItem is the canonical catalog item layout: every model field
// present, in fixed order, with rule flags coerced to boolean-or-null.
type RepairedItem struct {
	ItemID            int                     `json:"item_id"`
	NameKo            *string                 `json:"name_ko"`
	NameEn            *string                 `json:"name_en"`
	PrimaryCategory   *string                 `json:"primary_category"`
	SubCategory       *string                 `json:"sub_category"`
	Description       *string                 `json:"description"`
	Tags              []string                `json:"tags"`
	RulesSummary      map[string]ChannelFlags `json:"rules_summary"`
	RulesSources      map[string][]string     `json:"rules_sources"`
	Published         bool                    `json:"published"`
	SourceLastChecked *string                 `json:"source_last_checked"`
}

type RepairedCatalog struct {
	Country string         `json:"country"`
	Items   []RepairedItem `json:"items"`
}

// RepairCatalog reshapes a previously built catalog document into the
// canonical layout. Legacy flag encodings (허용/금지 strings, true/false
// strings, booleans) collapse to boolean-or-null; rules_sources is always a
// list. Idempotent: repairing its own output changes nothing.
func RepairCatalog(doc map[string]any, country string) (*RepairedCatalog, error) {
	rawItems, ok := doc["items"].([]any)
	if !ok {
		return nil, fmt.Errorf("invalid catalog: expected items array")
	}

	items := make([]RepairedItem, 0, len(rawItems))
	for _, raw := range rawItems {
		obj, _ := raw.(map[string]any)
		items = append(items, repairItem(obj, country))
	}

	out := &RepairedCatalog{Country: country, Items: items}
	if c, ok := doc["country"].(string); ok && c != "" {
		out.Country = c
	}
	return out, nil
}

// RepairFile rewrites the catalog at path in place. Nothing is written when
// validation fails.
func RepairFile(path, country string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return 0, err
	}

	repaired, err := RepairCatalog(doc, country)
	if err != nil {
		return 0, err
	}
	if err := WriteJSON(path, repaired); err != nil {
		return 0, err
	}
	return len(repaired.Items), nil
}

func repairItem(raw map[string]any, country string) RepairedItem {
	item := RepairedItem{
		ItemID:            intValue(raw["item_id"]),
		NameKo:            stringValue(raw["name_ko"]),
		NameEn:            stringValue(raw["name_en"]),
		PrimaryCategory:   stringValue(raw["primary_category"]),
		SubCategory:       stringValue(raw["sub_category"]),
		Description:       stringValue(raw["description"]),
		Tags:              stringList(raw["tags"]),
		Published:         truthy(raw["published"]),
		SourceLastChecked: stringValue(raw["source_last_checked"]),
	}

	var carryOn, checked *bool
	if summary, ok := raw["rules_summary"].(map[string]any); ok {
		if ch, ok := summary[country].(map[string]any); ok {
			carryOn = coerceFlag(ch["carry_on"])
			checked = coerceFlag(ch["checked"])
		}
	}
	item.RulesSummary = map[string]ChannelFlags{country: {CarryOn: carryOn, Checked: checked}}

	sources := []string{}
	if srcs, ok := raw["rules_sources"].(map[string]any); ok {
		sources = stringList(srcs[country])
	}
	item.RulesSources = map[string][]string{country: sources}

	return item
}

func coerceFlag(v any) *bool {
	switch val := v.(type) {
	case bool:
		return &val
	case string:
		s := strings.TrimSpace(val)
		switch {
		case s == "허용":
			return boolPtr(true)
		case s == "금지":
			return boolPtr(false)
		case strings.EqualFold(s, "true"):
			return boolPtr(true)
		case strings.EqualFold(s, "false"):
			return boolPtr(false)
		}
	}
	return nil
}

func boolPtr(v bool) *bool { return &v }

func intValue(v any) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	}
	return 0
}

func stringValue(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

func stringList(v any) []string {
	list, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(list))
	for _, e := range list {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func truthy(v any) bool {
	switch val := v.(type) {
	case nil:
		return false
	case bool:
		return val
	case string:
		return val != ""
	case float64:
		return val != 0
	}
	return true
}
