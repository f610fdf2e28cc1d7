package taxonomy

import (
	"regexp"
	"strings"

	"banlist/internal"
)

var reLabelJunk = regexp.MustCompile(`["\s]+`)

// primaryRules is a priority list, not an alphabetical one: authority labels
// can contain markers for several categories and the first match wins.
var primaryRules = []struct {
	category string
	keywords []string
}{
	{internal.CategoryLiquidsGels, []string{"액체", "gel"}},
	{internal.CategorySharpObjects, []string{"끝이 뾰족", "날카로운"}},
	{internal.CategoryBluntObjects, []string{"둔기"}},
	{internal.CategoryWeapons, []string{"화기", "총기", "무기"}},
	{internal.CategoryChemicalToxic, []string{"화학물질", "유독성"}},
	{internal.CategoryExplosivesFlammable, []string{"폭발물", "인화성"}},
	{internal.CategorySecurityHighAlert, []string{"경계경보", "고위험"}},
}

var tagToSub = map[string]string{
	"스포츠용품류": "sports_equipment",
	"의료용품류":  "medical_equipment",
	"생활용품류":  "household_items",
	"공구류":    "tools",
	"무기류":    "weapons",
	"화기류, 총기류,무기류":      "firearms_weapons",
	"둔기":                "blunt_objects",
	"끝이 뾰족한 무기및 날카로운 물체": "sharp_objects",
	"폭발물과 인화성 물질":        "explosives_flammable",
	"화학물질 및 유독성 물질":      "chemical_toxic",
	"액체/겔(gel)류 물질":      "liquids_gels",
	"국토해양부장관이 지정한 고위험이 예상되는 비행편 또는 항공보안 등급 경계경보(Orange) 단계이상": "security_high_alert",
}

// subOverrides pins sub-categories carried over from manual curation. Checked
// against the item's existing sub_category so a rebuilt item that drifted
// away from the curated value is not forced back.
var subOverrides = map[int]string{
	1: "medical_equipment",
}

// ClassifyPrimary maps an authority category label to a primary category by
// scanning primaryRules in order. Unmatched labels fall through to other.
func ClassifyPrimary(label string) string {
	g := strings.ToLower(strings.TrimSpace(reLabelJunk.ReplaceAllString(label, " ")))
	for _, rule := range primaryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(g, kw) {
				return rule.category
			}
		}
	}
	return internal.CategoryOther
}

// RefineSub picks the final sub-category for an already-built item: curated
// override first, then the first tag with a mapping, then a battery keyword
// check on the display name, then the primary category.
func RefineSub(item internal.Item) string {
	if pinned, ok := subOverrides[item.ItemID]; ok {
		if item.SubCategory != nil && *item.SubCategory == pinned {
			return pinned
		}
	}

	for _, tag := range item.Tags {
		if sub, ok := tagToSub[tag]; ok {
			return sub
		}
	}

	if strings.Contains(item.NameKo, "배터리") || strings.Contains(item.NameKo, "리튬") {
		return "batteries"
	}

	if item.PrimaryCategory != "" {
		return item.PrimaryCategory
	}
	return internal.CategoryOther
}
