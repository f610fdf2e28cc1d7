package internal

// RuleFlag is the tri-state reading of the authority source's circle/cross
// marks. The source leaves cells blank instead of writing a cross, so Unknown
// is collapsed to denied when the catalog is rendered; consumers should treat
// a denied flag as "not explicitly allowed" rather than a data guarantee.
type RuleFlag string

const (
	FlagAllowed RuleFlag = "allowed"
	FlagDenied  RuleFlag = "denied"
	FlagUnknown RuleFlag = "unknown"
)

const (
	CategoryLiquidsGels         = "liquids_gels"
	CategorySharpObjects        = "sharp_objects"
	CategoryBluntObjects        = "blunt_objects"
	CategoryWeapons             = "weapons"
	CategoryChemicalToxic       = "chemical_toxic"
	CategoryExplosivesFlammable = "explosives_flammable"
	CategorySecurityHighAlert   = "security_high_alert"
	CategoryOther               = "other"
)

// AuthorityRow is one row of the regulatory banned-item list.
type AuthorityRow struct {
	Label   string
	NameKo  string
	Cabin   RuleFlag
	Checked RuleFlag
}

// TermRow is one row of the search-term frequency list.
type TermRow struct {
	NameKo        string
	NameEn        string
	BroadCategory string
	Freq          int
}

// ChannelRules carries per-channel verdict text as served to the web app
// ("허용" / "금지").
type ChannelRules struct {
	CarryOn string `json:"carry_on"`
	Checked string `json:"checked"`
}

// Item is one catalog entry. ItemID is a dense 1-based sequence assigned
// after sorting by Korean collation of NameKo; it is stable within a single
// build only and shifts on rebuild when items are added or removed, so it
// must not be persisted outside the generated artifacts.
type Item struct {
	ItemID            int                     `json:"item_id"`
	NameKo            string                  `json:"name_ko"`
	NameEn            *string                 `json:"name_en"`
	PrimaryCategory   string                  `json:"primary_category"`
	SubCategory       *string                 `json:"sub_category,omitempty"`
	Tags              []string                `json:"tags"`
	RulesSummary      map[string]ChannelRules `json:"rules_summary"`
	RulesSources      map[string][]string     `json:"rules_sources"`
	Published         bool                    `json:"published"`
	SourceLastChecked *string                 `json:"source_last_checked"`
}

// SuggestEntry is one autocomplete suggestion. Freq is the maximum observed
// frequency across all contributions for the term, never a sum.
type SuggestEntry struct {
	Term string `json:"term"`
	Freq int    `json:"freq"`
}

type Category struct {
	Name          string   `json:"name"`
	SubCategories []string `json:"sub_categories"`
}

type CatalogFile struct {
	Country string `json:"country"`
	Items   []Item `json:"items"`
}

type SuggestFile struct {
	Country string         `json:"country"`
	Terms   []SuggestEntry `json:"terms"`
}

type CategoriesFile struct {
	Categories []Category `json:"categories"`
}
