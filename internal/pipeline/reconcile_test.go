package pipeline

import (
	"testing"

	"banlist/internal"
)

func authorityRow(label, name string, cabin, checked internal.RuleFlag) internal.AuthorityRow {
	return internal.AuthorityRow{Label: label, NameKo: name, Cabin: cabin, Checked: checked}
}

func TestBuildCatalog(t *testing.T) {
	authority := []internal.AuthorityRow{
		authorityRow("액체/겔(gel)류 물질", "라이터", internal.FlagAllowed, internal.FlagDenied),
		authorityRow("둔기", "야구배트", internal.FlagDenied, internal.FlagAllowed),
		authorityRow("생활용품", "가위", internal.FlagDenied, internal.FlagAllowed),
	}
	terms := []internal.TermRow{
		{NameKo: "가위", NameEn: "scissors", BroadCategory: "생활용품류", Freq: 50},
	}

	result := NewReconciler("KR", "국토교통부(2020-09-28)").Build(authority, terms)
	items := result.Items

	if len(items) != 3 {
		t.Fatalf("len=%d", len(items))
	}

	// Dense 1..N ids in Korean collation order of name_ko.
	wantOrder := []string{"가위", "라이터", "야구배트"}
	for i, it := range items {
		if it.ItemID != i+1 {
			t.Fatalf("item_id=%d at position %d", it.ItemID, i)
		}
		if it.NameKo != wantOrder[i] {
			t.Fatalf("position %d: got %s want %s", i, it.NameKo, wantOrder[i])
		}
	}

	scissors := items[0]
	if scissors.NameEn == nil || *scissors.NameEn != "scissors" {
		t.Fatalf("join miss: %+v", scissors)
	}
	if len(scissors.Tags) != 3 || scissors.Tags[1] != "생활용품류" {
		t.Fatalf("unexpected tags: %v", scissors.Tags)
	}

	lighter := items[1]
	if lighter.PrimaryCategory != internal.CategoryLiquidsGels {
		t.Fatalf("primary=%s", lighter.PrimaryCategory)
	}
	summary := lighter.RulesSummary["KR"]
	if summary.CarryOn != "허용" || summary.Checked != "금지" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if got := lighter.RulesSources["KR"]; len(got) != 1 || got[0] != "국토교통부(2020-09-28)" {
		t.Fatalf("unexpected sources: %v", got)
	}
	if lighter.NameEn != nil {
		t.Fatalf("unmatched item should have nil name_en")
	}
	if !lighter.Published {
		t.Fatal("items publish by default")
	}

	if result.Stats.Joined != 1 || result.Stats.Items != 3 {
		t.Fatalf("unexpected stats: %+v", result.Stats)
	}
}

func TestBuildDuplicateNamesFirstWins(t *testing.T) {
	authority := []internal.AuthorityRow{
		authorityRow("둔기", "라이터", internal.FlagAllowed, internal.FlagAllowed),
		authorityRow("액체/겔(gel)류 물질", `"라이터"`, internal.FlagDenied, internal.FlagDenied),
		authorityRow("둔기", "라이터  ", internal.FlagDenied, internal.FlagDenied),
	}

	result := NewReconciler("KR", "src").Build(authority, nil)
	if len(result.Items) != 1 {
		t.Fatalf("len=%d", len(result.Items))
	}
	it := result.Items[0]
	if it.PrimaryCategory != internal.CategoryBluntObjects {
		t.Fatalf("later duplicate replaced the first: %+v", it)
	}
	if it.RulesSummary["KR"].CarryOn != "허용" {
		t.Fatalf("unexpected summary: %+v", it.RulesSummary)
	}
	if result.Stats.SkippedDuplicates != 2 {
		t.Fatalf("stats: %+v", result.Stats)
	}
}

func TestBuildSkipsEmptyNames(t *testing.T) {
	authority := []internal.AuthorityRow{
		authorityRow("둔기", "", internal.FlagAllowed, internal.FlagAllowed),
		authorityRow("둔기", "망치", internal.FlagDenied, internal.FlagAllowed),
	}

	result := NewReconciler("KR", "src").Build(authority, nil)
	if len(result.Items) != 1 || result.Stats.SkippedEmpty != 1 {
		t.Fatalf("items=%d stats=%+v", len(result.Items), result.Stats)
	}
}

func TestBuildNormalizedNamesDistinct(t *testing.T) {
	authority := []internal.AuthorityRow{
		authorityRow("둔기", "야구 배트", internal.FlagDenied, internal.FlagAllowed),
		authorityRow("둔기", "야구  배트", internal.FlagDenied, internal.FlagAllowed),
		authorityRow("둔기", "골프채", internal.FlagDenied, internal.FlagAllowed),
	}

	result := NewReconciler("KR", "src").Build(authority, nil)
	if len(result.Items) != 2 {
		t.Fatalf("len=%d", len(result.Items))
	}
}

func TestBuildUnknownFlagCollapsesToDenied(t *testing.T) {
	authority := []internal.AuthorityRow{
		authorityRow("둔기", "망치", internal.FlagUnknown, internal.FlagAllowed),
	}

	result := NewReconciler("KR", "src").Build(authority, nil)
	summary := result.Items[0].RulesSummary["KR"]
	if summary.CarryOn != "금지" || summary.Checked != "허용" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
}

// Only exact normalized-name joins are allowed: 물 must not pick up the 물질
// entry that contains it as a substring.
func TestBuildNoSubstringJoin(t *testing.T) {
	authority := []internal.AuthorityRow{
		authorityRow("화학물질 및 유독성 물질", "물", internal.FlagAllowed, internal.FlagAllowed),
	}
	terms := []internal.TermRow{
		{NameKo: "물질", NameEn: "substance", Freq: 10},
	}

	result := NewReconciler("KR", "src").Build(authority, terms)
	if result.Items[0].NameEn != nil {
		t.Fatalf("substring join happened: %+v", result.Items[0])
	}
	if result.Stats.Joined != 0 {
		t.Fatalf("stats: %+v", result.Stats)
	}
}

func TestBuildFirstTermEntryWins(t *testing.T) {
	authority := []internal.AuthorityRow{
		authorityRow("둔기", "가위", internal.FlagDenied, internal.FlagAllowed),
	}
	terms := []internal.TermRow{
		{NameKo: "가위", NameEn: "scissors", Freq: 50},
		{NameKo: "가위", NameEn: "shears", Freq: 90},
	}

	result := NewReconciler("KR", "src").Build(authority, terms)
	if result.Items[0].NameEn == nil || *result.Items[0].NameEn != "scissors" {
		t.Fatalf("later near-duplicate term used: %+v", result.Items[0])
	}
}
