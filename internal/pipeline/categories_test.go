package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"banlist/internal"
)

func docFromJSON(t *testing.T, blob string) map[string]any {
	t.Helper()
	var doc map[string]any
	if err := json.Unmarshal([]byte(blob), &doc); err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestAssignCategories(t *testing.T) {
	doc := docFromJSON(t, `{
  "country": "KR",
  "items": [
    {"item_id": 1, "name_ko": "야구배트", "primary_category": "blunt_objects", "tags": ["스포츠용품류"]},
    {"item_id": 2, "name_ko": "골프채", "primary_category": "blunt_objects", "tags": ["스포츠용품류"]},
    {"item_id": 3, "name_ko": "망치", "primary_category": "blunt_objects", "tags": ["공구류"]},
    {"item_id": 4, "name_ko": "염산", "primary_category": "chemical_toxic", "tags": ["화학물질 및 유독성 물질"]}
  ]
}`)

	cats, err := AssignCategories(doc)
	if err != nil {
		t.Fatal(err)
	}

	for _, raw := range doc["items"].([]any) {
		obj := raw.(map[string]any)
		if _, ok := obj["sub_category"].(string); !ok {
			t.Fatalf("item %v missing sub_category", obj["item_id"])
		}
	}
	if len(cats) != 2 {
		t.Fatalf("len=%d", len(cats))
	}
	if cats[0].Name != internal.CategoryBluntObjects || cats[1].Name != internal.CategoryChemicalToxic {
		t.Fatalf("categories not sorted by name: %+v", cats)
	}
	if len(cats[0].SubCategories) != 2 || cats[0].SubCategories[0] != "sports_equipment" {
		t.Fatalf("unexpected sub_categories: %+v", cats[0].SubCategories)
	}
}

func TestAssignCategoriesRejectsBadShape(t *testing.T) {
	if _, err := AssignCategories(map[string]any{"items": map[string]any{}}); err == nil {
		t.Fatal("expected validation error")
	}
	if _, err := AssignCategories(map[string]any{"country": "KR"}); err == nil {
		t.Fatal("expected validation error for missing items")
	}
}

// The categories pass runs on whatever the items file currently holds: a
// fresh build with 허용/금지 flag strings or a catalog already rewritten by
// the normalize command with boolean-or-null flags. Both must work, and
// fields the pass does not own must survive the rewrite.
func TestAssignCategoriesFileAfterNormalize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.kr.json")
	blob := `{
  "country": "KR",
  "items": [
    {
      "item_id": 1,
      "name_ko": "야구배트",
      "primary_category": "blunt_objects",
      "description": "스포츠용 배트",
      "tags": ["스포츠용품류"],
      "rules_summary": {"KR": {"carry_on": "금지", "checked": "허용"}},
      "rules_sources": {"KR": ["국토교통부(2020-09-28)"]},
      "published": true
    }
  ]
}`
	if err := os.WriteFile(path, []byte(blob), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := RepairFile(path, "KR"); err != nil {
		t.Fatal(err)
	}

	count, cats, err := AssignCategoriesFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 || len(cats) != 1 {
		t.Fatalf("count=%d cats=%+v", count, cats)
	}
	if cats[0].Name != internal.CategoryBluntObjects || cats[0].SubCategories[0] != "sports_equipment" {
		t.Fatalf("unexpected taxonomy: %+v", cats)
	}

	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	doc := docFromJSON(t, string(after))
	obj := doc["items"].([]any)[0].(map[string]any)

	if obj["sub_category"] != "sports_equipment" {
		t.Fatalf("sub_category=%v", obj["sub_category"])
	}
	// Normalized boolean flags must pass through untouched.
	flags := obj["rules_summary"].(map[string]any)["KR"].(map[string]any)
	if flags["carry_on"] != false || flags["checked"] != true {
		t.Fatalf("flags rewritten: %v", flags)
	}
	if obj["description"] != "스포츠용 배트" {
		t.Fatalf("description lost: %v", obj["description"])
	}
}

func TestAssignCategoriesFileBadShapeLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.kr.json")
	original := []byte(`{"items": 42}`)
	if err := os.WriteFile(path, original, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := AssignCategoriesFile(path); err == nil {
		t.Fatal("expected validation error")
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(after) != string(original) {
		t.Fatal("file was overwritten on validation failure")
	}
}
