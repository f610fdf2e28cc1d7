package pipeline

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"banlist/internal"
	"banlist/internal/util"
)

// ExportItemsToXLSX renders the catalog as a review sheet for curators.
func ExportItemsToXLSX(items []internal.Item, country, outputPath string) error {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	headers := []string{
		"item_id", "name_ko", "name_en", "slug",
		"primary_category", "sub_category", "tags",
		"carry_on", "checked", "sources", "published",
	}

	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for i, item := range items {
		r := i + 2
		set := func(col int, value any) {
			cell, _ := excelize.CoordinatesToCellName(col, r)
			_ = f.SetCellValue(sheet, cell, value)
		}

		summary := item.RulesSummary[country]
		set(1, item.ItemID)
		set(2, item.NameKo)
		set(3, derefString(item.NameEn))
		set(4, util.Slugify(derefString(item.NameEn), item.NameKo))
		set(5, item.PrimaryCategory)
		set(6, derefString(item.SubCategory))
		set(7, strings.Join(item.Tags, " | "))
		set(8, summary.CarryOn)
		set(9, summary.Checked)
		set(10, strings.Join(item.RulesSources[country], " | "))
		set(11, item.Published)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return err
	}
	return f.SaveAs(outputPath)
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
