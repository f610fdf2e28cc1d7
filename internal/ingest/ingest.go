package ingest

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/xuri/excelize/v2"

	"banlist/internal"
	"banlist/internal/util"
)

// Authority source columns (ministry spreadsheet export).
const (
	colAuthorityLabel   = "GUBUN"
	colAuthorityName    = "CARRY_BAN"
	colAuthorityCabin   = "CABIN"
	colAuthorityChecked = "TRUST"
)

// Term source columns (search-log spreadsheet export).
const (
	colTermKo    = "금지물품(한글)"
	colTermEn    = "금지물품(영문)"
	colTermBroad = "금지물품 대분류"
	colTermFreq  = "검색건수"
)

// Row is one source row keyed by trimmed header name.
type Row map[string]string

// ReadSource loads a spreadsheet export into header-keyed rows. The format is
// picked by extension: xlsx/xls via excelize, html/htm via the first table in
// the document, anything else as UTF-8 CSV (leading BOM stripped).
func ReadSource(path string) ([]Row, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xls":
		return parseXLSX(raw)
	case ".html", ".htm":
		return parseHTMLTable(raw)
	default:
		return parseCSV(raw)
	}
}

// ReadAuthority loads the regulatory banned-item list. Rows with an empty
// item name are kept here and skipped during reconciliation.
func ReadAuthority(path string) ([]internal.AuthorityRow, error) {
	rows, err := ReadSource(path)
	if err != nil {
		return nil, fmt.Errorf("authority source: %w", err)
	}

	out := make([]internal.AuthorityRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, internal.AuthorityRow{
			Label:   strings.TrimSpace(r[colAuthorityLabel]),
			NameKo:  strings.TrimSpace(r[colAuthorityName]),
			Cabin:   util.ParseAllowFlag(r[colAuthorityCabin]),
			Checked: util.ParseAllowFlag(r[colAuthorityChecked]),
		})
	}
	return out, nil
}

// ReadTerms loads the search-term frequency list. Rows without a Korean term
// carry no usable signal and are dropped.
func ReadTerms(path string) ([]internal.TermRow, error) {
	rows, err := ReadSource(path)
	if err != nil {
		return nil, fmt.Errorf("term source: %w", err)
	}

	out := make([]internal.TermRow, 0, len(rows))
	for _, r := range rows {
		nameKo := strings.TrimSpace(r[colTermKo])
		if nameKo == "" {
			continue
		}
		freq, err := strconv.Atoi(strings.TrimSpace(r[colTermFreq]))
		if err != nil {
			freq = 0
		}
		out = append(out, internal.TermRow{
			NameKo:        nameKo,
			NameEn:        strings.TrimSpace(r[colTermEn]),
			BroadCategory: strings.TrimSpace(r[colTermBroad]),
			Freq:          freq,
		})
	}
	return out, nil
}

func parseCSV(raw []byte) ([]Row, error) {
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	return rowsFromTable(records)
}

func parseXLSX(raw []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	return rowsFromTable(records)
}

func parseHTMLTable(raw []byte) ([]Row, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}

	var records [][]string
	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		trs := table.Find("tr")
		if trs.Length() < 2 {
			return true
		}
		trs.Each(func(_ int, tr *goquery.Selection) {
			cells := []string{}
			tr.Find("th,td").Each(func(_ int, cell *goquery.Selection) {
				cells = append(cells, cell.Text())
			})
			records = append(records, cells)
		})
		return false
	})

	return rowsFromTable(records)
}

func rowsFromTable(records [][]string) ([]Row, error) {
	start := -1
	for i, rec := range records {
		if !allEmpty(rec) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("source has no header row")
	}

	header := make([]string, len(records[start]))
	for i, h := range records[start] {
		header[i] = strings.TrimSpace(h)
	}

	out := make([]Row, 0, len(records)-start-1)
	for _, rec := range records[start+1:] {
		if allEmpty(rec) {
			continue
		}
		row := Row{}
		for i, cell := range rec {
			if i >= len(header) || header[i] == "" {
				continue
			}
			row[header[i]] = strings.TrimSpace(cell)
		}
		out = append(out, row)
	}
	return out, nil
}

func allEmpty(rec []string) bool {
	for _, cell := range rec {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
