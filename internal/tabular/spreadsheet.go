package tabular

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the spreadsheet export.
const (
	SheetData  = "Estoque"
	SheetStats = "Estatísticas"
)

// Breakdown aggregates the assets sharing one category or status.
type Breakdown struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Items int             `json:"items"`
	Value decimal.Decimal `json:"value"`
}

// Statistics summarizes the inventory for dashboards and exports.
type Statistics struct {
	TotalValue   decimal.Decimal `json:"totalValue"`
	TotalItems   int             `json:"totalItems"`
	AverageValue decimal.Decimal `json:"averageValue"`
	ByCategory   []Breakdown     `json:"categoryStats"`
	ByStatus     []Breakdown     `json:"statusStats"`
}

// SortBreakdowns orders breakdowns by value, highest first. Ties keep
// name order so the output is stable.
func SortBreakdowns(b []Breakdown) {
	sort.SliceStable(b, func(i, j int) bool {
		if c := b[i].Value.Cmp(b[j].Value); c != 0 {
			return c > 0
		}
		return b[i].Name < b[j].Name
	})
}

// Spreadsheet renders records to an XLSX workbook. The Estoque sheet mirrors
// the CSV columns; the Estatísticas sheet is added only when stats is set.
func (e *Exporter) Spreadsheet(records []Record, headers []Header, base string, stats *Statistics) Result {
	if len(records) == 0 {
		return failed(ErrNoData)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := e.writeDataSheet(f, records, headers); err != nil {
		return failed(fmt.Errorf("write %s sheet: %w", SheetData, err))
	}
	if stats != nil {
		if err := e.writeStatsSheet(f, stats); err != nil {
			return failed(fmt.Errorf("write %s sheet: %w", SheetStats, err))
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return failed(fmt.Errorf("remove default sheet: %w", err))
	}

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return failed(fmt.Errorf("encode workbook: %w", err))
	}

	return Result{
		Success:     true,
		RowCount:    len(records),
		Filename:    e.Filename(base, "xlsx"),
		ContentType: ContentTypeXLSX,
		Content:     buf.Bytes(),
	}
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
}

func (e *Exporter) writeDataSheet(f *excelize.File, records []Record, headers []Header) error {
	index, err := f.NewSheet(SheetData)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	style, err := headerStyle(f)
	if err != nil {
		return err
	}

	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(SheetData, cell, h.Label); err != nil {
			return err
		}
		if err := f.SetCellStyle(SheetData, cell, cell, style); err != nil {
			return err
		}
		if h.Width > 0 {
			col, err := excelize.ColumnNumberToName(i + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(SheetData, col, col, h.Width); err != nil {
				return err
			}
		}
	}

	for r, rec := range records {
		for i, h := range headers {
			cell, err := excelize.CoordinatesToCellName(i+1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SheetData, cell, e.sheetValue(h, rec[h.Key])); err != nil {
				return err
			}
		}
	}
	return nil
}

// sheetValue keeps plain numbers numeric so spreadsheet formulas work;
// money, dates and booleans use the same text as the CSV export.
func (e *Exporter) sheetValue(h Header, v any) any {
	switch n := v.(type) {
	case int, int32, int64, float32, float64:
		if h.Kind == KindText || h.Kind == KindNumber {
			return v
		}
	case decimal.Decimal:
		if h.Kind == KindNumber {
			f, _ := n.Float64()
			return f
		}
	}
	return e.formatCell(h, v)
}

func (e *Exporter) writeStatsSheet(f *excelize.File, stats *Statistics) error {
	if _, err := f.NewSheet(SheetStats); err != nil {
		return err
	}
	style, err := headerStyle(f)
	if err != nil {
		return err
	}

	money := func(d decimal.Decimal) string { return FormatMoney(d, e.currencySymbol()) }

	rows := [][]any{
		{"Métrica", "Valor"},
		{"Valor Total do Estoque", money(stats.TotalValue)},
		{"Total de Itens", formatCount(stats.TotalItems)},
		{"Valor Médio por Item", money(stats.AverageValue)},
		{"", ""},
		{"ESTATÍSTICAS POR CATEGORIA", ""},
	}
	rows = append(rows, breakdownRows(stats.ByCategory, money)...)
	rows = append(rows, []any{"", ""}, []any{"ESTATÍSTICAS POR STATUS", ""})
	rows = append(rows, breakdownRows(stats.ByStatus, money)...)

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetStats, cell, &row); err != nil {
			return err
		}
	}

	if err := f.SetCellStyle(SheetStats, "A1", "B1", style); err != nil {
		return err
	}
	if err := f.SetColWidth(SheetStats, "A", "A", 30); err != nil {
		return err
	}
	return f.SetColWidth(SheetStats, "B", "B", 20)
}

func breakdownRows(b []Breakdown, money func(decimal.Decimal) string) [][]any {
	sorted := append([]Breakdown(nil), b...)
	SortBreakdowns(sorted)

	rows := make([][]any, len(sorted))
	for i, s := range sorted {
		rows[i] = []any{fmt.Sprintf("%s (%d registros)", s.Name, s.Count), money(s.Value)}
	}
	return rows
}

// formatCount renders an integer with '.' thousands separators.
func formatCount(n int) string {
	s := FormatMoney(decimal.NewFromInt(int64(n)), "")
	return s[:len(s)-3]
}
