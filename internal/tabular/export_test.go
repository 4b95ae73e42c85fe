package tabular

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2024, 3, 10, 12, 34, 56, 789000000, time.UTC)

func testExporter() *Exporter {
	e := NewExporter()
	e.Now = func() time.Time { return fixedNow }
	return e
}

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "Cadeira", "Cadeira"},
		{"quote comma newline", "He said \"hi\", then left\n", "\"He said \"\"hi\"\", then left\n\""},
		{"delimiter only", "a,b", `"a,b"`},
		{"carriage return", "a\rb", "\"a\rb\""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EscapeField(tt.in, ','); got != tt.want {
				t.Errorf("EscapeField(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}

	if got := EscapeField("a,b", ';'); got != "a,b" {
		t.Errorf("comma should not be quoted with ';' delimiter, got %q", got)
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "R$ 0,00"},
		{"1234.56", "R$ 1.234,56"},
		{"1234567.891", "R$ 1.234.567,89"},
		{"999.995", "R$ 1.000,00"},
		{"12.5", "R$ 12,50"},
		{"-50", "-R$ 50,00"},
	}

	for _, tt := range tests {
		if got := FormatMoney(decimal.RequireFromString(tt.in), "R$"); got != tt.want {
			t.Errorf("FormatMoney(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCell(t *testing.T) {
	e := testExporter()
	acquired := time.Date(2023, 7, 4, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		header Header
		value  any
		want   string
	}{
		{"nil", NewHeader("conteudo", "C"), nil, ""},
		{"money float", NewHeader("valor_aquisicao", "V"), 1500.5, "R$ 1.500,50"},
		{"money decimal", NewHeader("valor_total", "V"), decimal.RequireFromString("10"), "R$ 10,00"},
		{"money text stays text", NewHeader("valor_aquisicao", "V"), " a combinar ", "a combinar"},
		{"date time", NewHeader("data_aquisicao", "D"), acquired, "04/07/2023"},
		{"date iso text", NewHeader("data_aquisicao", "D"), "2023-07-04", "04/07/2023"},
		{"date empty text", NewHeader("data_aquisicao", "D"), "", ""},
		{"created_at preset", AssetHeaders()[13], acquired, "04/07/2023"},
		{"bool true", NewHeader("ativo", "A"), true, "Sim"},
		{"bool false", NewHeader("ativo", "A"), false, "Não"},
		{"string trimmed", NewHeader("conteudo", "C"), "  Bonecas ", "Bonecas"},
		{"plain number", NewHeader("quantidade", "Q"), 3, "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.formatCell(tt.header, tt.value); got != tt.want {
				t.Errorf("formatCell(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestCSV(t *testing.T) {
	e := testExporter()
	headers := []Header{
		NewHeader("conteudo", "Conteúdo"),
		NewHeader("valor_aquisicao", "Valor"),
	}
	records := []Record{
		{"conteudo": "Mesa, grande", "valor_aquisicao": 1234.56},
		{"conteudo": "Cadeira"},
	}

	res := e.CSV(records, headers, "estoque")
	if !res.Success || res.Err != nil {
		t.Fatalf("CSV() = %+v", res)
	}
	if res.RowCount != 2 {
		t.Errorf("RowCount = %d, want 2", res.RowCount)
	}
	if res.Filename != "estoque_2024-03-10T12-34-56.csv" {
		t.Errorf("Filename = %q", res.Filename)
	}

	want := "\uFEFFConteúdo,Valor\n\"Mesa, grande\",\"R$ 1.234,56\"\nCadeira,"
	if got := string(res.Content); got != want {
		t.Errorf("Content = %q, want %q", got, want)
	}
}

func TestExport_NoRecords(t *testing.T) {
	e := testExporter()
	headers := AssetHeaders()

	results := map[string]Result{
		"csv":  e.CSV(nil, headers, "estoque"),
		"json": e.JSON([]Record{}, "estoque", JSONOptions{}),
		"xlsx": e.Spreadsheet(nil, headers, "estoque", nil),
	}
	for name, res := range results {
		if res.Success || !errors.Is(res.Err, ErrNoData) {
			t.Errorf("%s: result = %+v, want ErrNoData", name, res)
		}
		if len(res.Content) != 0 || res.Filename != "" {
			t.Errorf("%s: no file should be produced", name)
		}
	}
}

func TestJSON(t *testing.T) {
	e := testExporter()
	records := []Record{{
		"conteudo":        "Bola",
		"valor_aquisicao": decimal.RequireFromString("19.90"),
		"data_aquisicao":  time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
	}}
	stats := &Statistics{TotalItems: 1}

	res := e.JSON(records, "estoque", JSONOptions{
		Statistics: stats,
		Filters:    Filters{Status: "Ativo"},
	})
	if !res.Success {
		t.Fatalf("JSON() error = %v", res.Err)
	}
	if !strings.HasSuffix(res.Filename, ".json") {
		t.Errorf("Filename = %q", res.Filename)
	}
	if !bytes.Contains(res.Content, []byte("\n  \"metadata\"")) {
		t.Error("JSON export should be indented by default")
	}

	var doc struct {
		Metadata struct {
			RecordCount int    `json:"recordCount"`
			ExportedBy  string `json:"exportedBy"`
			Version     string `json:"version"`
		} `json:"metadata"`
		Statistics map[string]any    `json:"statistics"`
		Filters    map[string]string `json:"filters"`
		Data       []map[string]any  `json:"data"`
	}
	if err := json.Unmarshal(res.Content, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if doc.Metadata.RecordCount != 1 || doc.Metadata.ExportedBy != "Sistema de Estoque da Clínica" || doc.Metadata.Version != "1.0" {
		t.Errorf("metadata = %+v", doc.Metadata)
	}
	if diff := cmp.Diff(map[string]string{"status": "Ativo"}, doc.Filters); diff != "" {
		t.Errorf("filters mismatch (-want +got):\n%s", diff)
	}
	if doc.Statistics == nil {
		t.Error("statistics missing")
	}
	if got := doc.Data[0]["data_aquisicao"]; got != "2024-01-15" {
		t.Errorf("date rendered as %v, want 2024-01-15", got)
	}
	if got := doc.Data[0]["valor_aquisicao"]; got != 19.9 {
		t.Errorf("decimal rendered as %v, want number 19.9", got)
	}

	compact := e.JSON(records, "estoque", JSONOptions{Compact: true})
	if bytes.Contains(compact.Content, []byte("\n")) {
		t.Error("compact JSON should be a single line")
	}
}

func TestFilteredBase(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    string
	}{
		{"none", Filters{}, "estoque_filtrado"},
		{"status only", Filters{Status: "Ativo"}, "estoque_filtrado_status-Ativo"},
		{"all in fixed order", Filters{Localizacao: "Sala 1", Tipo: "Decoração", Status: "quebrado"}, "estoque_filtrado_tipo-Decoração_status-quebrado_local-Sala 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FilteredBase("estoque_filtrado", tt.filters); got != tt.want {
				t.Errorf("FilteredBase() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpreadsheet_Layout(t *testing.T) {
	e := testExporter()
	records := []Record{
		{"codigo": int64(7), "conteudo": "Bonecas", "quantidade": 2, "valor_aquisicao": decimal.RequireFromString("10.5"), "valor_total": decimal.RequireFromString("21")},
	}
	stats := &Statistics{
		TotalValue:   decimal.RequireFromString("21"),
		TotalItems:   2,
		AverageValue: decimal.RequireFromString("10.5"),
		ByCategory: []Breakdown{
			{Name: "Escritório", Count: 1, Items: 1, Value: decimal.RequireFromString("5")},
			{Name: "Brinquedos em Caixa", Count: 2, Items: 3, Value: decimal.RequireFromString("16")},
		},
		ByStatus: []Breakdown{{Name: "Ativo", Count: 3, Items: 4, Value: decimal.RequireFromString("21")}},
	}

	res := e.Spreadsheet(records, AssetExportHeaders(), "estoque", stats)
	if !res.Success {
		t.Fatalf("Spreadsheet() error = %v", res.Err)
	}
	if res.Filename != "estoque_2024-03-10T12-34-56.xlsx" {
		t.Errorf("Filename = %q", res.Filename)
	}

	f, err := excelize.OpenReader(bytes.NewReader(res.Content))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{SheetData, SheetStats}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	cells := map[string]string{
		"A1": "Código",
		"E1": "Categoria",
		"P1": "Atualizado em",
		"A2": "7",
		"C2": "Bonecas",
		"K2": "R$ 10,50",
		"L2": "R$ 21,00",
	}
	for cell, want := range cells {
		got, err := f.GetCellValue(SheetData, cell)
		if err != nil || got != want {
			t.Errorf("%s!%s = %q (%v), want %q", SheetData, cell, got, err, want)
		}
	}

	width, err := f.GetColWidth(SheetData, "D")
	if err != nil || width != 30 {
		t.Errorf("column D width = %v (%v), want 30", width, err)
	}

	rows, err := f.GetRows(SheetStats)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	var labels []string
	for _, r := range rows {
		if len(r) > 0 {
			labels = append(labels, r[0])
		} else {
			labels = append(labels, "")
		}
	}
	wantLabels := []string{
		"Métrica",
		"Valor Total do Estoque",
		"Total de Itens",
		"Valor Médio por Item",
		"",
		"ESTATÍSTICAS POR CATEGORIA",
		"Brinquedos em Caixa (2 registros)",
		"Escritório (1 registros)",
		"",
		"ESTATÍSTICAS POR STATUS",
		"Ativo (3 registros)",
	}
	if diff := cmp.Diff(wantLabels, labels); diff != "" {
		t.Errorf("statistics rows mismatch (-want +got):\n%s", diff)
	}
}

func TestSpreadsheet_WithoutStatistics(t *testing.T) {
	res := testExporter().Spreadsheet([]Record{{"conteudo": "x"}}, AssetExportHeaders(), "estoque", nil)
	if !res.Success {
		t.Fatalf("Spreadsheet() error = %v", res.Err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(res.Content))
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	if diff := cmp.Diff([]string{SheetData}, f.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}
}

func TestTemplateFile(t *testing.T) {
	e := testExporter()

	res := e.TemplateFile(TemplateAssetsBasic)
	if !res.Success {
		t.Fatalf("TemplateFile() error = %v", res.Err)
	}
	if got := string(res.Content); got != "\uFEFFCódigo,Descrição,Categoria,Status" {
		t.Errorf("template content = %q", got)
	}

	if res := e.TemplateFile("inexistente"); res.Success {
		t.Error("unknown template should fail")
	}
}

func TestCSV_TextCellsTrimmed(t *testing.T) {
	e := testExporter()
	headers := []Header{NewHeader("observacoes", "Observações")}
	records := []Record{
		{"observacoes": "He said \"hi\", then left\n"},
		{"observacoes": "  linha 1\nlinha 2  "},
	}

	res := e.CSV(records, headers, "estoque")
	if !res.Success {
		t.Fatalf("CSV() error = %v", res.Err)
	}
	want := "\uFEFFObservações\n\"He said \"\"hi\"\", then left\"\n\"linha 1\nlinha 2\""
	if got := string(res.Content); got != want {
		t.Errorf("Content = %q, want %q", got, want)
	}

	im := NewImporter()
	im.Headers = headers
	im.Required = nil
	im.Validate = nil
	back, err := im.Import(bytes.NewReader(res.Content))
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	wantRows := []Record{
		{"observacoes": "He said \"hi\", then left"},
		{"observacoes": "linha 1\nlinha 2"},
	}
	if diff := cmp.Diff(wantRows, back.Rows); diff != "" {
		t.Errorf("re-import mismatch (-want +got):\n%s", diff)
	}
}
