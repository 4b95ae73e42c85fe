package tabular

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoData is reported when an export is requested for zero records.
var ErrNoData = errors.New("no data to export")

const bom = "\uFEFF"

// Content types of the produced artifacts.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeJSON = "application/json; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Exporter renders records. The zero value uses pt-BR defaults.
type Exporter struct {
	Delimiter      rune
	CurrencySymbol string
	DateLayout     string
	ExportedBy     string
	Version        string
	// Now is the clock used for filenames and metadata.
	Now func() time.Time
}

// NewExporter returns an Exporter with the clinic defaults.
func NewExporter() *Exporter {
	return &Exporter{
		Delimiter:      ',',
		CurrencySymbol: "R$",
		DateLayout:     "02/01/2006",
		ExportedBy:     "Sistema de Estoque da Clínica",
		Version:        "1.0",
		Now:            time.Now,
	}
}

func (e *Exporter) delimiter() rune {
	if e.Delimiter == 0 {
		return ','
	}
	return e.Delimiter
}

func (e *Exporter) currencySymbol() string {
	if e.CurrencySymbol == "" {
		return "R$"
	}
	return e.CurrencySymbol
}

func (e *Exporter) dateLayout() string {
	if e.DateLayout == "" {
		return "02/01/2006"
	}
	return e.DateLayout
}

func (e *Exporter) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

// Result is a produced export artifact. When Success is false, Err holds
// the reason and Content is empty.
type Result struct {
	Success     bool
	RowCount    int
	Filename    string
	ContentType string
	Content     []byte
	Err         error
}

func failed(err error) Result {
	return Result{Err: err}
}

// Filename builds "<base>_<UTC timestamp>.<ext>" with ':' replaced by '-'.
func (e *Exporter) Filename(base, ext string) string {
	stamp := e.now().UTC().Format("2006-01-02T15:04:05")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return fmt.Sprintf("%s_%s.%s", base, stamp, ext)
}

// CSVString renders records as CSV text without the BOM.
func (e *Exporter) CSVString(records []Record, headers []Header) string {
	delim := e.delimiter()
	sep := string(delim)

	lines := make([]string, 0, len(records)+1)
	cells := make([]string, len(headers))

	for i, h := range headers {
		cells[i] = EscapeField(h.Label, delim)
	}
	lines = append(lines, strings.Join(cells, sep))

	for _, rec := range records {
		for i, h := range headers {
			cells[i] = EscapeField(e.formatCell(h, rec[h.Key]), delim)
		}
		lines = append(lines, strings.Join(cells, sep))
	}
	return strings.Join(lines, "\n")
}

// CSV renders records to a UTF-8 CSV file with a byte order mark.
func (e *Exporter) CSV(records []Record, headers []Header, base string) Result {
	if len(records) == 0 {
		return failed(ErrNoData)
	}
	return Result{
		Success:     true,
		RowCount:    len(records),
		Filename:    e.Filename(base, "csv"),
		ContentType: ContentTypeCSV,
		Content:     []byte(bom + e.CSVString(records, headers)),
	}
}

// Metadata describes a JSON export.
type Metadata struct {
	ExportDate  time.Time `json:"exportDate"`
	RecordCount int       `json:"recordCount"`
	ExportedBy  string    `json:"exportedBy"`
	Version     string    `json:"version"`
}

// Envelope is the JSON export document.
type Envelope struct {
	Metadata   Metadata          `json:"metadata"`
	Statistics *Statistics       `json:"statistics"`
	Filters    map[string]string `json:"filters"`
	Data       []map[string]any  `json:"data"`
}

// JSONOptions tunes a JSON export.
type JSONOptions struct {
	Statistics *Statistics
	Filters    Filters
	Compact    bool
}

// JSON renders records inside a metadata envelope.
func (e *Exporter) JSON(records []Record, base string, opts JSONOptions) Result {
	if len(records) == 0 {
		return failed(ErrNoData)
	}

	env := Envelope{
		Metadata: Metadata{
			ExportDate:  e.now().UTC(),
			RecordCount: len(records),
			ExportedBy:  e.ExportedBy,
			Version:     e.Version,
		},
		Statistics: opts.Statistics,
		Filters:    opts.Filters.Map(),
		Data:       make([]map[string]any, len(records)),
	}
	for i, rec := range records {
		env.Data[i] = jsonRecord(rec)
	}

	var (
		body []byte
		err  error
	)
	if opts.Compact {
		body, err = json.Marshal(env)
	} else {
		body, err = json.MarshalIndent(env, "", "  ")
	}
	if err != nil {
		return failed(fmt.Errorf("encode json export: %w", err))
	}

	return Result{
		Success:     true,
		RowCount:    len(records),
		Filename:    e.Filename(base, "json"),
		ContentType: ContentTypeJSON,
		Content:     body,
	}
}

// jsonRecord renders dates as yyyy-MM-dd and decimals as JSON numbers.
func jsonRecord(rec Record) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		switch t := v.(type) {
		case time.Time:
			if t.IsZero() {
				out[k] = nil
			} else {
				out[k] = t.Format("2006-01-02")
			}
		case decimal.Decimal:
			out[k] = json.Number(t.String())
		default:
			out[k] = v
		}
	}
	return out
}

// Filters are the active search filters of a filtered export.
type Filters struct {
	Tipo        string
	Status      string
	Localizacao string
}

// Active reports whether any filter is set.
func (f Filters) Active() bool {
	return f.Tipo != "" || f.Status != "" || f.Localizacao != ""
}

// Map returns the set filters keyed by name, or nil when none is set.
func (f Filters) Map() map[string]string {
	if !f.Active() {
		return nil
	}
	m := make(map[string]string, 3)
	if f.Tipo != "" {
		m["tipo"] = f.Tipo
	}
	if f.Status != "" {
		m["status"] = f.Status
	}
	if f.Localizacao != "" {
		m["localizacao"] = f.Localizacao
	}
	return m
}

// FilteredBase appends the active filters to base in a fixed order:
// base_tipo-X_status-Y_local-Z.
func FilteredBase(base string, f Filters) string {
	parts := []string{base}
	if f.Tipo != "" {
		parts = append(parts, "tipo-"+f.Tipo)
	}
	if f.Status != "" {
		parts = append(parts, "status-"+f.Status)
	}
	if f.Localizacao != "" {
		parts = append(parts, "local-"+f.Localizacao)
	}
	return strings.Join(parts, "_")
}

// TemplateFile renders a header-only CSV for a named import template.
func (e *Exporter) TemplateFile(name string) Result {
	headers, ok := Template(name)
	if !ok {
		return failed(fmt.Errorf("unknown template %q", name))
	}
	return Result{
		Success:     true,
		Filename:    "modelo_" + name + ".csv",
		ContentType: ContentTypeCSV,
		Content:     []byte(bom + e.CSVString(nil, headers)),
	}
}
