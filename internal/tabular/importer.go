package tabular

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MsgEmptyInput is the import failure for files without data records.
const MsgEmptyInput = "Arquivo vazio ou sem dados"

// ImportError fails a whole import: the file is empty or required columns
// are missing. Row problems are reported as RowError data instead.
type ImportError struct {
	Message string
	Missing []string
}

func (e *ImportError) Error() string {
	return e.Message
}

// RowError lists the problems of one rejected record.
type RowError struct {
	RowNumber int      `json:"row"`
	Messages  []string `json:"errors"`
}

// ImportResult is the outcome of parsing an upload.
type ImportResult struct {
	Rows            []Record   `json:"data"`
	Errors          []RowError `json:"errors"`
	TotalRows       int        `json:"totalRows"`
	ValidRowCount   int        `json:"validRows"`
	InvalidRowCount int        `json:"invalidRows"`
}

// RowValidator returns the problems of a mapped row, or nil.
type RowValidator func(Record) []string

// Importer parses delimited text into records.
type Importer struct {
	Delimiter        rune
	DecimalSeparator rune
	SkipRows         int
	DateLayout       string
	// Headers map file columns to keys and kinds. Columns not found here
	// are keyed by NormalizeKey and typed by the key convention.
	Headers []Header
	// Required names must each appear, case-insensitively, inside some
	// header of the file.
	Required []string
	Validate RowValidator
	MaxBytes int64
}

// NewImporter returns an importer for asset files with the clinic defaults.
// It recognizes the labels of both asset column sets, so files produced by
// the CSV export import back.
func NewImporter() *Importer {
	return &Importer{
		Delimiter:        ',',
		DecimalSeparator: ',',
		DateLayout:       "02/01/2006",
		Headers:          append(AssetHeaders(), AssetExportHeaders()...),
		Required:         []string{"Descrição", "Categoria"},
		Validate:         DefaultRowValidator,
	}
}

// Import reads r and parses it.
func (im *Importer) Import(r io.Reader) (*ImportResult, error) {
	text, err := ReadText(r, im.MaxBytes)
	if err != nil {
		return nil, err
	}
	return im.Parse(text)
}

// Parse parses already decoded text.
func (im *Importer) Parse(text string) (*ImportResult, error) {
	records := splitRecords(text, im.delimiter())
	if len(records) <= im.SkipRows+1 {
		return nil, &ImportError{Message: MsgEmptyInput}
	}

	header := records[im.SkipRows].Fields
	if missing := missingColumns(header, im.Required); len(missing) > 0 {
		return nil, &ImportError{
			Message: "Colunas obrigatórias não encontradas: " + strings.Join(missing, ", "),
			Missing: missing,
		}
	}

	cols := im.resolveColumns(header)
	data := records[im.SkipRows+1:]

	result := &ImportResult{
		Rows:      make([]Record, 0, len(data)),
		Errors:    []RowError{},
		TotalRows: len(data),
	}
	for _, rec := range data {
		row, problems := im.mapRecord(cols, rec.Fields)
		if len(problems) == 0 && im.Validate != nil {
			problems = im.Validate(row)
		}
		if len(problems) > 0 {
			result.Errors = append(result.Errors, RowError{RowNumber: rec.Line, Messages: problems})
			continue
		}
		result.Rows = append(result.Rows, row)
	}

	result.ValidRowCount = len(result.Rows)
	result.InvalidRowCount = len(result.Errors)
	return result, nil
}

func (im *Importer) delimiter() rune {
	if im.Delimiter == 0 {
		return ','
	}
	return im.Delimiter
}

func (im *Importer) decimalSeparator() rune {
	if im.DecimalSeparator == 0 {
		return ','
	}
	return im.DecimalSeparator
}

func missingColumns(header, required []string) []string {
	lower := make([]string, len(header))
	for i, h := range header {
		lower[i] = strings.ToLower(h)
	}

	var missing []string
	for _, want := range required {
		w := strings.ToLower(want)
		found := false
		for _, h := range lower {
			if strings.Contains(h, w) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, want)
		}
	}
	return missing
}

type column struct {
	key  string
	kind Kind
}

func (im *Importer) resolveColumns(header []string) []column {
	known := make(map[string]Header, len(im.Headers)*2)
	for _, h := range im.Headers {
		known[NormalizeKey(h.Key)] = h
		known[NormalizeKey(h.Label)] = h
	}

	cols := make([]column, len(header))
	for i, name := range header {
		n := NormalizeKey(name)
		if h, ok := known[n]; ok {
			cols[i] = column{key: h.Key, kind: h.Kind}
			continue
		}
		cols[i] = column{key: n, kind: KindForKey(n)}
	}
	return cols
}

func (im *Importer) mapRecord(cols []column, fields []string) (Record, []string) {
	row := make(Record, len(cols))
	var problems []string

	for i, col := range cols {
		if col.key == "" {
			continue
		}
		raw := ""
		if i < len(fields) {
			raw = fields[i]
		}
		v, err := im.coerce(col.kind, raw)
		if err != nil {
			problems = append(problems, err.Error())
			continue
		}
		row[col.key] = v
	}
	return row, problems
}

func (im *Importer) coerce(kind Kind, raw string) (any, error) {
	if kind == KindText {
		return raw, nil
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	switch kind {
	case KindMoney:
		d, err := ParseMoney(raw, im.decimalSeparator())
		if err != nil {
			return nil, fmt.Errorf("Valor inválido: %s", raw)
		}
		return d, nil
	case KindDate:
		t, err := ParseDate(raw, im.DateLayout)
		if err != nil {
			return nil, fmt.Errorf("Data inválida: %s", raw)
		}
		return t, nil
	case KindNumber:
		s := strings.TrimSpace(raw)
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return n, nil
		}
		d, err := ParseMoney(s, im.decimalSeparator())
		if err != nil {
			return nil, fmt.Errorf("Número inválido: %s", raw)
		}
		return d, nil
	case KindBool:
		b, ok := parseBool(raw)
		if !ok {
			return nil, fmt.Errorf("Valor lógico inválido: %s", raw)
		}
		return b, nil
	}
	return raw, nil
}

// ParseMoney parses a currency amount such as "R$ 1.234,56". Everything
// except digits, the decimal separator, '.' and '-' is dropped. When the
// separator is absent, a single '.' followed by one or two digits is read
// as the decimal point; other dots are thousands separators.
func ParseMoney(raw string, decSep rune) (decimal.Decimal, error) {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '-' || r == '.' || r == decSep {
			b.WriteRune(r)
		}
	}
	s := b.String()

	if decSep != '.' {
		if strings.ContainsRune(s, decSep) {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, string(decSep), ".")
		} else if !loneDecimalPoint(s) {
			s = strings.ReplaceAll(s, ".", "")
		}
	}

	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("no digits in %q", raw)
	}
	return decimal.NewFromString(s)
}

func loneDecimalPoint(s string) bool {
	if strings.Count(s, ".") != 1 {
		return false
	}
	frac := s[strings.IndexByte(s, '.')+1:]
	return len(frac) >= 1 && len(frac) <= 2
}

// ParseDate parses layout first and then ISO forms.
func ParseDate(raw, layout string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if layout == "" {
		layout = "02/01/2006"
	}
	if t, err := time.Parse(layout, s); err == nil {
		return t, nil
	}
	for _, l := range dateInputLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", raw)
}

func parseBool(raw string) (bool, bool) {
	switch strings.ToLower(StripAccents(strings.TrimSpace(raw))) {
	case "sim", "s", "true", "1", "yes":
		return true, true
	case "nao", "n", "false", "0", "no":
		return false, true
	}
	return false, false
}

// DefaultRowValidator checks the fields every imported asset needs.
func DefaultRowValidator(row Record) []string {
	var problems []string
	if trimmedString(row["descricao"]) == "" {
		problems = append(problems, "Descrição é obrigatória")
	}
	if trimmedString(row["categoria"]) == "" {
		problems = append(problems, "Categoria é obrigatória")
	}
	if d, ok := row["valor_aquisicao"].(decimal.Decimal); ok && d.IsNegative() {
		problems = append(problems, "Valor de aquisição deve ser um número positivo")
	}
	return problems
}

func trimmedString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
