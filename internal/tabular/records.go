package tabular

import (
	"strings"
)

// rawRecord is one logical CSV record and the source line it starts on.
type rawRecord struct {
	Line   int
	Fields []string
}

// splitRecords splits text into logical records. A quoted field may span
// lines and uses "" for a literal quote. Unquoted values are trimmed;
// quoted values are kept as written. Blank lines are dropped.
func splitRecords(text string, delim rune) []rawRecord {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var (
		records []rawRecord
		fields  []string
		buf     strings.Builder
		tail    strings.Builder
		quoted  bool
		inQuote bool
		line    = 1
		start   = 1
	)

	endField := func() {
		if quoted {
			fields = append(fields, buf.String()+strings.TrimSpace(tail.String()))
		} else {
			fields = append(fields, strings.TrimSpace(buf.String()))
		}
		buf.Reset()
		tail.Reset()
		quoted = false
	}
	endRecord := func() {
		blank := len(fields) == 0 && !quoted && strings.TrimSpace(buf.String()) == ""
		if blank {
			buf.Reset()
		} else {
			endField()
			records = append(records, rawRecord{Line: start, Fields: fields})
		}
		fields = nil
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		c := runes[i]

		if inQuote {
			switch {
			case c == '"' && i+1 < len(runes) && runes[i+1] == '"':
				buf.WriteRune('"')
				i++
			case c == '"':
				inQuote = false
			default:
				if c == '\n' {
					line++
				}
				buf.WriteRune(c)
			}
			continue
		}

		switch {
		case c == '"' && !quoted && strings.TrimSpace(buf.String()) == "":
			buf.Reset()
			quoted = true
			inQuote = true
		case c == delim:
			endField()
		case c == '\n':
			endRecord()
			line++
			start = line
		case quoted:
			tail.WriteRune(c)
		default:
			buf.WriteRune(c)
		}
	}

	if inQuote || quoted || len(fields) > 0 || strings.TrimSpace(buf.String()) != "" {
		endRecord()
	}
	return records
}

// SplitLine splits a single CSV line with the same quoting rules as the
// importer.
func SplitLine(line string, delim rune) []string {
	recs := splitRecords(line, delim)
	if len(recs) == 0 {
		return nil
	}
	return recs[0].Fields
}
