// Package csv implements the two-column CSV format wordbook uses to exchange
// vocabulary lists: an optional `word,definition` header followed by one
// record per line, quoted RFC-4180-style. Encode and Decode are pure
// functions over in-memory records; files, storage and user interaction stay
// with the caller.
package csv

import "strings"

// ContentType is the MIME type for encoded output.
const ContentType = "text/csv"

// header is the fixed column line. Decode drops a first line that matches it
// case-insensitively; anything else, including a header with inner
// whitespace or different column names, is treated as data.
const header = "word,definition"

// Record is one word/definition pair, the unit of import and export. Both
// fields are always present after Decode; a missing second field becomes the
// empty string.
type Record struct {
	Word       string
	Definition string
}

// Encode renders records as a CSV blob: the header line, then one line per
// record in input order, joined with "\n" and without a trailing newline.
// Encoding an empty slice yields just the header line.
func Encode(records []Record) string {
	lines := make([]string, 0, len(records)+1)
	lines = append(lines, header)
	for _, r := range records {
		lines = append(lines, escapeField(r.Word)+","+escapeField(r.Definition))
	}
	return strings.Join(lines, "\n")
}

// escapeField wraps a value in double quotes when it contains a comma, a
// double quote or a line break, doubling any inner quotes. Other values pass
// through unchanged.
func escapeField(s string) string {
	if !strings.ContainsAny(s, ",\"\n\r") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Decode parses a CSV blob into records, preserving line order. Blank lines
// and an optional leading header line are skipped. Decode never fails: a
// line with only one field yields a record with an empty definition, and
// fields past the second are ignored. An empty or header-only blob yields no
// records; whether that counts as an error is the caller's decision.
func Decode(blob string) []Record {
	var records []Record
	first := true
	for _, raw := range splitLines(blob) {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if first {
			first = false
			if strings.ToLower(line) == header {
				continue
			}
		}
		fields := splitLine(line)
		if len(fields) == 0 {
			continue
		}
		rec := Record{Word: fields[0]}
		if len(fields) > 1 {
			rec.Definition = fields[1]
		}
		records = append(records, rec)
	}
	return records
}

// splitLines breaks a blob into logical lines on "\n" or "\r\n". A line feed
// inside a quoted region is field content rather than a line break, so
// quoted multi-line fields survive the split. A doubled quote toggles the
// region twice and lands back where it started, which is exactly right here.
func splitLines(blob string) []string {
	var lines []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(blob); i++ {
		c := blob[i]
		switch {
		case c == '"':
			inQuotes = !inQuotes
			b.WriteByte(c)
		case c == '\n' && !inQuotes:
			lines = append(lines, strings.TrimSuffix(b.String(), "\r"))
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	return append(lines, b.String())
}

// splitLine tokenizes one logical line into fields. A double quote toggles
// the quoted region unless doubled inside one, which appends a literal quote
// and consumes both; an unquoted comma ends the current field; every other
// byte is taken literally. Finished fields have leftover doubled quotes
// collapsed and surrounding whitespace trimmed. An empty line yields no
// fields.
func splitLine(line string) []string {
	if line == "" {
		return nil
	}
	var fields []string
	var b strings.Builder
	inQuotes := false
	for i := 0; i < len(line); i++ {
		switch c := line[i]; {
		case c == '"':
			if inQuotes && i+1 < len(line) && line[i+1] == '"' {
				b.WriteByte('"')
				i++
			} else {
				inQuotes = !inQuotes
			}
		case c == ',' && !inQuotes:
			fields = append(fields, cleanField(b.String()))
			b.Reset()
		default:
			b.WriteByte(c)
		}
	}
	return append(fields, cleanField(b.String()))
}

// cleanField collapses doubled quotes still present after the scan and trims
// surrounding whitespace.
func cleanField(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, `""`, `"`))
}
