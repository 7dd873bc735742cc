package hammer

import (
	"strings"

	"github.com/Kryndex/robottelo/pkg/errors"
	"github.com/Kryndex/robottelo/pkg/textwidth"
)

// column is one fixed-width table column: its normalized name and its
// [start, end) range in display cells. The last column is open-ended.
type column struct {
	name  string
	start int
	end   int
}

const columnGap = 2 // minimum display cells between columns

// DecodeTable parses fixed-width table output. The first non-blank line is
// the header; its field positions, measured in display cells with the
// simplified East Asian width rule, define the column boundaries every
// following row is split on. Splitting on cell boundaries rather than
// whitespace keeps values with internal spaces intact, and the width rule
// keeps CJK/Cyrillic rows aligned with the ASCII header.
//
// Dashed separator rows are skipped. A row extending past the header's
// total width is a DecodeError: it cannot be attributed to columns.
func DecodeTable(lines []string) ([]Record, error) {
	var header string
	rows := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header == "" {
			header = line
			continue
		}
		if isSeparator(line) {
			continue
		}
		rows = append(rows, line)
	}
	if header == "" {
		return nil, nil
	}

	cols := headerColumns(header)
	if len(cols) == 0 {
		return nil, errors.NewDecodeError("table", header, "header has no columns")
	}
	total := textwidth.Width(strings.TrimRight(header, " "))

	var records []Record
	for _, row := range rows {
		if textwidth.Width(strings.TrimRight(row, " ")) > total {
			return nil, errors.NewDecodeError("table", row, "row wider than header")
		}
		rec := Record{}
		for _, col := range cols {
			rec[col.name] = cell(row, col)
		}
		records = append(records, rec)
	}
	return records, nil
}

// EncodeTable renders rows into the same fixed-width format DecodeTable
// consumes. Every line, header and separator included, is padded to an
// identical display width; the harness uses this both in fakes and in the
// alignment checks.
func EncodeTable(headers []string, rows [][]string) []string {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = textwidth.Width(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && textwidth.Width(cell) > widths[i] {
				widths[i] = textwidth.Width(cell)
			}
		}
	}

	gap := strings.Repeat(" ", columnGap)
	render := func(cells []string) string {
		padded := make([]string, len(widths))
		for i := range widths {
			c := ""
			if i < len(cells) {
				c = cells[i]
			}
			padded[i] = textwidth.Pad(c, widths[i])
		}
		return strings.Join(padded, gap)
	}

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, render(headers), render(sep))
	for _, row := range rows {
		lines = append(lines, render(row))
	}
	return lines
}

func isSeparator(line string) bool {
	seen := false
	for _, r := range line {
		switch r {
		case '-', '+', '|', ' ':
			seen = seen || r == '-'
		default:
			return false
		}
	}
	return seen
}

// headerColumns locates field starts in the header. A field ends at a run
// of columnGap or more spaces; single spaces stay inside the field, so
// multi-word headers survive.
func headerColumns(header string) []column {
	var cols []column
	offset := 0
	spaces := 0
	fieldStart := -1
	var field strings.Builder

	flush := func(end int) {
		if fieldStart < 0 {
			return
		}
		cols = append(cols, column{
			name:  NormalizeKey(field.String()),
			start: fieldStart,
			end:   end,
		})
		field.Reset()
		fieldStart = -1
	}

	for _, r := range header {
		w := textwidth.RuneWidth(r)
		if r == ' ' {
			spaces++
			if spaces >= columnGap {
				flush(offset - spaces + 1)
			}
		} else {
			if fieldStart < 0 {
				fieldStart = offset
			} else if spaces > 0 {
				field.WriteString(strings.Repeat(" ", spaces))
			}
			spaces = 0
			field.WriteRune(r)
		}
		offset += w
	}
	flush(offset)

	// each column extends to the start of the next; the last is open
	for i := range cols {
		if i+1 < len(cols) {
			cols[i].end = cols[i+1].start
		} else {
			cols[i].end = -1
		}
	}
	return cols
}

// cell extracts the trimmed text of one column from a row by walking the
// row in display cells.
func cell(row string, col column) string {
	_, rest := textwidth.Truncate(row, col.start)
	if col.end < 0 {
		return strings.TrimSpace(rest)
	}
	text, _ := textwidth.Truncate(rest, col.end-col.start)
	return strings.TrimSpace(text)
}
