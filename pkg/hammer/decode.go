package hammer

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/Kryndex/robottelo/pkg/errors"
)

// DecodeKeyValue parses a key-value block ("Name: Foo" lines, whitespace
// tolerant) into one Record. Repeated keys coalesce into a list in input
// order; keys are normalized with NormalizeKey. Blank lines are skipped; a
// non-blank line without a separator is a DecodeError.
//
// Decoding is a pure function of its input: calling it twice on the same
// lines yields identical Records.
func DecodeKeyValue(lines []string) (Record, error) {
	rec := Record{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		k, v, ok := strings.Cut(line, ":")
		if !ok {
			return nil, errors.NewDecodeError("key-value", line, "missing ':' separator")
		}
		key := NormalizeKey(k)
		if key == "" {
			return nil, errors.NewDecodeError("key-value", line, "empty key")
		}
		val := strings.TrimSpace(v)

		switch prev := rec[key].(type) {
		case nil:
			rec[key] = val
		case string:
			rec[key] = []string{prev, val}
		case []string:
			rec[key] = append(prev, val)
		}
	}
	return rec, nil
}

// DecodeCSV parses a CSV listing (header row plus zero or more records)
// into one Record per row, keyed by normalized header names. Empty input
// decodes to an empty list.
func DecodeCSV(lines []string) ([]Record, error) {
	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return nil, nil
	}

	r := csv.NewReader(strings.NewReader(text))
	header, err := r.Read()
	if err != nil {
		return nil, errors.NewDecodeError("csv", "", err.Error())
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = NormalizeKey(h)
	}

	var records []Record
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewDecodeError("csv", "", err.Error())
		}
		rec := Record{}
		for i, cell := range row {
			rec[keys[i]] = cell
		}
		records = append(records, rec)
	}
	return records, nil
}

// Help is a decoded self-documentation response. Exactly one of the two
// fields is populated, depending on which help form was requested: list
// help is a flat sequence of literal lines, info help is a set of named
// option entries. The two forms are not uniform and must not be decoded
// through the same branch.
type Help struct {
	Lines   []string
	Options []string
}

// DecodeListHelp decodes a `list --help` response: output lines map 1:1 to
// entries, blanks dropped, text kept verbatim.
func DecodeListHelp(lines []string) (*Help, error) {
	h := &Help{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		h.Lines = append(h.Lines, line)
	}
	return h, nil
}

// DecodeInfoHelp decodes an `info --help` (or any non-list help) response:
// entries come from the "Options:" section, one per declared flag, with
// indented continuation lines folded into the entry that opened them.
func DecodeInfoHelp(lines []string) (*Help, error) {
	h := &Help{}
	inOptions := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inOptions {
			if strings.EqualFold(trimmed, "options:") {
				inOptions = true
			}
			continue
		}
		if trimmed == "" {
			continue
		}
		indented := line[0] == ' ' || line[0] == '\t'
		if !indented {
			// next section ends the options block
			break
		}
		entry := strings.Join(strings.Fields(trimmed), " ")
		if strings.HasPrefix(trimmed, "-") || len(h.Options) == 0 {
			h.Options = append(h.Options, entry)
			continue
		}
		h.Options[len(h.Options)-1] += " " + entry
	}
	if !inOptions {
		return nil, errors.NewDecodeError("help", "", "no Options: section found")
	}
	return h, nil
}
