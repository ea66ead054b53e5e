package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Format names an output encoding for rows.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatCSV, FormatJSON:
		return f, nil
	default:
		return "", fmt.Errorf("unknown export format %q (use csv or json)", s)
	}
}

// CSVOptions controls CSV output. A zero Delimiter means a comma; an empty
// Encoding means UTF-8.
type CSVOptions struct {
	Delimiter rune
	Encoding  string
}

// WriteCSV writes a header row of Columns followed by one line per row.
func WriteCSV(w io.Writer, rows []Row, opts CSVOptions) error {
	out, err := encodeWriter(w, opts.Encoding)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(out)
	if opts.Delimiter != 0 {
		if opts.Delimiter == '"' || opts.Delimiter == '\r' || opts.Delimiter == '\n' || !utf8.ValidRune(opts.Delimiter) {
			return fmt.Errorf("invalid csv delimiter %q", opts.Delimiter)
		}
		cw.Comma = opts.Delimiter
	}

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(r.Values()); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	if tw, ok := out.(*transform.Writer); ok {
		if err := tw.Close(); err != nil {
			return fmt.Errorf("encoding csv: %w", err)
		}
	}
	return nil
}

// WriteJSON writes rows as an indented JSON array. No rows is "[]".
func WriteJSON(w io.Writer, rows []Row) error {
	if rows == nil {
		rows = []Row{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rows); err != nil {
		return fmt.Errorf("writing json: %w", err)
	}
	return nil
}

// encodeWriter wraps w so UTF-8 text is re-encoded into the named charset.
func encodeWriter(w io.Writer, name string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return w, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, fmt.Errorf("unsupported csv encoding %q: %w", name, err)
	}
	return transform.NewWriter(w, enc.NewEncoder()), nil
}
