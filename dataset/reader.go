package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrNoData       = errors.New("no data")
	ErrMalformedRow = errors.New("malformed row")
)

// delimiters are tried in this order against the first data line.
var delimiters = []rune{',', ';', ' '}

// Table is the raw content of a delimited flat file.
type Table struct {
	Names     []string
	Rows      [][]string
	Delimiter rune
}

// ReadOptions controls how a flat file is interpreted.
type ReadOptions struct {
	// HasHeader makes the first non-blank line supply the dimension names.
	HasHeader bool
}

// DetectDelimiter returns the first of ',', ';' and ' ' that occurs in line after its first
// character. A line containing none of them is a single column; ',' is returned for it.
func DetectDelimiter(line string) rune {
	for _, d := range delimiters {
		if strings.IndexRune(line, d) > 0 {
			return d
		}
	}
	return ','
}

// maxLineBytes bounds a single input line.
const maxLineBytes = 16 << 20

// Read parses a delimited flat file, one tuple per line. Every column is a dimension and
// every row must carry exactly as many fields as the first row. Fields are split on the
// delimiter only; quotes are ordinary characters.
func Read(r io.Reader, opts ReadOptions) (*Table, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	t := &Table{}
	var header string
	haveHeader := !opts.HasHeader
	width := -1
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		if !haveHeader {
			header = text
			haveHeader = true
			continue
		}
		if width < 0 {
			// The delimiter is chosen from the first data line.
			t.Delimiter = DetectDelimiter(text)
		}
		rec := splitFields(text, t.Delimiter)
		if width < 0 {
			width = len(rec)
		}
		if len(rec) != width {
			return nil, fmt.Errorf("%w: line %d has %d fields, want %d", ErrMalformedRow, line, len(rec), width)
		}
		t.Rows = append(t.Rows, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	if len(t.Rows) == 0 {
		return nil, ErrNoData
	}

	if !opts.HasHeader {
		t.Names = make([]string, width)
		for i := range t.Names {
			t.Names[i] = fmt.Sprintf("d%d", i)
		}
		return t, nil
	}
	t.Names = splitFields(header, t.Delimiter)
	if len(t.Names) != width {
		return nil, fmt.Errorf("%w: header has %d fields, rows have %d", ErrMalformedRow, len(t.Names), width)
	}
	return t, nil
}

func splitFields(line string, delim rune) []string {
	rec := strings.Split(line, string(delim))
	for i, f := range rec {
		rec[i] = strings.TrimSpace(f)
	}
	return rec
}
