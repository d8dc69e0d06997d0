package fetcher

import (
	"bufio"
	"context"
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVOptions configures the streaming CSV parser.
type CSVOptions struct {
	Delimiter  rune            // default ','
	HasHeader  bool            // if true, first row is skipped but sent to HeaderCh
	HeaderCh   chan<- []string // optional: receives the header row
	Comment    rune            // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
	// Literal splits each line on Delimiter with no quote handling, so a
	// stray '"' affects only its own line. Blank lines are skipped.
	Literal bool
}

// StreamCSV reads CSV rows and sends them to a channel. Rows may have any
// number of fields; column-count policy belongs to the caller. A leading
// byte order mark is dropped, and UTF-16 input with a BOM is decoded.
// Caller must consume the returned row channel. Errors are sent on the error channel.
// Both channels are closed when processing completes.
func StreamCSV(ctx context.Context, r io.Reader, opts CSVOptions) (<-chan []string, <-chan error) {
	rowCh := make(chan []string, 64)
	errCh := make(chan error, 1)

	go func() {
		defer close(rowCh)
		defer close(errCh)

		src := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
		var next func() ([]string, error)
		if opts.Literal {
			next = literalReader(src, opts)
		} else {
			reader := csv.NewReader(src)
			if opts.Delimiter != 0 {
				reader.Comma = opts.Delimiter
			}
			if opts.Comment != 0 {
				reader.Comment = opts.Comment
			}
			reader.LazyQuotes = opts.LazyQuotes
			reader.FieldsPerRecord = -1
			reader.ReuseRecord = false
			next = reader.Read
		}

		first := true
		for {
			if ctx.Err() != nil {
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}

			record, err := next()
			if err == io.EOF {
				return
			}
			if err != nil {
				errCh <- eris.Wrap(err, "csv: read row")
				return
			}

			if opts.TrimSpace {
				for i, field := range record {
					record[i] = strings.TrimSpace(field)
				}
			}

			if first && opts.HasHeader {
				first = false
				if opts.HeaderCh != nil {
					select {
					case opts.HeaderCh <- record:
					case <-ctx.Done():
						errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled sending header")
						return
					}
				}
				continue
			}
			first = false

			select {
			case rowCh <- record:
			case <-ctx.Done():
				errCh <- eris.Wrap(ctx.Err(), "csv: context cancelled")
				return
			}
		}
	}()

	return rowCh, errCh
}

// maxLineBytes bounds a single line in literal mode.
const maxLineBytes = 1 << 20

// literalReader returns a row source that splits lines on the delimiter.
func literalReader(r io.Reader, opts CSVOptions) func() ([]string, error) {
	sep := ","
	if opts.Delimiter != 0 {
		sep = string(opts.Delimiter)
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	return func() ([]string, error) {
		for sc.Scan() {
			line := strings.TrimSuffix(sc.Text(), "\r")
			if strings.TrimSpace(line) == "" {
				continue
			}
			if opts.Comment != 0 && strings.HasPrefix(line, string(opts.Comment)) {
				continue
			}
			return strings.Split(line, sep), nil
		}
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, io.EOF
	}
}

// ReadCSV drains StreamCSV into memory, calling fn for every data row in
// input order.
func ReadCSV(ctx context.Context, r io.Reader, opts CSVOptions, fn func(row []string)) error {
	rowCh, errCh := StreamCSV(ctx, r, opts)
	for row := range rowCh {
		fn(row)
	}
	for err := range errCh {
		if err != nil {
			return err
		}
	}
	return nil
}
