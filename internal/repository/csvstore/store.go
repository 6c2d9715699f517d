// Package csvstore loads the registry table from a delimited text file into
// an immutable in-memory snapshot. The snapshot is loaded once at startup
// and safely shared by any number of concurrent readers; no operation
// mutates it afterwards.
package csvstore

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/cadastra/registryd/internal/domain"
	"github.com/cadastra/registryd/internal/domain/record"
)

// Store is the read-only registry snapshot: an ordered sequence of records
// sharing the header-defined schema.
type Store struct {
	path    string
	columns []string
	records []record.Record
}

// Open reads the table at path. The first row is the header defining field
// names; each subsequent row becomes one record. All values stay literal
// strings, whitespace-trimmed, with no type coercion. Any read failure,
// missing file, or header/row field-count mismatch wraps domain.ErrDataLoad.
func Open(path, enc string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrDataLoad, path, err)
	}
	defer f.Close()

	dec, err := decoderFor(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrDataLoad, err)
	}

	r := csv.NewReader(transform.NewReader(f, dec))

	header, err := r.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: %s has no header row", domain.ErrDataLoad, path)
		}
		return nil, fmt.Errorf("%w: read header of %s: %w", domain.ErrDataLoad, path, err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = strings.TrimSpace(name)
	}

	s := &Store{path: path, columns: columns}
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// csv.Reader enforces the header field count; a short or long
			// row surfaces here as ErrFieldCount.
			return nil, fmt.Errorf("%w: read %s: %w", domain.ErrDataLoad, path, err)
		}
		values := make(map[string]string, len(columns))
		for i, col := range columns {
			values[col] = strings.TrimSpace(row[i])
		}
		s.records = append(s.records, record.New(values))
	}

	return s, nil
}

// All returns the full ordered record set, preserving source row order.
// Order is stable across calls; records are immutable views.
func (s *Store) All() []record.Record {
	return append([]record.Record(nil), s.records...)
}

// Columns returns the header-defined field names in source order.
func (s *Store) Columns() []string {
	return append([]string(nil), s.columns...)
}

// Len returns the number of records in the snapshot.
func (s *Store) Len() int { return len(s.records) }

// Path returns the source file path.
func (s *Store) Path() string { return s.path }

// Check reports whether the snapshot is serviceable. Used by the health
// service; a loaded store never degrades at runtime.
func (s *Store) Check(_ context.Context) error {
	if len(s.columns) == 0 {
		return fmt.Errorf("%w: store has no schema", domain.ErrDataLoad)
	}
	return nil
}

// decoderFor maps a configured encoding name to a byte-stream decoder.
// UTF-8 input uses the BOM-tolerant variant so a leading BOM never leaks
// into the first column name. Declaring the wrong encoding corrupts
// accented Latin text, which is a correctness bug for this dataset.
func decoderFor(enc string) (*encoding.Decoder, error) {
	switch strings.ToLower(enc) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "latin-1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "windows-1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", enc)
	}
}
