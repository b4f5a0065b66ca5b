package barstore

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/parquet-go/parquet-go"
	"github.com/specialistvlad/signalgrid/internal/bars"
)

// Reader decodes one bar file format.
type Reader interface {
	Read(path string) ([]bars.Bar, error)
	Extension() string
}

// NewReader returns the reader for a format name (csv, parquet, json), or
// nil when the format is not supported.
func NewReader(format string) Reader {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVReader{}
	case "parquet":
		return ParquetReader{}
	case "json":
		return JSONReader{}
	default:
		return nil
	}
}

// DefaultReaders lists the readers FileStore tries, in lookup order.
func DefaultReaders() []Reader {
	return []Reader{CSVReader{}, ParquetReader{}, JSONReader{}}
}

// ParquetReader reads files whose row schema matches bars.Bar.
type ParquetReader struct{}

func (ParquetReader) Extension() string { return "parquet" }

func (ParquetReader) Read(path string) ([]bars.Bar, error) {
	rows, err := parquet.ReadFile[bars.Bar](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet %s: %w", path, err)
	}
	return rows, nil
}

// JSONReader reads a JSON array of bars.
type JSONReader struct{}

func (JSONReader) Extension() string { return "json" }

func (JSONReader) Read(path string) ([]bars.Bar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var out []bars.Bar
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode json %s: %w", path, err)
	}
	return out, nil
}

// CSVReader reads `timestamp,open,high,low,close[,volume]` rows. The
// timestamp is Unix milliseconds or RFC3339. A leading header row is
// skipped.
type CSVReader struct{}

func (CSVReader) Extension() string { return "csv" }

func (r CSVReader) Read(path string) ([]bars.Bar, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	out, err := r.decode(bufio.NewReader(f))
	if err != nil {
		return nil, fmt.Errorf("read csv %s: %w", path, err)
	}
	return out, nil
}

func (CSVReader) decode(in io.Reader) ([]bars.Bar, error) {
	cr := csv.NewReader(in)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	var out []bars.Bar
	for line := 1; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if line == 1 && isHeader(rec) {
			continue
		}
		if len(rec) < 5 {
			return nil, fmt.Errorf("line %d: expected at least 5 columns, got %d", line, len(rec))
		}

		b, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, b)
	}
	return out, nil
}

func isHeader(rec []string) bool {
	if len(rec) == 0 {
		return false
	}
	first := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(rec[0], "\ufeff")))
	return first == "timestamp" || first == "timestamp_ms" || first == "time"
}

func parseRecord(rec []string) (bars.Bar, error) {
	ts, err := parseTimestamp(strings.TrimPrefix(rec[0], "\ufeff"))
	if err != nil {
		return bars.Bar{}, err
	}

	var vals [5]float64
	for i := 1; i < len(rec) && i <= 5; i++ {
		v, err := strconv.ParseFloat(strings.TrimSpace(rec[i]), 64)
		if err != nil {
			return bars.Bar{}, fmt.Errorf("column %d: %w", i+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return bars.Bar{}, fmt.Errorf("column %d: non-finite value %q", i+1, strings.TrimSpace(rec[i]))
		}
		vals[i-1] = v
	}
	return bars.Bar{Timestamp: ts, Open: vals[0], High: vals[1], Low: vals[2], Close: vals[3], Volume: vals[4]}, nil
}

func parseTimestamp(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return ms, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	return t.UnixMilli(), nil
}
