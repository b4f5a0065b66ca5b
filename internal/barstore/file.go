package barstore

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/specialistvlad/signalgrid/internal/bars"
	"github.com/specialistvlad/signalgrid/internal/ctxlog"
	"github.com/specialistvlad/signalgrid/internal/fsutil"
)

// FileStore reads bars from `<dir>/<symbol>.<ext>`, trying each reader's
// extension in order.
type FileStore struct {
	dir     string
	readers []Reader
}

// NewFileStore creates a store over dir. Without readers it uses
// DefaultReaders.
func NewFileStore(dir string, readers ...Reader) *FileStore {
	if len(readers) == 0 {
		readers = DefaultReaders()
	}
	return &FileStore{dir: dir, readers: readers}
}

func (s *FileStore) Load(ctx context.Context, symbol string, start, end time.Time) ([]bars.Bar, error) {
	logger := ctxlog.FromContext(ctx)

	candidates := make([]string, len(s.readers))
	for i, r := range s.readers {
		candidates[i] = filepath.Join(s.dir, symbol+"."+r.Extension())
	}
	path, ok, err := fsutil.FirstExisting(candidates...)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: '%s' in %s", ErrSymbolMissing, symbol, s.dir)
	}

	reader := s.readers[0]
	for i, c := range candidates {
		if c == path {
			reader = s.readers[i]
			break
		}
	}

	all, err := reader.Read(path)
	if err != nil {
		return nil, err
	}
	out := filterRange(all, start, end)
	logger.Debug("FileStore: bars loaded.", "path", path, "read", len(all), "kept", len(out))

	if len(out) == 0 {
		return nil, ErrNoBars
	}
	return out, nil
}
