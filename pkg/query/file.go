package query

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"os"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackcensus/pkg/errors"
)

// maxLine bounds one JSON-lines record; manifests can be large.
const maxLine = 64 << 20

// FileSource reads rows from a JSON-lines file of {"path", "content"}
// objects. The submitted SQL is recorded but not interpreted.
type FileSource struct {
	path   string
	logger *log.Logger
}

// NewFileSource returns a source reading path.
func NewFileSource(path string, logger *log.Logger) *FileSource {
	if logger == nil {
		logger = log.Default()
	}
	return &FileSource{path: path, logger: logger}
}

func (f *FileSource) Submit(_ context.Context, sql string) (*Handle, error) {
	if f == nil || f.path == "" || blank(sql) {
		return nil, errClientUnavailable()
	}
	if _, err := os.Stat(f.path); err != nil {
		return nil, errors.Wrap(errors.ErrCodeClientUnavailable, err, "open rows file")
	}
	f.logger.Debug("using rows file", "path", f.path)
	return &Handle{ID: "file:" + f.path, SQL: sql}, nil
}

func (f *FileSource) Results(ctx context.Context, h *Handle) (iter.Seq2[Row, error], error) {
	if h == nil {
		return nil, errJobNotInitialized()
	}
	file, err := os.Open(f.path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeReadFailure, err, "open rows file")
	}

	return func(yield func(Row, error) bool) {
		defer file.Close()

		sc := bufio.NewScanner(file)
		sc.Buffer(make([]byte, 0, 64*1024), maxLine)
		line := 0
		for sc.Scan() {
			line++
			if err := ctx.Err(); err != nil {
				yield(Row{}, err)
				return
			}
			text := bytes.TrimSpace(sc.Bytes())
			if len(text) == 0 {
				continue
			}
			var r Row
			if err := json.Unmarshal(text, &r); err != nil {
				yield(Row{}, errors.Wrap(errors.ErrCodeReadFailure, err, "%s line %d", f.path, line))
				return
			}
			if !yield(r, nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Row{}, fmt.Errorf("read %s: %w", f.path, err))
		}
	}, nil
}

// WriteRows writes rows to path in the format [FileSource] reads.
func WriteRows(path string, rows []Row) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	for _, r := range rows {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
