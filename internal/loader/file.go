package loader

import (
	"context"
	"fmt"
	"os"

	"github.com/guttosm/p2pulse/internal/domain/models"
)

// FileSource reads the feed document from a local path on every Load.
type FileSource struct {
	Path string
	Key  string
}

// NewFileSource returns a source reading the document at path.
//
// Parameters:
//   - path: local file holding the feed document.
//   - key: top-level key of the operations array; empty means DefaultKey.
func NewFileSource(path, key string) *FileSource {
	return &FileSource{Path: path, Key: key}
}

// Name identifies the source in logs and snapshots as "file:<path>".
func (s *FileSource) Name() string { return "file:" + s.Path }

// Load reads and decodes the file. Read failures wrap ErrSourceUnavailable;
// decoding failures are those of Decode.
func (s *FileSource) Load(ctx context.Context) (models.TradeSet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, err)
	}
	return Decode(data, s.Key)
}
