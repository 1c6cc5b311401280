package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/codeshot/pkg/capture"
	"github.com/matzehuels/codeshot/pkg/errors"
)

// maxDuplicates bounds the " (n)" suffix search.
const maxDuplicates = 1000

// DirSaver writes downloads into a directory the way a browser does:
// existing files are never overwritten, "name (1).ext" is used instead.
type DirSaver struct {
	Dir string
}

// Save decodes dataURI and writes it as name inside Dir. It returns the
// path written.
func (s *DirSaver) Save(ctx context.Context, name, dataURI string) (string, error) {
	if err := errors.ValidateFileName(name); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	_, data, err := capture.DecodeDataURI(dataURI)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSaveFailed, err, "decode artifact")
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(errors.ErrCodeSaveFailed, err, "create %s", dir)
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 0; i < maxDuplicates; i++ {
		candidate := name
		if i > 0 {
			candidate = fmt.Sprintf("%s (%d)%s", stem, i, ext)
		}
		path := filepath.Join(dir, candidate)
		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			continue
		}
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeSaveFailed, err, "create %s", candidate)
		}
		if _, err := f.Write(data); err != nil {
			f.Close()
			os.Remove(path)
			return "", errors.Wrap(errors.ErrCodeSaveFailed, err, "write %s", candidate)
		}
		if err := f.Close(); err != nil {
			return "", errors.Wrap(errors.ErrCodeSaveFailed, err, "close %s", candidate)
		}
		return path, nil
	}
	return "", errors.New(errors.ErrCodeSaveFailed, "too many copies of %s", name)
}
