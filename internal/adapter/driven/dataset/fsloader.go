package dataset

import (
	"context"
	"io/fs"
	"path"

	"github.com/cbitosc/verify25/internal/domain/model"
	"github.com/cbitosc/verify25/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.DatasetLoader = (*FSLoader)(nil)

// FSLoader reads <event>/data.json from a filesystem, typically os.DirFS of
// the docs directory.
type FSLoader struct {
	fsys fs.FS
}

// NewFSLoader creates an FSLoader rooted at fsys.
func NewFSLoader(fsys fs.FS) *FSLoader {
	return &FSLoader{fsys: fsys}
}

// Load reads and decodes the dataset of event.
func (l *FSLoader) Load(ctx context.Context, event string) ([]model.VerificationRecord, error) {
	name := path.Join(event, DataFileName)
	if err := ctx.Err(); err != nil {
		return nil, &model.FetchError{Event: event, Source: name, Err: err}
	}

	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, &model.FetchError{Event: event, Source: name, Err: err}
	}
	defer f.Close()

	return DecodeRecords(event, name, f)
}
