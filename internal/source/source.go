package source

import (
	"context"
	"fmt"

	"realmform/pkg/logging"
)

// Document is one realm document and the name it was loaded from.
type Document struct {
	Name string
	Data []byte
}

// Source yields realm documents in a stable order.
type Source interface {
	Name() string
	Load(ctx context.Context) ([]Document, error)
}

// LoadError reports a source that could not be read.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load source %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Load reads every source in order and renders the documents through tmpl
// when it is not nil.
func Load(ctx context.Context, sources []Source, tmpl *Templater) ([]Document, error) {
	var docs []Document
	for _, src := range sources {
		loaded, err := src.Load(ctx)
		if err != nil {
			return nil, &LoadError{Source: src.Name(), Err: err}
		}
		logging.Debug("Source", "Loaded %d documents from %s", len(loaded), src.Name())
		docs = append(docs, loaded...)
	}
	if tmpl == nil {
		return docs, nil
	}
	for i := range docs {
		rendered, err := tmpl.Render(docs[i].Name, docs[i].Data)
		if err != nil {
			return nil, err
		}
		docs[i].Data = rendered
	}
	return docs, nil
}

// Data returns the raw contents of docs for decoding.
func Data(docs []Document) [][]byte {
	out := make([][]byte, len(docs))
	for i, d := range docs {
		out[i] = d.Data
	}
	return out
}
