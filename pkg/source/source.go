package source

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// MaxDocumentBytes bounds a single document read from disk or git.
const MaxDocumentBytes = 64 << 20

// ErrTooLarge is returned for documents above MaxDocumentBytes.
var ErrTooLarge = errors.New("document too large")

// Document is a rule definition document and where it came from.
type Document struct {
	// Name identifies the document in reports and logs, e.g. a path or
	// "v2.6:rules/srs.xml".
	Name string

	Data []byte
}

// IsEmpty reports whether the document has no content.
func (d Document) IsEmpty() bool {
	return len(d.Data) == 0
}

// ReadFile reads the document at path.
func ReadFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	data, err := readAll(f)
	if err != nil {
		return Document{}, fmt.Errorf("read document %s: %w", path, err)
	}
	return Document{Name: path, Data: data}, nil
}

// Read reads a document from r, named name.
func Read(name string, r io.Reader) (Document, error) {
	data, err := readAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read document %s: %w", name, err)
	}
	return Document{Name: name, Data: data}, nil
}

func readAll(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxDocumentBytes+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxDocumentBytes {
		return nil, ErrTooLarge
	}
	return data, nil
}
