// Package catalog reads the tool record document served by the API.
//
// The document is opaque: it is read from disk on every call, checked for
// well-formed JSON and handed back byte-for-byte. Nothing is cached.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	pkgerrors "github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// ErrUnavailable covers every reason the document cannot be served:
// missing file, permission denied, malformed JSON.
var ErrUnavailable = errors.New("tool data unavailable")

// errMalformed is the cause attached when the file is not valid JSON.
var errMalformed = errors.New("invalid JSON")

// Source yields the current tool record document.
type Source interface {
	Load(ctx context.Context) (json.RawMessage, error)
}

// FileSource reads a JSON document from a fixed path.
type FileSource struct {
	path string
}

// NewFileSource returns a Source backed by the file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Path returns the file the source reads.
func (s *FileSource) Path() string { return s.path }

// Load reads and validates the file and returns it compacted, ready to be
// written as is. Errors always match ErrUnavailable.
func (s *FileSource) Load(ctx context.Context) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(s.path, err)
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, unavailable(s.path, err)
	}
	data = toValidUTF8(data)
	if !gjson.ValidBytes(data) {
		return nil, unavailable(s.path, errMalformed)
	}
	// json.Compact uses the same scanner as encoding/json, including its
	// nesting limit, so anything returned here can also be encoded.
	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return nil, unavailable(s.path, fmt.Errorf("%w: %w", errMalformed, err))
	}
	return json.RawMessage(buf.Bytes()), nil
}

// toValidUTF8 replaces every byte that does not start a valid UTF-8 sequence
// with U+FFFD.
func toValidUTF8(data []byte) []byte {
	if utf8.Valid(data) {
		return data
	}
	out := make([]byte, 0, len(data)+8)
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r == utf8.RuneError && size == 1 {
			out = utf8.AppendRune(out, utf8.RuneError)
		} else {
			out = append(out, data[:size]...)
		}
		data = data[size:]
	}
	return out
}

func unavailable(path string, cause error) error {
	return pkgerrors.WithStack(fmt.Errorf("%w: %s: %w", ErrUnavailable, path, cause))
}

// Count reports the number of top-level records: array length, object key
// count, or 1 for a scalar document.
func Count(doc json.RawMessage) int {
	res := gjson.ParseBytes(doc)
	switch {
	case res.IsArray():
		return len(res.Array())
	case res.IsObject():
		n := 0
		res.ForEach(func(_, _ gjson.Result) bool {
			n++
			return true
		})
		return n
	default:
		return 1
	}
}
