package adapter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/magiconair/properties"

	m "intlcode.dev/pkg/intlcode/internal/model"
)

// Supported resource encodings.
const (
	EncodingUTF8   = "utf-8"
	EncodingLatin1 = "iso-8859-1"
)

// ResourceParser turns a properties stream into ordered entries.
type ResourceParser interface {
	Parse(ctx context.Context, r io.Reader) ([]m.ResourceEntry, error)
}

// PropertiesParser parses Java-style .properties resources: key=value or
// key: value lines, # and ! comments, line continuations and \uXXXX escapes.
// Values are taken verbatim; ${} references are not expanded.
type PropertiesParser struct {
	encoding properties.Encoding
}

// NewPropertiesParser creates a parser for the named encoding. Unknown names
// fall back to UTF-8.
func NewPropertiesParser(encoding string) *PropertiesParser {
	enc := properties.UTF8

	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case EncodingLatin1, "latin1", "latin-1", "iso8859-1":
		enc = properties.ISO_8859_1
	}

	return &PropertiesParser{encoding: enc}
}

// Parse reads the whole stream and returns its entries in file order. A key
// declared twice keeps its first position and its last value.
func (p *PropertiesParser) Parse(ctx context.Context, r io.Reader) ([]m.ResourceEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read properties: %w", err)
	}

	loader := &properties.Loader{Encoding: p.encoding, DisableExpansion: true}

	props, err := loader.LoadBytes(buf)
	if err != nil {
		return nil, fmt.Errorf("parse properties: %w", err)
	}

	keys := props.Keys()
	entries := make([]m.ResourceEntry, 0, len(keys))

	for _, key := range keys {
		value, _ := props.Get(key)
		entries = append(entries, m.ResourceEntry{Key: key, Value: value})
	}

	return entries, nil
}
