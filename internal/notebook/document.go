package notebook

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/vvka-141/nbfix/pkg/nbfix"
)

const (
	keyMetadata    = "metadata"
	keyWidgets     = "widgets"
	keyFormat      = "nbformat"
	keyFormatMinor = "nbformat_minor"
)

// ErrNotObject is returned when a document is not a JSON object.
var ErrNotObject = errors.New("document is not a JSON object")

// Document is a parsed nbformat v4 notebook.
// Document is not safe for concurrent mutation.
type Document struct {
	fields      map[string]json.RawMessage
	metadata    map[string]json.RawMessage
	format      int
	formatMinor int
}

// Parse decodes a notebook and checks that it is nbformat version 4.
func Parse(data []byte) (*Document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("invalid notebook JSON: %w", err)
	}
	if fields == nil {
		return nil, ErrNotObject
	}

	doc := &Document{fields: fields}

	format, err := intField(fields, keyFormat)
	if err != nil {
		return nil, err
	}
	if format != nbfix.SupportedFormat {
		return nil, fmt.Errorf("nbformat %d, only version %d is supported: %w", format, nbfix.SupportedFormat, nbfix.ErrUnsupportedFormat)
	}
	doc.format = format

	if _, ok := fields[keyFormatMinor]; ok {
		if doc.formatMinor, err = intField(fields, keyFormatMinor); err != nil {
			return nil, err
		}
	}

	doc.metadata = make(map[string]json.RawMessage)
	if raw, ok := fields[keyMetadata]; ok {
		if !isObject(raw) {
			return nil, fmt.Errorf("notebook metadata is not a JSON object: %w", ErrNotObject)
		}
		if err := json.Unmarshal(raw, &doc.metadata); err != nil {
			return nil, fmt.Errorf("invalid notebook metadata: %w", err)
		}
	}

	return doc, nil
}

func intField(fields map[string]json.RawMessage, key string) (int, error) {
	raw, ok := fields[key]
	if !ok {
		return 0, fmt.Errorf("missing %q field: %w", key, nbfix.ErrUnsupportedFormat)
	}
	var v int
	if err := json.Unmarshal(raw, &v); err != nil {
		return 0, fmt.Errorf("%q must be an integer: %w", key, nbfix.ErrUnsupportedFormat)
	}
	return v, nil
}

// isObject reports whether raw holds a JSON object (not null, array or scalar).
func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// Format returns the nbformat major version.
func (d *Document) Format() int { return d.format }

// FormatMinor returns the nbformat minor version.
func (d *Document) FormatMinor() int { return d.formatMinor }

// widgets decodes metadata.widgets. A missing entry yields an empty map.
func (d *Document) widgets() (map[string]json.RawMessage, error) {
	raw, ok := d.metadata[keyWidgets]
	if !ok {
		return map[string]json.RawMessage{}, nil
	}
	if !isObject(raw) {
		return nil, fmt.Errorf("metadata.widgets is not a JSON object: %w", nbfix.ErrMalformedWidgets)
	}
	var widgets map[string]json.RawMessage
	if err := json.Unmarshal(raw, &widgets); err != nil {
		return nil, fmt.Errorf("metadata.widgets: %v: %w", err, nbfix.ErrMalformedWidgets)
	}
	return widgets, nil
}

func (d *Document) setWidgets(widgets map[string]json.RawMessage) error {
	raw, err := encodeRaw(widgets)
	if err != nil {
		return fmt.Errorf("failed to encode metadata.widgets: %w", err)
	}
	d.metadata[keyWidgets] = raw

	meta, err := encodeRaw(d.metadata)
	if err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	d.fields[keyMetadata] = meta
	return nil
}

// encodeRaw encodes v compactly without HTML escaping, so that fragments
// containing <, > or & are written back byte for byte.
func encodeRaw(v interface{}) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Marshal encodes the document in nbformat layout.
func (d *Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", " ")
	if err := enc.Encode(d.fields); err != nil {
		return nil, fmt.Errorf("failed to encode notebook: %w", err)
	}
	return buf.Bytes(), nil
}
