// Package jsonobj reads and writes JSON objects whose member order matters.
package jsonobj

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Walk visits the members of a JSON object in document order.
func Walk(data []byte, fn func(key string, raw json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}
		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("decode %q: %w", key, err)
		}
		if err := fn(key, raw); err != nil {
			return err
		}
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	return nil
}

// Writer assembles a JSON object member by member.
type Writer struct {
	buf   bytes.Buffer
	count int
}

func NewWriter() *Writer {
	w := &Writer{}
	w.buf.WriteByte('{')
	return w
}

// Raw appends a member whose value is already encoded.
func (w *Writer) Raw(key string, value []byte) {
	if w.count > 0 {
		w.buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	w.buf.Write(k)
	w.buf.WriteByte(':')
	w.buf.Write(value)
	w.count++
}

// Value marshals v and appends it under key.
func (w *Writer) Value(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	w.Raw(key, data)
	return nil
}

func (w *Writer) Bytes() []byte {
	out := make([]byte, w.buf.Len(), w.buf.Len()+1)
	copy(out, w.buf.Bytes())
	return append(out, '}')
}
