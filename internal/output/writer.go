// Package output writes classification results as parquet shards, JSON
// Lines or SQL rows.
package output

import (
	"bufio"
	"encoding/json"
	"io"

	"github.com/lgbarn/pgn-endings-go/internal/classify"
)

// ResultWriter is the interface for writing classification results.
// Implementations may buffer; results are durable only after Flush or
// Close returns.
type ResultWriter interface {
	// WriteResult writes a single result.
	WriteResult(res classify.Result) error

	// Flush writes any buffered results.
	Flush() error

	// Close flushes and releases any resources.
	Close() error
}

// Buffering is implemented by writers that hold results until a size
// boundary instead of on every Flush. Buffered reports how many written
// results are not yet durable.
type Buffering interface {
	Buffered() int
}

// JSONWriter writes one JSON object per result.
type JSONWriter struct {
	bw     *bufio.Writer
	enc    *json.Encoder
	closer io.Closer
}

// NewJSONWriter creates a JSON Lines writer on w. If w is an io.Closer it
// is closed by Close.
func NewJSONWriter(w io.Writer) *JSONWriter {
	bw := bufio.NewWriter(w)
	jw := &JSONWriter{bw: bw, enc: json.NewEncoder(bw)}
	if c, ok := w.(io.Closer); ok {
		jw.closer = c
	}
	return jw
}

// WriteResult encodes res on its own line.
func (jw *JSONWriter) WriteResult(res classify.Result) error {
	return jw.enc.Encode(res)
}

// Flush flushes buffered lines to the underlying writer.
func (jw *JSONWriter) Flush() error {
	return jw.bw.Flush()
}

// Close flushes and closes the underlying writer.
func (jw *JSONWriter) Close() error {
	err := jw.Flush()
	if jw.closer != nil {
		if cerr := jw.closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
