package compression

import (
	"bytes"
	"compress/gzip"
	"io"
)

// GzipCompressor compresses and decompresses values using stdlib gzip.
type GzipCompressor struct{}

// Compress compresses data using Gzip.
func (g *GzipCompressor) Compress(data []byte) ([]byte, error) {
	if g == nil {
		return data, nil
	}

	var buf bytes.Buffer
	writer := gzip.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decompress decompresses data compressed using Gzip.
func (g *GzipCompressor) Decompress(data []byte) ([]byte, error) {
	if g == nil {
		return data, nil
	}

	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	return io.ReadAll(reader)
}
