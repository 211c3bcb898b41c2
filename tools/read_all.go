// Package tools holds small helpers shared by the app and manifest loading.
package tools

import (
	"bytes"
	"io"
	"sync"
)

var pool = sync.Pool{
	New: func() any {
		return bytes.NewBuffer(make([]byte, 0, 4096))
	},
}

// ReadAll reads r to EOF through a pooled buffer. The returned slice is
// owned by the caller.
func ReadAll(r io.Reader) ([]byte, error) {
	if r == nil {
		return []byte{}, nil
	}
	buffer := pool.Get().(*bytes.Buffer)
	buffer.Reset()
	defer pool.Put(buffer)

	if _, err := io.Copy(buffer, r); err != nil {
		return []byte{}, err
	}
	body := make([]byte, buffer.Len())
	copy(body, buffer.Bytes())
	return body, nil
}
