package handler

import (
	"bytes"
	"sync"
)

const (
	initialBufferSize = 512
	// bodies larger than this (a long message list) are not kept for reuse
	maxPooledBufferSize = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBufferSize {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}
