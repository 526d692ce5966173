package internal

import (
	"bytes"
	"sync"
)

// BufferPool holds scratch buffers used when serialising waypoints.
var BufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 512))
	},
}
