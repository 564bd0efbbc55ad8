package request

import "sync"

// chunkSize is the size of a single socket read
const chunkSize = 1024

var chunkPool = sync.Pool{
	New: func() interface{} {
		buf := make([]byte, chunkSize)
		return &buf
	},
}

func getChunk() []byte {
	return *chunkPool.Get().(*[]byte)
}

func putChunk(buf []byte) {
	if cap(buf) != chunkSize {
		return
	}
	buf = buf[:chunkSize]
	chunkPool.Put(&buf)
}
