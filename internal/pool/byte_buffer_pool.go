package pool

import (
	"io"
	"sync"
)

const (
	// DocBufferDefaultSize is the default capacity for document assembly buffers.
	DocBufferDefaultSize = 1024 * 4 // 4KiB

	// DocBufferMaxThreshold discards returned buffers above this capacity so a
	// single huge document does not pin memory in the pool.
	DocBufferMaxThreshold = 1024 * 256 // 256KiB
)

// ByteBuffer is a reusable byte slice wrapper used for document and envelope
// assembly. It implements io.Writer so it can back fmt.Fprintf-style emission.
type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified initial capacity.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// String returns the buffer contents as a string.
func (bb *ByteBuffer) String() string {
	return string(bb.B)
}

// Reset empties the buffer while retaining the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// WriteByte appends a single byte.
func (bb *ByteBuffer) WriteByte(c byte) error {
	bb.B = append(bb.B, c)
	return nil
}

// WriteString appends the contents of s.
func (bb *ByteBuffer) WriteString(s string) (int, error) {
	bb.B = append(bb.B, s...)
	return len(s), nil
}

// Write appends the contents of data, growing the buffer as needed.
func (bb *ByteBuffer) Write(data []byte) (int, error) {
	bb.B = append(bb.B, data...)
	return len(data), nil
}

// WriteTo writes the contents of the buffer to w.
func (bb *ByteBuffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(bb.B)
	return int64(n), err
}

// ByteBufferPool is a pool of ByteBuffers used to minimize allocations on the
// encode hot path. It uses sync.Pool internally and discards buffers whose
// capacity grew past the configured threshold.
type ByteBufferPool struct {
	pool         sync.Pool
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool.
func NewByteBufferPool(defaultSize int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(defaultSize)
			},
		},
		maxThreshold: maxThreshold,
	}
}

// Get retrieves a ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		// Discard overly large buffers to prevent memory bloat
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var docDefaultPool = NewByteBufferPool(DocBufferDefaultSize, DocBufferMaxThreshold)

// GetDocBuffer retrieves a ByteBuffer from the default document pool.
func GetDocBuffer() *ByteBuffer {
	return docDefaultPool.Get()
}

// PutDocBuffer returns a ByteBuffer to the default document pool.
func PutDocBuffer(bb *ByteBuffer) {
	docDefaultPool.Put(bb)
}
