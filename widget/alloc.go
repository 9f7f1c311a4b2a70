package widget

// Allocator provides the storage owned by a NoteWidget. Free is called
// exactly once for every buffer returned by Alloc.
type Allocator interface {
	Alloc(n int) []byte
	Free(b []byte)
}

type heapAllocator struct{}

func (heapAllocator) Alloc(n int) []byte { return make([]byte, n) }
func (heapAllocator) Free([]byte)        {}

// HeapAllocator allocates from the Go heap. Free is a no-op.
var HeapAllocator Allocator = heapAllocator{}
