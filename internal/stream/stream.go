// Package stream implements the data stream collaborator (spec §4.G): a
// growable byte buffer paired with a metadata bag, used to wire process
// functions together inside a pipeline.
package stream

import (
	"errors"

	"github.com/obinexus/nexuslink/pkg/nxerrors"
)

// growthFactor is applied to capacity when a write overruns it.
const growthFactor = 1.5

// FreeHook is invoked when a metadata entry is overwritten or the stream
// is destroyed, letting callers release arbitrary typed values they
// stored without the stream knowing their shape (spec §9 "Metadata value
// hooks").
type FreeHook func(value any)

type metadataEntry struct {
	key   string
	value any
	free  FreeHook
}

// Stream is a growable byte buffer with an associated metadata bag. It is
// the unit of data passed between pipeline components (spec §3 "Data
// stream").
type Stream struct {
	buf      []byte
	position int
	size     int
	format   string
	owns     bool

	meta     map[string]int // key -> index into order
	order    []metadataEntry
}

// New creates an empty stream with the given initial capacity and format
// tag. The stream owns its own buffer.
func New(initialCapacity int, format string) *Stream {
	if initialCapacity < 0 {
		initialCapacity = 0
	}
	return &Stream{
		buf:    make([]byte, initialCapacity),
		format: format,
		owns:   true,
		meta:   make(map[string]int),
	}
}

// Format reports the stream's format tag.
func (s *Stream) Format() string { return s.format }

// SetFormat updates the stream's format tag.
func (s *Stream) SetFormat(format string) { s.format = format }

// Len reports the current logical size in bytes.
func (s *Stream) Len() int { return s.size }

// Position reports the current read/write cursor.
func (s *Stream) Position() int { return s.position }

// Capacity reports the underlying buffer's allocated length.
func (s *Stream) Capacity() int { return len(s.buf) }

func (s *Stream) grow(required int) {
	if required <= len(s.buf) {
		return
	}
	grown := int(float64(len(s.buf)) * growthFactor)
	newCap := required
	if grown > newCap {
		newCap = grown
	}
	next := make([]byte, newCap)
	copy(next, s.buf[:s.size])
	s.buf = next
}

// Write copies p at the current position, advancing it, and growing
// capacity per the 1.5x policy if the write would overrun it
// (spec §4.G "write").
func (s *Stream) Write(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	required := s.position + len(p)
	s.grow(required)

	copy(s.buf[s.position:required], p)
	s.position = required
	if s.position > s.size {
		s.size = s.position
	}
	return len(p), nil
}

// Read copies up to len(p) bytes from the current position, advancing it,
// and returns the number of bytes actually copied. A short read — fewer
// bytes available than requested — is success, not an error
// (spec §4.G "read").
func (s *Stream) Read(p []byte) (int, error) {
	available := s.size - s.position
	if available <= 0 {
		return 0, nil
	}
	n := len(p)
	if n > available {
		n = available
	}
	copy(p[:n], s.buf[s.position:s.position+n])
	s.position += n
	return n, nil
}

// Bytes returns the logical contents from 0 to Len(), without consuming
// the read cursor.
func (s *Stream) Bytes() []byte {
	return s.buf[:s.size]
}

// Clear resets position and size to zero but preserves capacity
// (spec §4.G "clear").
func (s *Stream) Clear() {
	s.position = 0
	s.size = 0
}

// Reset rewinds the read/write cursor to zero while keeping size and
// contents, so everything written so far can be read back from the start
// (spec §4.G "reset").
func (s *Stream) Reset() {
	s.position = 0
}

// Clone deep-copies the byte contents and format, and shallow-copies
// metadata value references — not a deep clone of opaque metadata values
// (spec §4.G "clone").
func (s *Stream) Clone() *Stream {
	clone := &Stream{
		buf:      make([]byte, len(s.buf)),
		position: s.position,
		size:     s.size,
		format:   s.format,
		owns:     true,
		meta:     make(map[string]int, len(s.meta)),
	}
	copy(clone.buf, s.buf)
	clone.order = append([]metadataEntry(nil), s.order...)
	for k, v := range s.meta {
		clone.meta[k] = v
	}
	return clone
}

// SetMetadata stores value under key, invoking the previous entry's free
// hook first if key already existed (spec §4.G "Metadata operations").
// Ownership of value transfers to the stream (spec §9).
func (s *Stream) SetMetadata(key string, value any, free FreeHook) {
	if idx, ok := s.meta[key]; ok {
		old := s.order[idx]
		if old.free != nil {
			old.free(old.value)
		}
		s.order[idx] = metadataEntry{key: key, value: value, free: free}
		return
	}
	s.meta[key] = len(s.order)
	s.order = append(s.order, metadataEntry{key: key, value: value, free: free})
}

// MetadataKeys returns metadata keys in insertion order.
func (s *Stream) MetadataKeys() []string {
	keys := make([]string, len(s.order))
	for i, e := range s.order {
		keys[i] = e.key
	}
	return keys
}

// GetMetadata returns the raw value stored under key, if any.
func (s *Stream) GetMetadata(key string) (any, bool) {
	idx, ok := s.meta[key]
	if !ok {
		return nil, false
	}
	return s.order[idx].value, true
}

// Destroy invokes every metadata entry's free hook in reverse insertion
// order, then releases the underlying buffer iff the stream owns it
// (spec §4.G "Metadata operations").
func (s *Stream) Destroy() error {
	for i := len(s.order) - 1; i >= 0; i-- {
		entry := s.order[i]
		if entry.free != nil {
			entry.free(entry.value)
		}
	}
	s.order = nil
	s.meta = make(map[string]int)
	if s.owns {
		s.buf = nil
	}
	return nil
}

// SetOwnership marks whether the stream owns its buffer; a stream that
// does not own its buffer skips releasing it on Destroy.
func (s *Stream) SetOwnership(owns bool) { s.owns = owns }

// RequireCapacity returns AllocationFailed if required is negative, which
// is what an overflowed int size computation yields; any non-negative
// value is accepted (spec §4.D failure-mode naming convention reused for
// §4.G).
func (s *Stream) RequireCapacity(required int) error {
	if required < 0 {
		return nxerrors.NewAllocationFailed(errors.New("negative capacity requested"))
	}
	return nil
}
