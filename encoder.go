package columnchunk

import (
	"github.com/segmentio/columnchunk/encoding/plain"
	"github.com/segmentio/columnchunk/encoding/rle"
	"github.com/segmentio/columnchunk/internal/bits"
)

// valueEncoder is the accumulation side of a column writer: it receives
// batches of non-null values and materializes the value payload of a page on
// flush.
//
// The estimated size drives page cuts; it is an upper bound, not the exact
// size of the flushed payload.
type valueEncoder[T primitive] interface {
	put(values []T)
	putSpaced(values []T, validBits []byte, offset int64)
	estimatedDataEncodedSize() int
	flushValues() ([]byte, error)
}

// plainEncoder serializes values eagerly into its buffer; the estimate is
// exact for every type it handles.
type plainEncoder[T primitive] struct {
	class *class[T]
	data  []byte
}

func (e *plainEncoder[T]) put(values []T) {
	e.data = e.class.appendPlain(e.data, values)
}

func (e *plainEncoder[T]) putSpaced(values []T, validBits []byte, offset int64) {
	// The values slice is dense, null slots have no encoded form.
	e.put(values)
}

func (e *plainEncoder[T]) estimatedDataEncodedSize() int {
	return len(e.data)
}

func (e *plainEncoder[T]) flushValues() ([]byte, error) {
	data := e.data
	e.data = e.data[:0]
	return data, nil
}

// booleanPlainEncoder buffers booleans until flush so the bit packing runs
// over the whole page instead of aligning at every batch.
type booleanPlainEncoder struct {
	class  *class[bool]
	values []bool
	data   []byte
}

func (e *booleanPlainEncoder) put(values []bool) {
	e.values = append(e.values, values...)
}

func (e *booleanPlainEncoder) putSpaced(values []bool, validBits []byte, offset int64) {
	e.put(values)
}

func (e *booleanPlainEncoder) estimatedDataEncodedSize() int {
	return e.class.plainSize(e.values)
}

func (e *booleanPlainEncoder) flushValues() ([]byte, error) {
	e.data = plain.AppendBoolean(e.data[:0], e.values)
	e.values = e.values[:0]
	return e.data, nil
}

// dictEncoder deduplicates values into an insertion-ordered dictionary and
// buffers the index of every value written. Flushing produces the bit-width
// prefixed index stream of one page; the dictionary payload itself is
// serialized once by writeDict.
type dictEncoder[T primitive] struct {
	class       *class[T]
	index       map[string]int32
	values      []T
	indices     []int32
	encodedSize int
	data        []byte
}

func newDictEncoder[T primitive](class *class[T]) *dictEncoder[T] {
	return &dictEncoder[T]{
		class: class,
		index: make(map[string]int32),
	}
}

func (e *dictEncoder[T]) put(values []T) {
	for i := range values {
		key := string(e.class.bytes(values[i]))
		id, ok := e.index[key]
		if !ok {
			id = int32(len(e.values))
			e.index[key] = id
			e.values = append(e.values, e.class.clone(values[i]))
			e.encodedSize += e.class.plainSize(values[i : i+1])
		}
		e.indices = append(e.indices, id)
	}
}

func (e *dictEncoder[T]) putSpaced(values []T, validBits []byte, offset int64) {
	e.put(values)
}

func (e *dictEncoder[T]) bitWidth() int {
	if len(e.values) <= 1 {
		return 0
	}
	return bits.Len32(int32(len(e.values) - 1))
}

func (e *dictEncoder[T]) estimatedDataEncodedSize() int {
	return 1 + rle.IndexBufferSize(e.bitWidth(), len(e.indices))
}

func (e *dictEncoder[T]) flushValues() ([]byte, error) {
	data, err := rle.EncodeIndexes(e.data[:0], e.indices)
	if err != nil {
		return nil, err
	}
	e.data = data
	e.indices = e.indices[:0]
	return data, nil
}

// dictEncodedSize reports the size the dictionary payload would occupy if
// serialized now; the writer compares it against the dictionary page size
// limit.
func (e *dictEncoder[T]) dictEncodedSize() int {
	return e.encodedSize
}

func (e *dictEncoder[T]) numEntries() int {
	return len(e.values)
}

// writeDict appends the plain encoding of the distinct values in insertion
// order.
func (e *dictEncoder[T]) writeDict(dst []byte) []byte {
	return e.class.appendPlain(dst, e.values)
}

// release drops the dictionary storage; it is called right after the
// dictionary page is serialized so the values are not held twice. The
// buffered indices remain usable.
func (e *dictEncoder[T]) release() {
	e.index = nil
	e.values = nil
}
