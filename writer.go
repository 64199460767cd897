package columnchunk

import (
	"encoding/binary"
	"fmt"

	"github.com/segmentio/columnchunk/deprecated"
	"github.com/segmentio/columnchunk/encoding/rle"
	"github.com/segmentio/columnchunk/format"
)

// ColumnWriter is the erased surface of a typed column chunk writer. The
// value of NewColumnWriter is asserted to the typed writer matching the
// descriptor's physical type to gain access to the WriteBatch methods.
type ColumnWriter interface {
	// Descriptor returns the column descriptor the writer is bound to.
	Descriptor() *ColumnDescriptor

	// Encoding returns the value encoding of the data pages currently being
	// produced; it changes from the dictionary index encoding to PLAIN when
	// the writer falls back.
	Encoding() format.Encoding

	// NumRows returns the number of rows started so far.
	NumRows() int64

	// TotalBytesWritten returns the number of bytes handed to the sink so
	// far; deferred pages count only once they reach the sink.
	TotalBytesWritten() int64

	// Close flushes the remaining pages, closes the sink, and verifies the
	// row count. It must be called exactly once.
	Close() (int64, error)
}

// Typed writers for each physical type.
type (
	BooleanWriter           = Writer[bool]
	Int32Writer             = Writer[int32]
	Int64Writer             = Writer[int64]
	Int96Writer             = Writer[deprecated.Int96]
	FloatWriter             = Writer[float32]
	DoubleWriter            = Writer[float64]
	ByteArrayWriter         = Writer[[]byte]
	FixedLenByteArrayWriter = Writer[[]byte]
)

// NewColumnWriter constructs the column chunk writer for the given column
// descriptor. Pages are handed to sink as they are cut; the chunk-aggregate
// statistics go to metadata on close when it is non-nil. The writer fails
// when more than expectedRows rows are written, and Close fails unless
// exactly expectedRows rows were written.
func NewColumnWriter(descr *ColumnDescriptor, sink PageWriter, metadata ChunkMetadataBuilder, expectedRows int64, options ...WriterOption) (ColumnWriter, error) {
	config := DefaultWriterConfig()
	config.Apply(options...)
	if err := config.Validate(); err != nil {
		return nil, err
	}

	encoding := config.EncodingOf(descr.Path)
	hasDictionary := config.DictionaryEnabledOf(descr.Path) && descr.PhysicalType != format.Boolean
	if hasDictionary {
		encoding = config.DictionaryIndexEncoding
	}

	switch descr.PhysicalType {
	case format.Boolean:
		return newWriter(&boolClass, descr, sink, metadata, expectedRows, config, encoding, hasDictionary)
	case format.Int32:
		return newWriter(&int32Class, descr, sink, metadata, expectedRows, config, encoding, hasDictionary)
	case format.Int64:
		return newWriter(&int64Class, descr, sink, metadata, expectedRows, config, encoding, hasDictionary)
	case format.Int96:
		return newWriter(&int96Class, descr, sink, metadata, expectedRows, config, encoding, hasDictionary)
	case format.Float:
		return newWriter(&floatClass, descr, sink, metadata, expectedRows, config, encoding, hasDictionary)
	case format.Double:
		return newWriter(&doubleClass, descr, sink, metadata, expectedRows, config, encoding, hasDictionary)
	case format.ByteArray:
		return newWriter(&byteArrayClass, descr, sink, metadata, expectedRows, config, encoding, hasDictionary)
	case format.FixedLenByteArray:
		if descr.TypeLength <= 0 {
			return nil, fmt.Errorf("FIXED_LEN_BYTE_ARRAY column %q has no type length", descr.Path)
		}
		return newWriter(fixedLenByteArrayClass(descr.TypeLength), descr, sink, metadata, expectedRows, config, encoding, hasDictionary)
	default:
		return nil, fmt.Errorf("column writer not implemented for type: %s", descr.PhysicalType)
	}
}

// Writer is the page assembly state machine of one column chunk: it buffers
// levels and values, counts rows, cuts pages when the value encoder crosses
// the page size threshold, and handles the one-way fallback from dictionary
// to plain encoding.
type Writer[T primitive] struct {
	descr    *ColumnDescriptor
	sink     PageWriter
	metadata ChunkMetadataBuilder
	config   *WriterConfig
	class    *class[T]

	valueEncoder  valueEncoder[T]
	valueEncoding format.Encoding
	hasDictionary bool
	fallback      bool
	closed        bool

	expectedRows             int64
	numRows                  int64
	totalBytesWritten        int64
	numBufferedValues        int64
	numBufferedEncodedValues int64

	// Raw level sinks accumulated since the last page cut.
	defLevels []int16
	repLevels []int16

	// Reusable buffers: the RLE form of one level chunk with its length
	// prefix, the assembled uncompressed page, and the compressed page.
	levels       []byte
	uncompressed []byte
	compressed   []byte

	// Pages cut while the dictionary is active are held back so the
	// dictionary page can precede them in the output stream.
	deferredPages []DataPage

	pageStatistics  *statistics[T]
	chunkStatistics *statistics[T]
}

func newWriter[T primitive](class *class[T], descr *ColumnDescriptor, sink PageWriter, metadata ChunkMetadataBuilder, expectedRows int64, config *WriterConfig, encoding format.Encoding, hasDictionary bool) (ColumnWriter, error) {
	w := &Writer[T]{
		descr:         descr,
		sink:          sink,
		metadata:      metadata,
		config:        config,
		class:         class,
		valueEncoding: encoding,
		hasDictionary: hasDictionary,
		expectedRows:  expectedRows,
	}

	if hasDictionary {
		switch encoding {
		case format.PlainDictionary, format.RLEDictionary:
		default:
			return nil, fmt.Errorf("dictionary index encoding not implemented: %s", encoding)
		}
		w.valueEncoder = newDictEncoder(class)
	} else {
		if encoding != format.Plain {
			return nil, fmt.Errorf("value encoding not implemented: %s", encoding)
		}
		w.valueEncoder = class.newPlainEncoder()
	}

	if config.StatisticsEnabledOf(descr.Path) {
		w.pageStatistics = newStatistics(class)
		w.chunkStatistics = newStatistics(class)
	}
	return w, nil
}

func (w *Writer[T]) Descriptor() *ColumnDescriptor { return w.descr }

func (w *Writer[T]) Encoding() format.Encoding { return w.valueEncoding }

func (w *Writer[T]) NumRows() int64 { return w.numRows }

func (w *Writer[T]) TotalBytesWritten() int64 { return w.totalBytesWritten }

// WriteBatch writes a batch of values with their levels. For nullable
// columns the batch size is the number of definition levels and values
// carries one entry per level equal to the maximum definition level; for
// required columns the levels may be nil and the batch size is len(values).
//
// The batch is split into mini-batches so page size checks run at bounded
// intervals regardless of the batch size.
func (w *Writer[T]) WriteBatch(values []T, defLevels, repLevels []int16) error {
	numValues, err := w.checkBatch(len(values), defLevels, repLevels)
	if err != nil {
		return err
	}

	batchSize := w.config.WriteBatchSize
	valueOffset := 0
	for offset := 0; offset < numValues; offset += batchSize {
		n := batchSize
		if remain := numValues - offset; n > remain {
			n = remain
		}
		written, err := w.writeMiniBatch(n, sliceLevels(defLevels, offset, n), sliceLevels(repLevels, offset, n), values[valueOffset:])
		if err != nil {
			return err
		}
		valueOffset += written
	}
	return nil
}

// WriteBatchSpaced writes a batch of values with their levels and a validity
// bitmap; bit i of validBits, counted from offset, tells whether slot i of
// the window holds a value. The values slice is dense: it carries only the
// non-null slots. For columns without definition levels the bitmap is not
// consulted and the batch is written like a dense one.
func (w *Writer[T]) WriteBatchSpaced(values []T, defLevels, repLevels []int16, validBits []byte, offset int64) error {
	numValues, err := w.checkBatch(len(values), defLevels, repLevels)
	if err != nil {
		return err
	}

	batchSize := w.config.WriteBatchSize
	valueOffset := 0
	for levelOffset := 0; levelOffset < numValues; levelOffset += batchSize {
		n := batchSize
		if remain := numValues - levelOffset; n > remain {
			n = remain
		}
		written, err := w.writeMiniBatchSpaced(n, sliceLevels(defLevels, levelOffset, n), sliceLevels(repLevels, levelOffset, n), validBits, offset+int64(levelOffset), values[valueOffset:])
		if err != nil {
			return err
		}
		valueOffset += written
	}
	return nil
}

// Close emits the dictionary page when one is pending, flushes the remaining
// buffered values and deferred pages, hands the chunk statistics to the
// metadata builder, closes the sink, and verifies the row count.
func (w *Writer[T]) Close() (int64, error) {
	if w.closed {
		return w.totalBytesWritten, fmt.Errorf("column chunk writer was already closed")
	}
	w.closed = true

	if w.hasDictionary && !w.fallback {
		if err := w.writeDictionaryPage(); err != nil {
			return w.totalBytesWritten, err
		}
	}
	if err := w.flushBufferedDataPages(); err != nil {
		return w.totalBytesWritten, err
	}

	if w.chunkStatistics != nil && w.metadata != nil {
		w.metadata.SetStatistics(w.chunkStatistics.encode())
	}
	if err := w.sink.Close(w.hasDictionary, w.fallback); err != nil {
		return w.totalBytesWritten, err
	}

	if w.numRows != w.expectedRows {
		return w.totalBytesWritten, fmt.Errorf("wrote %d rows in the column chunk, expected %d", w.numRows, w.expectedRows)
	}
	return w.totalBytesWritten, nil
}

func (w *Writer[T]) checkBatch(numValues int, defLevels, repLevels []int16) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("writing to a closed column chunk writer")
	}
	if w.descr.nullable() {
		numValues = len(defLevels)
	} else if defLevels != nil {
		return 0, fmt.Errorf("column %q is required but definition levels were given", w.descr.Path)
	}
	if w.descr.repeated() {
		if len(repLevels) != numValues {
			return 0, fmt.Errorf("column %q needs %d repetition levels but %d were given", w.descr.Path, numValues, len(repLevels))
		}
	} else if repLevels != nil {
		return 0, fmt.Errorf("column %q is not repeated but repetition levels were given", w.descr.Path)
	}
	return numValues, nil
}

// writeLevels appends the raw levels of a mini-batch to the level sinks,
// derives the number of values to encode from the definition levels, and
// accounts for the rows started by the repetition levels.
func (w *Writer[T]) writeLevels(numValues int, defLevels, repLevels []int16) (int, error) {
	valuesToWrite := 0
	if w.descr.nullable() {
		for _, d := range defLevels {
			if d == w.descr.MaxDefinitionLevel {
				valuesToWrite++
			}
		}
		w.defLevels = append(w.defLevels, defLevels...)
	} else {
		valuesToWrite = numValues
	}

	if w.descr.repeated() {
		for _, r := range repLevels {
			if r == 0 {
				w.numRows++
			}
		}
		w.repLevels = append(w.repLevels, repLevels...)
	} else {
		w.numRows += int64(numValues)
	}

	if w.numRows > w.expectedRows {
		return valuesToWrite, fmt.Errorf("wrote more rows in the column chunk than expected (rows=%d, expected=%d)", w.numRows, w.expectedRows)
	}
	return valuesToWrite, nil
}

func (w *Writer[T]) writeMiniBatch(numValues int, defLevels, repLevels []int16, values []T) (int, error) {
	valuesToWrite, err := w.writeLevels(numValues, defLevels, repLevels)
	if err != nil {
		return 0, err
	}
	if valuesToWrite > len(values) {
		return 0, fmt.Errorf("column %q needs %d values but %d were given", w.descr.Path, valuesToWrite, len(values))
	}

	batch := values[:valuesToWrite]
	w.valueEncoder.put(batch)
	if w.pageStatistics != nil {
		w.pageStatistics.update(batch, int64(numValues-valuesToWrite))
	}

	return valuesToWrite, w.commitMiniBatch(numValues, valuesToWrite)
}

func (w *Writer[T]) writeMiniBatchSpaced(numValues int, defLevels, repLevels []int16, validBits []byte, offset int64, values []T) (int, error) {
	if !w.descr.nullable() {
		// Without definition levels every slot holds a value; the write
		// degrades to a dense one and the bitmap is not consulted.
		return w.writeMiniBatch(numValues, defLevels, repLevels, values)
	}

	valuesToWrite, err := w.writeLevels(numValues, defLevels, repLevels)
	if err != nil {
		return 0, err
	}

	// The bitmap tells how many dense values the window consumes.
	consumed := countSetBits(validBits, offset, int64(numValues))
	if consumed > len(values) {
		return 0, fmt.Errorf("column %q needs %d values but %d were given", w.descr.Path, consumed, len(values))
	}

	batch := values[:consumed]
	w.valueEncoder.putSpaced(batch, validBits, offset)
	if w.pageStatistics != nil {
		w.pageStatistics.updateSpaced(batch, validBits, offset, int64(numValues), int64(numValues-valuesToWrite))
	}

	return consumed, w.commitMiniBatch(numValues, valuesToWrite)
}

func (w *Writer[T]) commitMiniBatch(numValues, valuesToWrite int) error {
	w.numBufferedValues += int64(numValues)
	w.numBufferedEncodedValues += int64(valuesToWrite)

	if w.valueEncoder.estimatedDataEncodedSize() >= w.config.DataPageSize {
		if err := w.addDataPage(); err != nil {
			return err
		}
	}
	if w.hasDictionary && !w.fallback {
		if err := w.checkDictionarySizeLimit(); err != nil {
			return err
		}
	}
	return nil
}

// addDataPage cuts the current page: it flushes the value encoder, encodes
// both level sinks, concatenates the chunks into the uncompressed page
// buffer, compresses when the sink asks for it, and either hands the page to
// the sink or defers it while the dictionary is active.
func (w *Writer[T]) addDataPage() error {
	values, err := w.valueEncoder.flushValues()
	if err != nil {
		return err
	}

	w.uncompressed = w.uncompressed[:0]
	if w.descr.repeated() {
		chunk, err := w.encodeLevels(w.repLevels, w.descr.MaxRepetitionLevel)
		if err != nil {
			return err
		}
		w.uncompressed = append(w.uncompressed, chunk...)
	}
	if w.descr.nullable() {
		chunk, err := w.encodeLevels(w.defLevels, w.descr.MaxDefinitionLevel)
		if err != nil {
			return err
		}
		w.uncompressed = append(w.uncompressed, chunk...)
	}
	w.uncompressed = append(w.uncompressed, values...)
	uncompressedSize := len(w.uncompressed)

	page := DataPage{
		NumValues:               int32(w.numBufferedValues),
		Encoding:                w.valueEncoding,
		DefinitionLevelEncoding: format.RLE,
		RepetitionLevelEncoding: format.RLE,
		UncompressedSize:        int64(uncompressedSize),
	}
	if w.pageStatistics != nil {
		page.Statistics = makeStatistics(w.pageStatistics.encode())
		page.HasStatistics = true
		w.chunkStatistics.merge(w.pageStatistics)
		w.pageStatistics.reset()
	}

	data := w.uncompressed
	if w.sink.HasCompressor() {
		if w.compressed, err = w.sink.Compress(w.compressed[:0], w.uncompressed); err != nil {
			return err
		}
		data = w.compressed
	}

	if w.hasDictionary && !w.fallback {
		// The reusable buffers will be overwritten by the next page, deferred
		// pages need their own copy.
		page.Data = append([]byte(nil), data...)
		w.deferredPages = append(w.deferredPages, page)
	} else {
		page.Data = data
		n, err := w.sink.WriteDataPage(page)
		if err != nil {
			return err
		}
		w.totalBytesWritten += n
	}

	w.defLevels = w.defLevels[:0]
	w.repLevels = w.repLevels[:0]
	w.numBufferedValues = 0
	w.numBufferedEncodedValues = 0
	return nil
}

// encodeLevels produces one level chunk in the reusable buffer: 4 bytes of
// little-endian encoded length followed by the RLE stream.
func (w *Writer[T]) encodeLevels(levels []int16, maxLevel int16) ([]byte, error) {
	size, err := rle.MaxBufferSize(format.RLE, maxLevel, len(levels))
	if err != nil {
		return nil, err
	}
	w.levels = resizeBytes(w.levels, 4+size)

	enc, err := rle.NewLevelEncoder(format.RLE, maxLevel, len(levels), w.levels[4:])
	if err != nil {
		return nil, err
	}
	if n := enc.Encode(levels); n != len(levels) {
		return nil, fmt.Errorf("level encoder consumed %d levels out of %d despite a buffer of max size", n, len(levels))
	}
	binary.LittleEndian.PutUint32(w.levels[:4], uint32(enc.Len()))
	return w.levels[:4+enc.Len()], nil
}

// checkDictionarySizeLimit triggers the one-way fallback to plain encoding
// once the dictionary payload crosses the configured limit: the dictionary
// page is written, the deferred pages drain in FIFO order, and a fresh plain
// encoder takes over.
func (w *Writer[T]) checkDictionarySizeLimit() error {
	dict := w.valueEncoder.(*dictEncoder[T])
	if dict.dictEncodedSize() < w.config.DictionaryPageSizeLimit {
		return nil
	}

	if err := w.writeDictionaryPage(); err != nil {
		return err
	}
	if err := w.flushBufferedDataPages(); err != nil {
		return err
	}
	w.fallback = true
	w.valueEncoder = w.class.newPlainEncoder()
	w.valueEncoding = format.Plain
	return nil
}

func (w *Writer[T]) writeDictionaryPage() error {
	dict := w.valueEncoder.(*dictEncoder[T])
	buffer := make([]byte, 0, dict.dictEncodedSize())
	buffer = dict.writeDict(buffer)
	numEntries := dict.numEntries()
	dict.release()

	n, err := w.sink.WriteDictionaryPage(DictionaryPage{
		Data:      buffer,
		NumValues: int32(numEntries),
		Encoding:  w.config.DictionaryPageEncoding,
	})
	if err != nil {
		return err
	}
	w.totalBytesWritten += n
	return nil
}

// flushBufferedDataPages cuts a final page from the buffered values and
// drains the deferred queue in FIFO order.
func (w *Writer[T]) flushBufferedDataPages() error {
	if w.numBufferedValues > 0 {
		if err := w.addDataPage(); err != nil {
			return err
		}
	}
	for i := range w.deferredPages {
		n, err := w.sink.WriteDataPage(w.deferredPages[i])
		if err != nil {
			return err
		}
		w.totalBytesWritten += n
	}
	w.deferredPages = w.deferredPages[:0]
	return nil
}

func makeStatistics(s EncodedStatistics) format.Statistics {
	return format.Statistics{
		Min:       s.Min,
		Max:       s.Max,
		MinValue:  s.Min,
		MaxValue:  s.Max,
		NullCount: s.NullCount,
	}
}

func sliceLevels(levels []int16, offset, length int) []int16 {
	if levels == nil {
		return nil
	}
	return levels[offset : offset+length]
}

func countSetBits(bits []byte, offset, length int64) int {
	n := 0
	for i := int64(0); i < length; i++ {
		if bitIsSet(bits, offset+i) {
			n++
		}
	}
	return n
}

func resizeBytes(buf []byte, size int) []byte {
	if cap(buf) < size {
		return make([]byte, size)
	}
	return buf[:size]
}
