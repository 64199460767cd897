package columnchunk

import (
	"fmt"
	"strings"

	"github.com/segmentio/columnchunk/compress"
	"github.com/segmentio/columnchunk/compress/uncompressed"
	"github.com/segmentio/columnchunk/format"
)

const (
	DefaultDataPageSize            = 1024 * 1024
	DefaultDictionaryPageSizeLimit = 1024 * 1024
	DefaultWriteBatchSize          = 1024
)

// The WriterConfig type carries the configuration options of column chunk
// writers.
//
// WriterConfig implements the WriterOption interface so it can be used
// directly as argument to the NewColumnWriter function when needed, for
// example:
//
//	writer, err := columnchunk.NewColumnWriter(descriptor, sink, nil, numRows,
//		&columnchunk.WriterConfig{
//			DataPageSize: 64 * 1024,
//		},
//	)
type WriterConfig struct {
	// Threshold on the value encoder's estimated size above which the
	// current page is cut.
	DataPageSize int

	// Threshold on the dictionary payload size above which the writer falls
	// back to plain encoding. A limit of zero forces the fallback on the
	// first value written.
	DictionaryPageSizeLimit int

	// Cap on the size of the mini-batches the writer splits its input into,
	// bounding how far the page size can overshoot DataPageSize.
	WriteBatchSize int

	// Default value encoding for columns which have no per-column override
	// and no dictionary.
	Encoding format.Encoding

	// Whether columns use dictionary encoding by default.
	DictionaryEnabled bool

	// Encoding recorded on the dictionary page itself.
	DictionaryPageEncoding format.Encoding

	// Encoding used for the dictionary index streams of data pages.
	DictionaryIndexEncoding format.Encoding

	// Whether min/max/null statistics are tracked by default.
	StatisticsEnabled bool

	// Compression codec carried by the configuration and checked by
	// Validate. The column writer does not pass it to its sink; a
	// SerializedPageWriter compresses with the codec given to
	// NewSerializedPageWriter.
	Compression compress.Codec

	columnEncoding   map[string]format.Encoding
	columnDictionary map[string]bool
	columnStatistics map[string]bool
}

// DefaultWriterConfig returns a new WriterConfig with default settings.
func DefaultWriterConfig() *WriterConfig {
	return &WriterConfig{
		DataPageSize:            DefaultDataPageSize,
		DictionaryPageSizeLimit: DefaultDictionaryPageSizeLimit,
		WriteBatchSize:          DefaultWriteBatchSize,
		Encoding:                format.Plain,
		DictionaryEnabled:       true,
		DictionaryPageEncoding:  format.PlainDictionary,
		DictionaryIndexEncoding: format.PlainDictionary,
		StatisticsEnabled:       true,
		Compression:             new(uncompressed.Codec),
	}
}

// Apply applies the given list of options to c.
func (c *WriterConfig) Apply(options ...WriterOption) {
	for _, opt := range options {
		opt.ConfigureWriter(c)
	}
}

// ConfigureWriter applies configuration options from c to config.
func (c *WriterConfig) ConfigureWriter(config *WriterConfig) {
	*config = WriterConfig{
		DataPageSize:            coalesceInt(c.DataPageSize, config.DataPageSize),
		DictionaryPageSizeLimit: coalesceInt(c.DictionaryPageSizeLimit, config.DictionaryPageSizeLimit),
		WriteBatchSize:          coalesceInt(c.WriteBatchSize, config.WriteBatchSize),
		Encoding:                c.Encoding,
		DictionaryEnabled:       c.DictionaryEnabled || config.DictionaryEnabled,
		DictionaryPageEncoding:  coalesceEncoding(c.DictionaryPageEncoding, config.DictionaryPageEncoding),
		DictionaryIndexEncoding: coalesceEncoding(c.DictionaryIndexEncoding, config.DictionaryIndexEncoding),
		StatisticsEnabled:       c.StatisticsEnabled || config.StatisticsEnabled,
		Compression:             coalesceCodec(c.Compression, config.Compression),
		columnEncoding:          coalesceEncodingMap(c.columnEncoding, config.columnEncoding),
		columnDictionary:        coalesceBoolMap(c.columnDictionary, config.columnDictionary),
		columnStatistics:        coalesceBoolMap(c.columnStatistics, config.columnStatistics),
	}
}

// Validate returns a non-nil error if the configuration of c is invalid.
func (c *WriterConfig) Validate() error {
	const baseName = "columnchunk.(*WriterConfig)."
	return errorInvalidConfiguration(
		validatePositiveInt(baseName+"DataPageSize", c.DataPageSize),
		validatePositiveInt(baseName+"WriteBatchSize", c.WriteBatchSize),
		validateNotNegativeInt(baseName+"DictionaryPageSizeLimit", c.DictionaryPageSizeLimit),
		validateNotNil(baseName+"Compression", c.Compression),
	)
}

// EncodingOf returns the value encoding configured for the column at the
// given path.
func (c *WriterConfig) EncodingOf(path ColumnPath) format.Encoding {
	if e, ok := c.columnEncoding[path.String()]; ok {
		return e
	}
	return c.Encoding
}

// DictionaryEnabledOf returns whether dictionary encoding is enabled for the
// column at the given path.
func (c *WriterConfig) DictionaryEnabledOf(path ColumnPath) bool {
	if b, ok := c.columnDictionary[path.String()]; ok {
		return b
	}
	return c.DictionaryEnabled
}

// StatisticsEnabledOf returns whether statistics are tracked for the column
// at the given path.
func (c *WriterConfig) StatisticsEnabledOf(path ColumnPath) bool {
	if b, ok := c.columnStatistics[path.String()]; ok {
		return b
	}
	return c.StatisticsEnabled
}

// WriterOption is an interface implemented by types that carry configuration
// options for column chunk writers.
type WriterOption interface {
	ConfigureWriter(*WriterConfig)
}

// DataPageSize creates a configuration option which sets the page cut
// threshold.
//
// Defaults to 1 MiB.
func DataPageSize(size int) WriterOption {
	return writerOption(func(config *WriterConfig) { config.DataPageSize = size })
}

// DictionaryPageSizeLimit creates a configuration option which sets the
// dictionary payload size above which the writer falls back to plain
// encoding.
//
// Defaults to 1 MiB.
func DictionaryPageSizeLimit(size int) WriterOption {
	return writerOption(func(config *WriterConfig) { config.DictionaryPageSizeLimit = size })
}

// WriteBatchSize creates a configuration option which sets the mini-batch
// size used to amortize page size checks.
//
// Defaults to 1024.
func WriteBatchSize(count int) WriterOption {
	return writerOption(func(config *WriterConfig) { config.WriteBatchSize = count })
}

// Encoding creates a configuration option which sets the default value
// encoding of columns with no dictionary.
//
// Defaults to PLAIN.
func Encoding(encoding format.Encoding) WriterOption {
	return writerOption(func(config *WriterConfig) { config.Encoding = encoding })
}

// EncodingFor creates a configuration option which overrides the value
// encoding of the column at the given path.
func EncodingFor(path ColumnPath, encoding format.Encoding) WriterOption {
	return writerOption(func(config *WriterConfig) {
		if config.columnEncoding == nil {
			config.columnEncoding = make(map[string]format.Encoding)
		}
		config.columnEncoding[path.String()] = encoding
	})
}

// EnableDictionary creates a configuration option which toggles dictionary
// encoding for all columns.
//
// Defaults to true.
func EnableDictionary(enabled bool) WriterOption {
	return writerOption(func(config *WriterConfig) { config.DictionaryEnabled = enabled })
}

// DictionaryFor creates a configuration option which toggles dictionary
// encoding for the column at the given path.
func DictionaryFor(path ColumnPath, enabled bool) WriterOption {
	return writerOption(func(config *WriterConfig) {
		if config.columnDictionary == nil {
			config.columnDictionary = make(map[string]bool)
		}
		config.columnDictionary[path.String()] = enabled
	})
}

// DictionaryPageEncoding creates a configuration option which sets the
// encoding recorded on the dictionary page.
//
// Defaults to PLAIN_DICTIONARY.
func DictionaryPageEncoding(encoding format.Encoding) WriterOption {
	return writerOption(func(config *WriterConfig) { config.DictionaryPageEncoding = encoding })
}

// DictionaryIndexEncoding creates a configuration option which sets the
// encoding of dictionary index streams in data pages.
//
// Defaults to PLAIN_DICTIONARY.
func DictionaryIndexEncoding(encoding format.Encoding) WriterOption {
	return writerOption(func(config *WriterConfig) { config.DictionaryIndexEncoding = encoding })
}

// EnableStatistics creates a configuration option which toggles statistics
// for all columns.
//
// Defaults to true.
func EnableStatistics(enabled bool) WriterOption {
	return writerOption(func(config *WriterConfig) { config.StatisticsEnabled = enabled })
}

// StatisticsFor creates a configuration option which toggles statistics for
// the column at the given path.
func StatisticsFor(path ColumnPath, enabled bool) WriterOption {
	return writerOption(func(config *WriterConfig) {
		if config.columnStatistics == nil {
			config.columnStatistics = make(map[string]bool)
		}
		config.columnStatistics[path.String()] = enabled
	})
}

// Compression creates a configuration option which sets the Compression
// field of the configuration. The column writer does not read it; page
// compression is decided by the sink.
//
// Defaults to uncompressed.
func Compression(codec compress.Codec) WriterOption {
	return writerOption(func(config *WriterConfig) { config.Compression = codec })
}

type writerOption func(*WriterConfig)

func (opt writerOption) ConfigureWriter(config *WriterConfig) { opt(config) }

func coalesceInt(i1, i2 int) int {
	if i1 != 0 {
		return i1
	}
	return i2
}

func coalesceEncoding(e1, e2 format.Encoding) format.Encoding {
	if e1 != 0 {
		return e1
	}
	return e2
}

func coalesceCodec(c1, c2 compress.Codec) compress.Codec {
	if c1 != nil {
		return c1
	}
	return c2
}

func coalesceEncodingMap(m1, m2 map[string]format.Encoding) map[string]format.Encoding {
	if m1 != nil {
		return m1
	}
	return m2
}

func coalesceBoolMap(m1, m2 map[string]bool) map[string]bool {
	if m1 != nil {
		return m1
	}
	return m2
}

func validatePositiveInt(optionName string, optionValue int) error {
	if optionValue > 0 {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func validateNotNegativeInt(optionName string, optionValue int) error {
	if optionValue >= 0 {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func validateNotNil(optionName string, optionValue interface{}) error {
	if optionValue != nil {
		return nil
	}
	return errorInvalidOptionValue(optionName, optionValue)
}

func errorInvalidOptionValue(optionName string, optionValue interface{}) error {
	return fmt.Errorf("invalid option value: %s: %v", optionName, optionValue)
}

func errorInvalidConfiguration(reasons ...error) error {
	var err *invalidConfiguration

	for _, reason := range reasons {
		if reason != nil {
			if err == nil {
				err = new(invalidConfiguration)
			}
			err.reasons = append(err.reasons, reason)
		}
	}

	if err != nil {
		return err
	}

	return nil
}

type invalidConfiguration struct {
	reasons []error
}

func (err *invalidConfiguration) Error() string {
	errorMessage := new(strings.Builder)
	for _, reason := range err.reasons {
		errorMessage.WriteString(reason.Error())
		errorMessage.WriteString("\n")
	}
	errorString := errorMessage.String()
	if errorString != "" {
		errorString = errorString[:len(errorString)-1]
	}
	return errorString
}
