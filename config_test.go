package columnchunk

import (
	"testing"

	"github.com/segmentio/columnchunk/format"
)

func TestDefaultWriterConfig(t *testing.T) {
	config := DefaultWriterConfig()
	if err := config.Validate(); err != nil {
		t.Fatal(err)
	}
	if config.DataPageSize != DefaultDataPageSize {
		t.Errorf("wrong default data page size: %d", config.DataPageSize)
	}
	if !config.DictionaryEnabled {
		t.Error("dictionary encoding is not enabled by default")
	}
	if config.DictionaryIndexEncoding != format.PlainDictionary {
		t.Errorf("wrong default dictionary index encoding: %s", config.DictionaryIndexEncoding)
	}
	if config.Compression == nil {
		t.Error("no default compression codec")
	}
}

func TestWriterConfigColumnOverrides(t *testing.T) {
	path := ColumnPath{"a", "b"}
	other := ColumnPath{"a", "c"}

	config := DefaultWriterConfig()
	config.Apply(
		EncodingFor(path, format.Plain),
		DictionaryFor(path, false),
		StatisticsFor(path, false),
	)

	if config.EncodingOf(path) != format.Plain {
		t.Errorf("wrong encoding for %q: %s", path, config.EncodingOf(path))
	}
	if config.DictionaryEnabledOf(path) {
		t.Errorf("dictionary still enabled for %q", path)
	}
	if config.StatisticsEnabledOf(path) {
		t.Errorf("statistics still enabled for %q", path)
	}

	if !config.DictionaryEnabledOf(other) {
		t.Errorf("dictionary disabled for %q, only %q was overridden", other, path)
	}
	if !config.StatisticsEnabledOf(other) {
		t.Errorf("statistics disabled for %q, only %q was overridden", other, path)
	}
}

func TestWriterConfigValidate(t *testing.T) {
	config := DefaultWriterConfig()
	config.Apply(DataPageSize(-1))
	if err := config.Validate(); err == nil {
		t.Error("a negative data page size passed validation")
	}

	config = DefaultWriterConfig()
	config.Apply(DictionaryPageSizeLimit(0))
	if err := config.Validate(); err != nil {
		t.Errorf("a dictionary page size limit of zero failed validation: %s", err)
	}

	config = DefaultWriterConfig()
	config.Compression = nil
	if err := config.Validate(); err == nil {
		t.Error("a nil compression codec passed validation")
	}
}
