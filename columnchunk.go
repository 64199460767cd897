// Package columnchunk implements the write path of a parquet column chunk:
// it turns batches of typed values and their repetition/definition levels
// into a sequence of v1 data pages, optionally preceded by a dictionary
// page, and hands them to a page sink.
//
// A typical use binds a typed writer to a column descriptor and a sink:
//
//	writer, err := columnchunk.NewColumnWriter(descriptor, sink, nil, numRows)
//	if err != nil {
//		...
//	}
//
//	int32Writer := writer.(*columnchunk.Int32Writer)
//	if err := int32Writer.WriteBatch(values, defLevels, repLevels); err != nil {
//		...
//	}
//
//	if _, err := int32Writer.Close(); err != nil {
//		...
//	}
//
// The writer is single-threaded and append-only; it belongs to exactly one
// column chunk and accepts exactly one Close.
package columnchunk

import (
	"strings"

	"github.com/segmentio/columnchunk/format"
)

// ColumnPath is the dotted path of a column in its schema.
type ColumnPath []string

func (path ColumnPath) String() string {
	return strings.Join(path, ".")
}

// ColumnDescriptor describes the leaf column a writer is bound to. The
// descriptor is immutable for the lifetime of the writer.
type ColumnDescriptor struct {
	// Physical type of the column values.
	PhysicalType format.Type

	// Size in bytes of FIXED_LEN_BYTE_ARRAY values; zero for the other
	// physical types.
	TypeLength int

	// Path of the column in the schema.
	Path ColumnPath

	// Maximum definition level; zero means the column is required and
	// carries no definition levels.
	MaxDefinitionLevel int16

	// Maximum repetition level; zero means the column is not repeated and
	// carries no repetition levels.
	MaxRepetitionLevel int16
}

func (d *ColumnDescriptor) nullable() bool { return d.MaxDefinitionLevel > 0 }

func (d *ColumnDescriptor) repeated() bool { return d.MaxRepetitionLevel > 0 }
