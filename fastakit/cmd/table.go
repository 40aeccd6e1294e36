package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"
)

var lengthTableSchema = arrow.NewSchema([]arrow.Field{
	{Name: "id", Type: arrow.BinaryTypes.String},
	{Name: "length", Type: arrow.PrimitiveTypes.Int64},
}, nil)

// writeLengthTable writes one row per record to an Arrow IPC file.
func writeLengthTable(path string, ids []string, lengths []int) error {
	if len(ids) != len(lengths) {
		return errors.New("length table: id and length counts differ")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create table dir: %w", err)
		}
	}

	mem := memory.NewGoAllocator()
	b := array.NewRecordBuilder(mem, lengthTableSchema)
	defer b.Release()

	idb := b.Field(0).(*array.StringBuilder)
	lenb := b.Field(1).(*array.Int64Builder)
	idb.Reserve(len(ids))
	lenb.Reserve(len(lengths))
	for i := range ids {
		idb.Append(ids[i])
		lenb.Append(int64(lengths[i]))
	}
	rec := b.NewRecord()
	defer rec.Release()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create table: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	w, err := ipc.NewFileWriter(f, ipc.WithSchema(lengthTableSchema), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("open table writer: %w", err)
	}
	if err := w.Write(rec); err != nil {
		_ = w.Close()
		return fmt.Errorf("write table: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("close table: %w", err)
	}
	return f.Close()
}
