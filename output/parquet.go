package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// DimensionsKey is the parquet key/value metadata entry holding the comma-separated
// dimension names, in the order of Row.Values.
const DimensionsKey = "starcube.dimensions"

// Row is one cell of a parquet result file.
type Row struct {
	Values  []string `parquet:"values"`
	Measure int64    `parquet:"measure"`
}

// ParquetWriter writes cells as parquet rows, batching them in memory.
type ParquetWriter struct {
	w     *parquet.GenericWriter[Row]
	batch []Row
	rows  int
}

const parquetBatch = 1024

func NewParquetWriter(out io.Writer, names []string) *ParquetWriter {
	return &ParquetWriter{
		w: parquet.NewGenericWriter[Row](out,
			parquet.KeyValueMetadata(DimensionsKey, strings.Join(names, ",")),
		),
		batch: make([]Row, 0, parquetBatch),
	}
}

func (p *ParquetWriter) Write(labels []string, measure int) error {
	p.batch = append(p.batch, Row{
		Values:  append([]string(nil), labels...),
		Measure: int64(measure),
	})
	if len(p.batch) == cap(p.batch) {
		return p.flushBatch()
	}
	return nil
}

func (p *ParquetWriter) flushBatch() error {
	if len(p.batch) == 0 {
		return nil
	}
	n, err := p.w.Write(p.batch)
	p.rows += n
	p.batch = p.batch[:0]
	if err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	return nil
}

// Rows is the number of rows handed to the parquet writer so far.
func (p *ParquetWriter) Rows() int {
	return p.rows + len(p.batch)
}

// Close writes the pending rows and the file footer. It does not close the underlying writer.
func (p *ParquetWriter) Close() error {
	if err := p.flushBatch(); err != nil {
		return err
	}
	if err := p.w.Close(); err != nil {
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return nil
}
