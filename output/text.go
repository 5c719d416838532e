package output

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultWidth is the column every label is padded to.
const DefaultWidth = 5

// FormatCell renders one result line without the trailing newline: every label left-justified
// to width and followed by a space, then ": " and the measure.
func FormatCell(labels []string, measure, width int) string {
	var sb strings.Builder
	formatCell(&sb, labels, measure, width)
	return sb.String()
}

func formatCell(sb *strings.Builder, labels []string, measure, width int) {
	for _, l := range labels {
		sb.WriteString(l)
		for i := len(l); i < width; i++ {
			sb.WriteByte(' ')
		}
		sb.WriteByte(' ')
	}
	sb.WriteString(": ")
	sb.WriteString(strconv.Itoa(measure))
}

// TextWriter writes result lines to one or more destinations, typically the console and a
// result file. Output is buffered until Flush.
type TextWriter struct {
	width int
	outs  []*bufio.Writer
	line  strings.Builder
	lines int
}

func NewTextWriter(width int, outs ...io.Writer) *TextWriter {
	if width <= 0 {
		width = DefaultWidth
	}
	w := &TextWriter{width: width}
	for _, o := range outs {
		w.outs = append(w.outs, bufio.NewWriter(o))
	}
	return w
}

func (w *TextWriter) Write(labels []string, measure int) error {
	w.line.Reset()
	formatCell(&w.line, labels, measure, w.width)
	w.line.WriteByte('\n')
	for _, o := range w.outs {
		if _, err := o.WriteString(w.line.String()); err != nil {
			return fmt.Errorf("write result line: %w", err)
		}
	}
	w.lines++
	return nil
}

// Lines is the number of cells written so far.
func (w *TextWriter) Lines() int {
	return w.lines
}

func (w *TextWriter) Flush() error {
	var errs []error
	for _, o := range w.outs {
		errs = append(errs, o.Flush())
	}
	return errors.Join(errs...)
}
