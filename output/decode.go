package output

import (
	"github.com/JieJackyZhang/Pattern-Recognition/cube"
)

// Decoder turns a cell of working-order codes into labels. *dataset.Dataset implements it.
type Decoder interface {
	Decode(cell []int32) []string
}

// LabelSink receives decoded cells. The labels slice is not retained by the caller.
type LabelSink interface {
	Write(labels []string, measure int) error
}

// Decode adapts a LabelSink to the engine's code-level cube.Sink.
func Decode(dec Decoder, sink LabelSink) cube.Sink {
	return cube.SinkFunc(func(cell []int32, measure int) error {
		return sink.Write(dec.Decode(cell), measure)
	})
}

type multi []LabelSink

func (m multi) Write(labels []string, measure int) error {
	for _, s := range m {
		if err := s.Write(labels, measure); err != nil {
			return err
		}
	}
	return nil
}

// Multi writes every cell to each sink in turn, stopping at the first error.
func Multi(sinks ...LabelSink) LabelSink {
	return multi(sinks)
}
