package cube

// Sink receives the iceberg cells of a computation. cell holds one code per dimension in
// the engine's working order, 0 standing for the wildcard. The slice is reused for the next
// cell and must be copied if retained. A non-nil error aborts the computation.
type Sink interface {
	Emit(cell []int32, measure int) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(cell []int32, measure int) error

func (f SinkFunc) Emit(cell []int32, measure int) error {
	return f(cell, measure)
}
