package reconcile

// Result is the outcome of processing one item of a batch. Exactly one of
// Value and Err is meaningful.
type Result[T any] struct {
	// Index is the position of the item in the input slice.
	Index int
	// Value is the produced value when Err is nil.
	Value T
	// Err is the failure reason for this item only.
	Err error
}

// OK reports whether the item succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Summary counts the outcomes of a batch.
type Summary struct {
	// Total is the number of items processed.
	Total int `json:"total"`
	// Succeeded counts items without an error.
	Succeeded int `json:"succeeded"`
	// Failed counts items with an error.
	Failed int `json:"failed"`
}

// Summarize counts successes and failures in results.
func Summarize[T any](results []Result[T]) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		if r.OK() {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
