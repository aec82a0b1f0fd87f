package dispatch

// Result is the marker capability a task's return value may satisfy.
// The dispatcher recognizes results only through this interface; it
// never constructs or mutates domain result values.
type Result interface {
	DispatchResult()
}

type noResult struct{}

func (noResult) DispatchResult() {}

func (noResult) String() string { return "<no result>" }

// NoResult is the explicit marker returned for a job in which no task
// produced a Result-capable value. It is a value, not a failure.
var NoResult Result = noResult{}

// StringResult wraps a plain string as a Result-capable value.
type StringResult string

// DispatchResult marks StringResult as Result-capable.
func (StringResult) DispatchResult() {}

// Extractor picks the single meaningful outcome of a completed job.
type Extractor func(*Job) Result

// FirstResult is the default extractor: it scans the normal task list in
// order, then the forgiveness task list in order, and returns the first
// stored return value that satisfies Result. If none match it returns
// NoResult.
func FirstResult(j *Job) Result {
	for _, t := range j.NormalTasks() {
		if r, ok := t.Result().(Result); ok {
			return r
		}
	}
	for _, t := range j.ForgivenessTasks() {
		if r, ok := t.Result().(Result); ok {
			return r
		}
	}
	return NoResult
}
