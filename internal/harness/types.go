package harness

// StepRecord is what one step observed. Only facts that are identical
// across runs are recorded: identities, counts, links and error codes,
// never etags or blank node labels.
type StepRecord struct {
	Step     int               `json:"step"`
	Op       string            `json:"op"`
	Target   string            `json:"target,omitempty"`
	Error    string            `json:"error,omitempty"`
	Created  string            `json:"created,omitempty"`
	Items    []string          `json:"items,omitempty"`
	Total    *int              `json:"total_items,omitempty"`
	Contains []string          `json:"contains,omitempty"`
	Links    map[string]string `json:"links,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace holds one record per step, in order.
	Trace []StepRecord `json:"trace"`

	// Errors contains failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{Pass: true, Trace: []StepRecord{}, Errors: []string{}}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
