package kvgate

// ScalarResponse is the result of a scalar key read. Result is nil when the
// key is absent, which is still a successful read. Exactly one of a
// successful shape (Error nil) or a failed shape (Result nil, Error set)
// holds at a time.
type ScalarResponse struct {
	Success bool    `json:"success"`
	Result  *string `json:"result"`
	Error   *string `json:"error"`
}

// FieldResponse is the result of a single hash-field read. Same invariants
// as ScalarResponse with the payload named Value.
type FieldResponse struct {
	Success bool    `json:"success"`
	Value   *string `json:"value"`
	Error   *string `json:"error"`
}

// HashResponse is the result of a full hash read. A non-nil empty Fields map
// is a successful empty result and is distinct from a nil map: both render
// as "OK" in text form but differ in JSON and XML shape.
type HashResponse struct {
	Success bool              `json:"success"`
	Fields  map[string]string `json:"fields"`
	Error   *string           `json:"error"`
}

// OutboundResponse is the reply of an outbound HTTP command. Headers keep
// the last value when a header name repeats.
type OutboundResponse struct {
	Status  int               `json:"status"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// String returns a pointer to s, for filling optional response fields.
func String(s string) *string {
	return &s
}
