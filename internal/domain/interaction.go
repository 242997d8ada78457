package domain

// Interaction is one logged route invocation. It carries request metadata
// only; prompt and reply text are never stored.
type Interaction struct {
	PK            string
	SK            string
	ID            string
	Route         string
	CorrelationID string
	Model         string
	Status        string
	ErrorCode     string
	LatencyMillis int64
	CreatedAt     string
	TTL           int64
}
