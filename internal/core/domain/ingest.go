package domain

// IngestStatus is the terminal state of an ingestion request.
type IngestStatus string

const (
	// IngestStored means the document was extracted, embedded and indexed.
	IngestStored IngestStatus = "stored"

	// IngestSkipped means the file's content hash was already present.
	// This is not a failure, but it must not look like success either.
	IngestSkipped IngestStatus = "skipped"

	// IngestFailed means the ingestion aborted; Reason says why.
	IngestFailed IngestStatus = "failed"
)

// IngestResult reports the outcome of a single ingestion.
type IngestResult struct {
	// Status is the terminal state.
	Status IngestStatus `json:"status"`

	// DocumentID is set when Status is stored, or when skipped
	// (the ID of the already-present document).
	DocumentID string `json:"document_id,omitempty"`

	// Reason is a human-readable explanation for failed or skipped results.
	Reason string `json:"reason,omitempty"`
}

// Stored reports whether the ingestion created a new indexed document.
func (r IngestResult) Stored() bool {
	return r.Status == IngestStored
}
