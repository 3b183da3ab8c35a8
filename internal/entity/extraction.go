package entity

// ExtractionStatus is the outcome of extracting a single post.
type ExtractionStatus string

const (
	ExtractionSuccess  ExtractionStatus = "success"
	ExtractionNotFound ExtractionStatus = "not_found"
	ExtractionTimeout  ExtractionStatus = "timeout"
	ExtractionFailed   ExtractionStatus = "failed"
)

// ExtractionResult carries either a Record (Status == ExtractionSuccess) or
// the error that stopped the extraction.
type ExtractionResult struct {
	Ref    PostRef
	Status ExtractionStatus
	Record *PostRecord
	Err    error
}

// PostFailure records a post that was skipped during a run.
type PostFailure struct {
	SequenceNumber string
	Permalink      string
	Status         ExtractionStatus
	Reason         string
}
