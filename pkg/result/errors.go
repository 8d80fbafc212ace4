package result

import "fmt"

// ParseError reports a file whose contents could not be decoded as a
// result document. The file stays out of the ledger and is retried on
// the next run.
type ParseError struct {
	File string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.File, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// MalformedTitleError reports a document title that does not match the
// naming contract described in title.go.
type MalformedTitleError struct {
	Title  string
	Reason string
}

func (e *MalformedTitleError) Error() string {
	return fmt.Sprintf("malformed title %q: %s", e.Title, e.Reason)
}

// IncompleteDocumentError reports a document that parsed but is missing
// data the extractor needs, such as the system descriptor for the run.
// It aborts that document only; other documents in the batch continue.
type IncompleteDocumentError struct {
	Title  string
	Reason string
}

func (e *IncompleteDocumentError) Error() string {
	return fmt.Sprintf("incomplete document %q: %s", e.Title, e.Reason)
}
