package models

// ClassifierRequest is what the external aspect-sentiment service
// accepts: one sentence plus the comma-joined aspect list.
type ClassifierRequest struct {
	Sentence string `json:"sentence"`
	Aspects  string `json:"aspects"`
}

// The service does not commit to a response schema: the payload may be
// a bare string, an array, or an object carrying the text under
// different field names. Responses are therefore decoded into an
// untyped value and normalized by the response parser.
