package nl2sql

import "context"

type Request struct {
	NaturalLanguage string `json:"natural_language"`
}

type Result struct {
	RawResponse string `json:"raw_response"`
	Provider    string `json:"provider"`
	Model       string `json:"model"`
}

// Translator produces free-form model text for a natural-language query.
// The response is untrusted; callers must run it through ExtractSQL before use.
type Translator interface {
	Translate(ctx context.Context, req Request) (Result, error)
}
