// Package rag is the retrieval collaborator seam. The router only sees the
// Retriever interface; the embedded chromem store is one implementation.
package rag

import "context"

// Snippet is one retrieved passage with its provenance.
type Snippet struct {
	ID      string  `json:"id"`
	Content string  `json:"content"`
	Source  string  `json:"source"`
	Score   float64 `json:"score"`
}

// Retriever finds the passages most relevant to a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) ([]Snippet, error)
}
