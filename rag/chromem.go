package rag

import (
	"context"
	"fmt"

	"github.com/philippgille/chromem-go"
	"github.com/rs/xid"
)

const defaultCollection = "banking_docs"

// Document is one indexable passage.
type Document struct {
	ID      string
	Content string
	Source  string
}

// Store is an embedded chromem-backed Retriever. The embedding function is
// injected so tests can run without a network.
type Store struct {
	col *chromem.Collection
}

// NewStore opens (or creates) the banking document collection in the given
// DB. A nil embedding function uses the chromem default.
func NewStore(db *chromem.DB, embed chromem.EmbeddingFunc) (*Store, error) {
	col, err := db.GetOrCreateCollection(defaultCollection, nil, embed)
	if err != nil {
		return nil, fmt.Errorf("open document collection: %w", err)
	}
	return &Store{col: col}, nil
}

// Add indexes the given documents. Documents without an ID get one assigned.
func (s *Store) Add(ctx context.Context, docs ...Document) error {
	for _, d := range docs {
		id := d.ID
		if id == "" {
			id = xid.New().String()
		}
		doc := chromem.Document{
			ID:      id,
			Content: d.Content,
		}
		if d.Source != "" {
			doc.Metadata = map[string]string{"source": d.Source}
		}
		if err := s.col.AddDocument(ctx, doc); err != nil {
			return fmt.Errorf("index document %s: %w", id, err)
		}
	}
	return nil
}

// Len returns the number of indexed documents.
func (s *Store) Len() int {
	return s.col.Count()
}

// Retrieve returns up to topK passages ranked by similarity. An empty index
// yields no snippets, not an error.
func (s *Store) Retrieve(ctx context.Context, query string, topK int) ([]Snippet, error) {
	if n := s.col.Count(); topK > n {
		topK = n
	}
	if topK <= 0 {
		return nil, nil
	}
	results, err := s.col.Query(ctx, query, topK, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	snippets := make([]Snippet, 0, len(results))
	for _, res := range results {
		snippets = append(snippets, Snippet{
			ID:      res.ID,
			Content: res.Content,
			Source:  res.Metadata["source"],
			Score:   float64(res.Similarity),
		})
	}
	return snippets, nil
}
