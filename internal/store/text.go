package store

import (
	"context"
	"fmt"
	"os"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/standard"
	blevequery "github.com/blevesearch/bleve/v2/search/query"
)

// textIndex is the Bleve index for one collection's text fields.
type textIndex struct {
	index  bleve.Index
	fields []string
}

// textHit is a single text search hit.
type textHit struct {
	ID    string
	Score float64
}

// openTextIndex creates or opens a Bleve index at path for the given fields.
// An existing index is opened and reused; remove the index directory to
// force a rebuild after a mapping change.
func openTextIndex(path string, fields []string) (*textIndex, error) {
	if _, err := os.Stat(path); err == nil {
		index, openErr := bleve.Open(path)
		if openErr != nil {
			return nil, fmt.Errorf("failed to open text index: %w", openErr)
		}
		return &textIndex{index: index, fields: fields}, nil
	}

	im := bleve.NewIndexMapping()
	docMapping := bleve.NewDocumentMapping()
	for _, field := range fields {
		fm := bleve.NewTextFieldMapping()
		// Standard analyzer (lowercase + tokenize, no stemming) so a query
		// like "classic" matches the stored genre "Classic" exactly.
		fm.Analyzer = standard.Name
		docMapping.AddFieldMappingsAt(field, fm)
	}
	im.DefaultMapping = docMapping

	index, err := bleve.New(path, im)
	if err != nil {
		return nil, fmt.Errorf("failed to create text index: %w", err)
	}
	return &textIndex{index: index, fields: fields}, nil
}

// Index indexes a document's text fields by id.
func (t *textIndex) Index(ctx context.Context, id string, fields map[string]string) error {
	return t.index.Index(id, fields)
}

// SearchConjunction runs an AND match across the supplied field queries.
func (t *textIndex) SearchConjunction(ctx context.Context, fieldQueries map[string]string, limit int) ([]*textHit, error) {
	queries := make([]blevequery.Query, 0, len(fieldQueries))
	for field, value := range fieldQueries {
		mq := bleve.NewMatchQuery(value)
		mq.SetField(field)
		queries = append(queries, mq)
	}
	if len(queries) == 0 {
		return nil, nil
	}
	return t.run(bleve.NewConjunctionQuery(queries...), limit)
}

// SearchAny runs an OR match of query against every text field of the collection.
func (t *textIndex) SearchAny(ctx context.Context, query string, limit int) ([]*textHit, error) {
	queries := make([]blevequery.Query, 0, len(t.fields))
	for _, field := range t.fields {
		mq := bleve.NewMatchQuery(query)
		mq.SetField(field)
		queries = append(queries, mq)
	}
	return t.run(bleve.NewDisjunctionQuery(queries...), limit)
}

// SearchField runs a match of value against a single field.
func (t *textIndex) SearchField(ctx context.Context, field, value string, limit int) ([]*textHit, error) {
	mq := bleve.NewMatchQuery(value)
	mq.SetField(field)
	return t.run(mq, limit)
}

func (t *textIndex) run(q blevequery.Query, limit int) ([]*textHit, error) {
	req := bleve.NewSearchRequest(q)
	req.Size = limit
	results, err := t.index.Search(req)
	if err != nil {
		return nil, fmt.Errorf("text search failed: %w", err)
	}
	out := make([]*textHit, len(results.Hits))
	for i, hit := range results.Hits {
		out[i] = &textHit{ID: hit.ID, Score: hit.Score}
	}
	return out, nil
}

// Delete removes a document from the index.
func (t *textIndex) Delete(ctx context.Context, id string) error {
	return t.index.Delete(id)
}

// DocCount returns the number of documents in the index.
func (t *textIndex) DocCount() (uint64, error) {
	return t.index.DocCount()
}

// Close closes the underlying Bleve index.
func (t *textIndex) Close() error {
	return t.index.Close()
}
