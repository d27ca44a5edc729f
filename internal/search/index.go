// Package search provides full-text search over posts using Bleve.
package search

import (
	"fmt"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/rhanlin/graphql-demo/internal/graph/model"
)

// DefaultSearchLimit is the default maximum number of search results.
const DefaultSearchLimit = 1000

// Index wraps a Bleve in-memory index for searching posts.
type Index struct {
	index bleve.Index
}

// postDocument is the structure stored in the Bleve index.
type postDocument struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NewIndex creates a new in-memory Bleve index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, err
	}

	return &Index{index: idx}, nil
}

// buildIndexMapping creates the Bleve index mapping for post documents.
func buildIndexMapping() mapping.IndexMapping {
	textFieldMapping := bleve.NewTextFieldMapping()
	textFieldMapping.Analyzer = "standard"

	keywordFieldMapping := bleve.NewKeywordFieldMapping()

	postMapping := bleve.NewDocumentMapping()
	postMapping.AddFieldMappingsAt("id", keywordFieldMapping)
	postMapping.AddFieldMappingsAt("title", textFieldMapping)
	postMapping.AddFieldMappingsAt("content", textFieldMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = postMapping
	indexMapping.DefaultAnalyzer = "standard"
	indexMapping.IndexDynamic = false
	indexMapping.StoreDynamic = false
	indexMapping.ScoringModel = "bm25"

	return indexMapping
}

// Close closes the index.
func (idx *Index) Close() error {
	return idx.index.Close()
}

func newDocument(p model.Post) postDocument {
	doc := postDocument{
		ID:    strconv.Itoa(p.ID),
		Title: p.Title,
	}
	if p.Content != nil {
		doc.Content = *p.Content
	}
	return doc
}

// IndexPost adds or updates a post in the search index.
func (idx *Index) IndexPost(p model.Post) error {
	doc := newDocument(p)
	return idx.index.Index(doc.ID, doc)
}

// IndexPosts indexes multiple posts in one batch.
func (idx *Index) IndexPosts(posts []model.Post) error {
	batch := idx.index.NewBatch()
	for _, p := range posts {
		doc := newDocument(p)
		if err := batch.Index(doc.ID, doc); err != nil {
			return err
		}
	}
	return idx.index.Batch(batch)
}

// Search runs a query-string query and returns matching post ids, best match
// first. A limit of 0 or less uses DefaultSearchLimit.
//
// Supported syntax includes plain terms ("dream"), boolean operators,
// wildcards ("dre*"), phrases and field scoping ("title:night").
func (idx *Index) Search(queryStr string, limit int) ([]int, error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}

	searchRequest := bleve.NewSearchRequest(bleve.NewQueryStringQuery(queryStr))
	searchRequest.Size = limit

	result, err := idx.index.Search(searchRequest)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(result.Hits))
	for _, hit := range result.Hits {
		id, err := strconv.Atoi(hit.ID)
		if err != nil {
			return nil, fmt.Errorf("unexpected document id %q: %w", hit.ID, err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}
