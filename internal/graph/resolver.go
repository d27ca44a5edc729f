package graph

import (
	"context"
	_ "embed"

	"github.com/graph-gophers/graphql-go"

	"github.com/rhanlin/graphql-demo/internal/search"
	"github.com/rhanlin/graphql-demo/internal/store"
)

// Schema is the GraphQL schema served by the API.
//
//go:embed schema.graphqls
var Schema string

// DefaultMeID is the id of the user acting as the viewer of every request.
const DefaultMeID = 1

// Resolver is the root resolver for the GraphQL schema.
// It holds a reference to the store for data access and to the search index
// for full-text queries.
type Resolver struct {
	Store store.Store
	Index *search.Index

	// MeID is the author of posts created through addPost and the user
	// toggled by likePost.
	MeID int

	// SearchLimit caps searchPosts results when the query passes no limit.
	SearchLimit int
}

// Executor runs GraphQL operations. *graphql.Schema implements it.
type Executor interface {
	Exec(ctx context.Context, queryString string, operationName string, variables map[string]interface{}) *graphql.Response
}

// NewSchema parses Schema against r. It fails if any schema field has no
// matching resolver method.
func NewSchema(r *Resolver, opts ...graphql.SchemaOpt) (*graphql.Schema, error) {
	opts = append([]graphql.SchemaOpt{graphql.UseStringDescriptions()}, opts...)
	return graphql.ParseSchema(Schema, r, opts...)
}

func (r *Resolver) meID() int {
	if r.MeID == 0 {
		return DefaultMeID
	}
	return r.MeID
}
