package gateway

import (
	"fmt"
	"strings"
)

// Fields reported by ShapeError when the response is missing an expected level.
const (
	FieldData         = "data"
	FieldRepository   = "repository"
	FieldReleaseNodes = "releases.nodes"
	FieldReleaseNode  = "releases.nodes[]"
	FieldAssetNodes   = "release_assets.nodes"
	FieldAssetNode    = "release_assets.nodes[]"
)

// ShapeError reports a GraphQL response that lacks an expected object or list.
// Index is the position of the null element for FieldReleaseNode and FieldAssetNode.
type ShapeError struct {
	Field string
	Index int
}

func missingField(field string) *ShapeError {
	return &ShapeError{Field: field, Index: -1}
}

func missingElement(field string, index int) *ShapeError {
	return &ShapeError{Field: field, Index: index}
}

func (e *ShapeError) Error() string {
	path := e.Field
	if e.Index >= 0 {
		path = strings.Replace(path, "[]", fmt.Sprintf("[%d]", e.Index), 1)
	}
	return fmt.Sprintf("'%s' missing in response", path)
}

// GraphQLError holds the messages of a non-empty "errors" array.
type GraphQLError struct {
	Messages []string
}

func (e *GraphQLError) Error() string {
	return "graphql: " + strings.Join(e.Messages, "; ")
}
