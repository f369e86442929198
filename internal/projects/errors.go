package projects

import (
	"fmt"
	"strings"
)

// ParseError is returned when a response body is not valid JSON.
type ParseError struct {
	StatusCode int
	Err        error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse response (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MalformedResponseError is returned when a successful response is missing
// the data needed to extract pinned repositories.
type MalformedResponseError struct {
	Path string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: missing %s", e.Path)
}

// QueryError carries the GraphQL errors of a response that resolved no user.
type QueryError struct {
	Errors []GraphQLError
}

type GraphQLError struct {
	Type    string
	Message string
}

func (e *QueryError) Error() string {
	msgs := make([]string, len(e.Errors))
	for i, err := range e.Errors {
		msgs[i] = err.Message
	}

	return fmt.Sprintf("GraphQL: %s", strings.Join(msgs, ", "))
}
