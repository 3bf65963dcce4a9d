package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v62/github"
	"github.com/hasura/go-graphql-client"
)

// checkedDoer turns non-2xx responses into go-github errors before the
// GraphQL client sees them, so rate limit and auth failures keep their type.
type checkedDoer struct {
	client *http.Client
}

func (d checkedDoer) Do(req *http.Request) (*http.Response, error) {
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	if err := github.CheckResponse(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp, nil
}

func newRawClient(endpoint string, httpClient *http.Client) *graphql.Client {
	return graphql.NewClient(endpoint, checkedDoer{client: httpClient}).
		WithRequestModifier(func(r *http.Request) {
			r.Header.Set("Accept", "application/json")
		})
}

// post runs query and decodes the "data" object into out.
// Errors reported next to a usable "data" object come back as the first
// value; callers validate out first and attach them only when it is unusable.
func (g *GitHubGateway) post(ctx context.Context, query string, variables map[string]any, out any) (*GraphQLError, error) {
	data, err := g.rawClient.ExecRaw(ctx, query, variables)
	gqlErr, err := splitErrors(err)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, withGraphQL(missingField(FieldData), gqlErr)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to decode 'data': %w", err)
	}
	return gqlErr, nil
}

// splitErrors separates the server's "errors" array from transport and
// decode failures, which the client reports through the same type.
func splitErrors(err error) (*GraphQLError, error) {
	if err == nil {
		return nil, nil
	}
	var errs graphql.Errors
	if !errors.As(err, &errs) {
		return nil, fmt.Errorf("post failed: %w", err)
	}
	for i, inner := range errs.Unwrap() {
		if inner == nil {
			continue
		}
		if errs[i].Extensions["code"] == graphql.ErrJsonDecode {
			return nil, fmt.Errorf("failed to decode response: %w", inner)
		}
		return nil, fmt.Errorf("post failed: %w", inner)
	}
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Message)
	}
	return &GraphQLError{Messages: msgs}, nil
}

func withGraphQL(shapeErr error, gqlErr *GraphQLError) error {
	if gqlErr == nil {
		return shapeErr
	}
	return errors.Join(shapeErr, gqlErr)
}
