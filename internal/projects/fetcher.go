package projects

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"strings"

	"github.com/cli/go-gh"
	"github.com/cli/go-gh/pkg/api"
	"github.com/heaths/gh-pinned/internal/logger"
	"github.com/heaths/gh-pinned/internal/models"
	"github.com/henvic/httpretty"
)

const (
	DefaultHost = "github.com"

	// PinnedLimit is the number of pinned items requested.
	PinnedLimit = 8
)

var (
	ErrInvalidUsername = errors.New("invalid username")

	loginPattern = regexp.MustCompile(`^[A-Za-z0-9](?:-?[A-Za-z0-9])*$`)
)

type Options struct {
	// Username is the login whose pinned repositories are fetched.
	Username string

	// Token is sent as a bearer credential. If empty, no credential is sent
	// and the API will reject the request.
	Token string

	// Host defaults to github.com.
	Host string

	// Endpoint overrides the GraphQL endpoint derived from Host.
	Endpoint string

	// HTTPClient overrides the client created from Token and Host.
	HTTPClient *http.Client

	// Log receives the error payload of rejected requests.
	Log logger.Reporter

	// Verbose receives HTTP request and response logs.
	Verbose io.Writer
}

// Fetcher fetches pinned repositories for a single user.
// It holds no mutable state and is safe for concurrent use.
type Fetcher struct {
	client   *http.Client
	endpoint string
	query    string
	log      logger.Reporter
}

func New(opts Options) (*Fetcher, error) {
	if !loginPattern.MatchString(opts.Username) {
		return nil, fmt.Errorf("%w %q", ErrInvalidUsername, opts.Username)
	}

	if opts.Host == "" {
		opts.Host = DefaultHost
	}

	if opts.Endpoint == "" {
		opts.Endpoint = GraphQLEndpoint(opts.Host)
	}

	if opts.Log == nil {
		opts.Log = logger.Discard
	}

	client := opts.HTTPClient
	if client == nil {
		var err error
		client, err = NewHTTPClient(opts.Host, opts.Token, opts.Verbose)
		if err != nil {
			return nil, err
		}
	}

	return &Fetcher{
		client:   client,
		endpoint: opts.Endpoint,
		query:    Query(opts.Username),
		log:      opts.Log,
	}, nil
}

// NewHTTPClient creates a client that sends token as a bearer credential to
// host, and logs requests to verbose if not nil. With no token, requests are
// sent without credentials.
func NewHTTPClient(host, token string, verbose io.Writer) (*http.Client, error) {
	if token == "" {
		return anonymousHTTPClient(verbose), nil
	}

	return gh.HTTPClient(&api.ClientOptions{
		AuthToken: token,
		Host:      host,
		Headers: map[string]string{
			"Authorization": "Bearer " + token,
		},
		Log: verbose,
	})
}

// anonymousHTTPClient logs requests like gh.HTTPClient, which cannot be
// created without a token.
func anonymousHTTPClient(verbose io.Writer) *http.Client {
	if verbose == nil {
		switch os.Getenv("GH_DEBUG") {
		case "", "0", "false", "no":
		default:
			verbose = os.Stderr
		}
	}

	if verbose == nil {
		return &http.Client{}
	}

	l := &httpretty.Logger{
		Time:            true,
		MaxResponseBody: 100000,
	}
	l.SetOutput(verbose)

	// A nil transport uses http.DefaultTransport.
	return &http.Client{Transport: l.RoundTripper(nil)}
}

// GraphQLEndpoint returns the GraphQL endpoint for github.com or an enterprise host.
func GraphQLEndpoint(host string) string {
	if host == "" || strings.EqualFold(host, DefaultHost) {
		return "https://api.github.com/graphql"
	}

	return fmt.Sprintf("https://%s/api/graphql", host)
}

// Query returns the pinned repositories query for the given login.
func Query(username string) string {
	return fmt.Sprintf(queryUserPinnedItems, username, PinnedLimit)
}

type request struct {
	Query string `json:"query"`
}

type response struct {
	Data   *models.UserPinnedItems
	Errors []GraphQLError
}

// FetchProjects returns the user's pinned, unarchived, described repositories
// in pinned order. If the API rejects the request, the error payload is
// reported to the Log and both return values are nil.
func (f *Fetcher) FetchProjects(ctx context.Context) ([]models.Project, error) {
	body, err := json.Marshal(request{Query: f.query})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var payload interface{}
		if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
			return nil, &ParseError{StatusCode: resp.StatusCode, Err: err}
		}

		f.log.Report("Failed to fetch projects", logger.Fields{"error": payload})
		return nil, nil
	}

	var data response
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, &ParseError{StatusCode: resp.StatusCode, Err: err}
	}

	nodes, err := data.nodes()
	if err != nil {
		return nil, err
	}

	return Transform(nodes), nil
}

func (r *response) nodes() ([]models.RepositoryNode, error) {
	if r.Data == nil || r.Data.User == nil {
		if len(r.Errors) > 0 {
			return nil, &QueryError{Errors: r.Errors}
		}

		if r.Data == nil {
			return nil, &MalformedResponseError{Path: "data"}
		}
		return nil, &MalformedResponseError{Path: "data.user"}
	}

	pinnedItems := r.Data.User.PinnedItems
	if pinnedItems == nil {
		return nil, &MalformedResponseError{Path: "data.user.pinnedItems"}
	}
	if pinnedItems.Edges == nil {
		return nil, &MalformedResponseError{Path: "data.user.pinnedItems.edges"}
	}

	edges := *pinnedItems.Edges
	nodes := make([]models.RepositoryNode, len(edges))
	for i, edge := range edges {
		if edge.Node == nil {
			return nil, &MalformedResponseError{Path: fmt.Sprintf("data.user.pinnedItems.edges[%d].node", i)}
		}
		nodes[i] = *edge.Node
	}

	return nodes, nil
}

const queryUserPinnedItems = `
query {
	user(login: %q) {
		pinnedItems(first: %d) {
			edges {
				node {
					... on Repository {
						name
						url
						description
						isArchived
					}
				}
			}
		}
	}
}
`
