package enrich

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v58/github"
	"github.com/heaths/gh-pinned/internal/models"
	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	DefaultWorkerCount = 4

	// DefaultRequestsPerHour is the REST API limit for authenticated users.
	DefaultRequestsPerHour = 5000
)

type Options struct {
	// Host defaults to github.com.
	Host  string
	Token string

	// HTTPClient overrides the client created from Token.
	HTTPClient *http.Client

	RequestsPerHour int
	WorkerCount     int
}

// Homepages fills in project homepages from repository metadata.
type Homepages struct {
	client      *github.Client
	limiter     *rate.Limiter
	workerCount int
}

func NewHomepages(ctx context.Context, opts Options) (*Homepages, error) {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		if opts.Token != "" {
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: opts.Token})
			httpClient = oauth2.NewClient(ctx, ts)
		} else {
			httpClient = &http.Client{}
		}
	}

	client := github.NewClient(httpClient)
	if opts.Host != "" && !strings.EqualFold(opts.Host, "github.com") {
		baseURL := fmt.Sprintf("https://%s/api/v3/", opts.Host)
		uploadURL := fmt.Sprintf("https://%s/api/uploads/", opts.Host)

		var err error
		client, err = client.WithEnterpriseURLs(baseURL, uploadURL)
		if err != nil {
			return nil, err
		}
	}

	requestsPerHour := opts.RequestsPerHour
	if requestsPerHour <= 0 {
		requestsPerHour = DefaultRequestsPerHour
	}

	workerCount := opts.WorkerCount
	if workerCount < 1 {
		workerCount = DefaultWorkerCount
	}

	return &Homepages{
		client:      client,
		limiter:     rate.NewLimiter(rate.Limit(float64(requestsPerHour)/3600), 10),
		workerCount: workerCount,
	}, nil
}

// Enrich returns a copy of projects with Homepage set from each repository.
// Projects that already have a homepage, or whose URL does not name a
// repository, are copied unchanged.
func (h *Homepages) Enrich(ctx context.Context, projects []models.Project) ([]models.Project, error) {
	enriched := make([]models.Project, len(projects))
	copy(enriched, projects)

	var pending []int
	for i, project := range enriched {
		if project.Homepage != "" {
			continue
		}
		if _, _, ok := ownerRepo(project.URL); ok {
			pending = append(pending, i)
		}
	}

	if len(pending) == 0 {
		return enriched, nil
	}

	workerCount := h.workerCount
	if workerCount > len(pending) {
		workerCount = len(pending)
	}

	indexes := make(chan int)
	wg, ctx := errgroup.WithContext(ctx)

	for i := 0; i < workerCount; i++ {
		wg.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case i, ok := <-indexes:
					if !ok {
						return nil
					}

					homepage, err := h.homepage(ctx, enriched[i].URL)
					if err != nil {
						return err
					}

					enriched[i].Homepage = homepage
				}
			}
		})
	}

send:
	for _, i := range pending {
		select {
		case <-ctx.Done():
			break send
		case indexes <- i:
		}
	}

	close(indexes)
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	return enriched, nil
}

func (h *Homepages) homepage(ctx context.Context, repoURL string) (string, error) {
	owner, name, _ := ownerRepo(repoURL)

	if err := h.limiter.Wait(ctx); err != nil {
		return "", err
	}

	repo, _, err := h.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return "", nil
		}

		return "", fmt.Errorf("failed to get repository %s/%s: %w", owner, name, err)
	}

	return repo.GetHomepage(), nil
}

func ownerRepo(repoURL string) (owner, name string, ok bool) {
	u, err := url.Parse(repoURL)
	if err != nil || u.Host == "" {
		return "", "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}

	return parts[0], parts[1], true
}
