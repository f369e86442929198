package cmd

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/heaths/gh-pinned/internal/config"
	"github.com/heaths/gh-pinned/internal/logger"
	"github.com/heaths/gh-pinned/internal/projects"
	"github.com/heaths/go-console"
	"github.com/stretchr/testify/assert"
	"gopkg.in/h2non/gock.v1"
)

func TestNewListCmd(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantOpts *listOptions
		wantErr  string
	}{
		{
			name: "defaults from config",
			wantOpts: &listOptions{
				users:       []string{"jxpeng98"},
				format:      "table",
				homepages:   true,
				timeout:     30 * time.Second,
				workerCount: DefaultWorkerCount,
			},
		},
		{
			name: "flags override config",
			args: []string{"heaths", "jxpeng98", "HEATHS", "-f", "JSON", "--homepages=false", "--timeout", "5s", "-w", "2"},
			wantOpts: &listOptions{
				users:       []string{"heaths", "jxpeng98"},
				format:      "json",
				homepages:   false,
				timeout:     5 * time.Second,
				workerCount: 2,
			},
		},
		{
			name:    "invalid format",
			args:    []string{"-f", "xml"},
			wantErr: `invalid argument "xml" for "-f, --format" flag: valid values are {table|json|markdown}`,
		},
		{
			name:    "too few workers",
			args:    []string{"-w", "0"},
			wantErr: `invalid argument "0" for "-w, --workers" flag: value is less than 1`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Homepages = true

			globalOpts := &GlobalOptions{
				Console: console.Fake(),
				Config:  cfg,
			}

			var gotOpts *listOptions
			cmd := NewListCmd(globalOpts, func(opts *listOptions) error {
				gotOpts = opts
				return nil
			})
			cmd.SilenceUsage = true
			cmd.SilenceErrors = true

			cmd.SetArgs(tt.args)
			err := cmd.Execute()

			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.wantOpts.users, gotOpts.users)
			assert.Equal(t, tt.wantOpts.format, gotOpts.format)
			assert.Equal(t, tt.wantOpts.homepages, gotOpts.homepages)
			assert.Equal(t, tt.wantOpts.timeout, gotOpts.timeout)
			assert.Equal(t, tt.wantOpts.workerCount, gotOpts.workerCount)
		})
	}
}

func TestList(t *testing.T) {
	tests := []struct {
		name       string
		opts       *listOptions
		mocks      func()
		wantStdout string
		wantStderr string
		wantErr    string
	}{
		{
			name: "table",
			opts: &listOptions{
				users:  []string{"jxpeng98"},
				format: "table",
			},
			mocks: func() {
				mockPinned("jxpeng98", fooEdge, archivedEdge)
			},
			wantStdout: "🚀\tfoo\tFast tool\thttps://x.com/foo\n",
		},
		{
			name: "json",
			opts: &listOptions{
				users:  []string{"jxpeng98"},
				format: "json",
			},
			mocks: func() {
				mockPinned("jxpeng98", fooEdge, archivedEdge)
			},
			wantStdout: heredoc.Doc(`
				[
				  {
				    "name": "foo",
				    "url": "https://x.com/foo",
				    "description": "Fast tool",
				    "icon": "🚀",
				    "template": false
				  }
				]
			`),
		},
		{
			name: "json empty",
			opts: &listOptions{
				users:  []string{"jxpeng98"},
				format: "json",
			},
			mocks: func() {
				mockPinned("jxpeng98", archivedEdge)
			},
			wantStdout: "[]\n",
		},
		{
			name: "rejected",
			opts: &listOptions{
				users:  []string{"jxpeng98"},
				format: "table",
			},
			mocks: func() {
				gock.New("https://api.github.com").
					Post("/graphql").
					Reply(404).
					JSON(`{"message": "Bad credentials"}`)
			},
			wantStderr: heredoc.Doc(`
				Failed to fetch projects: {"error":{"message":"Bad credentials"}}
				No projects available for jxpeng98
			`),
		},
		{
			name: "rejected json",
			opts: &listOptions{
				users:  []string{"jxpeng98"},
				format: "json",
			},
			mocks: func() {
				gock.New("https://api.github.com").
					Post("/graphql").
					Reply(404).
					JSON(`{"message": "Bad credentials"}`)
			},
			wantStdout: "null\n",
			wantStderr: "Failed to fetch projects: {\"error\":{\"message\":\"Bad credentials\"}}\n",
		},
		{
			name: "multiple users markdown",
			opts: &listOptions{
				users:  []string{"jxpeng98", "heaths"},
				format: "markdown",
			},
			mocks: func() {
				mockPinned("jxpeng98", fooEdge)
				mockPinned("heaths", `{"node": {"name": "gh-projects", "url": "https://github.com/heaths/gh-projects", "description": "🧰 Manage repository projects", "isArchived": false}}`)
			},
			wantStdout: heredoc.Doc(`
				jxpeng98
				- 🚀 **[foo](https://x.com/foo)**: Fast tool

				heaths
				- 🧰 **[gh-projects](https://github.com/heaths/gh-projects)**: Manage repository projects
			`),
		},
		{
			name: "multiple users json",
			opts: &listOptions{
				users:  []string{"jxpeng98", "heaths"},
				format: "json",
			},
			mocks: func() {
				mockPinned("jxpeng98", archivedEdge)
				gock.New("https://api.github.com").
					Post("/graphql").
					JSON(map[string]interface{}{
						"query": projects.Query("heaths"),
					}).
					Reply(401).
					JSON(`{"message": "Bad credentials"}`)
			},
			wantStdout: heredoc.Doc(`
				{
				  "heaths": null,
				  "jxpeng98": []
				}
			`),
			wantStderr: "Failed to fetch projects: {\"error\":{\"message\":\"Bad credentials\"}}\n",
		},
		{
			name: "homepages",
			opts: &listOptions{
				users:     []string{"jxpeng98"},
				format:    "markdown",
				homepages: true,
			},
			mocks: func() {
				mockPinned("jxpeng98", `{"node": {"name": "foo", "url": "https://github.com/jxpeng98/foo", "description": "🚀 Fast tool", "isArchived": false}}`)
				gock.New("https://api.github.com").
					Get("/repos/jxpeng98/foo").
					Reply(200).
					JSON(`{"name": "foo", "homepage": "https://foo.dev"}`)
			},
			wantStdout: "- 🚀 **[foo](https://github.com/jxpeng98/foo)**: Fast tool ([homepage](https://foo.dev))\n",
		},
		{
			name: "user not found",
			opts: &listOptions{
				users:  []string{"jxpeng98"},
				format: "table",
			},
			mocks: func() {
				gock.New("https://api.github.com").
					Post("/graphql").
					Reply(200).
					JSON(`{
						"data": {
							"user": null
						},
						"errors": [
							{
								"type": "NOT_FOUND",
								"message": "Could not resolve to a User with the login of 'jxpeng98'."
							}
						]
					}`)
			},
			wantErr: "failed to fetch projects for jxpeng98: GraphQL: Could not resolve to a User with the login of 'jxpeng98'.",
		},
		{
			name: "invalid user",
			opts: &listOptions{
				users:  []string{"not a login"},
				format: "table",
			},
			wantErr: `failed to fetch projects for not a login: invalid username "not a login"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Cleanup(gock.Off)

			fake := console.Fake()
			cfg := config.Default()
			cfg.Token = "***"

			globalOpts := &GlobalOptions{
				Console:  fake,
				Config:   cfg,
				Reporter: logger.NewConsole(fake),
			}

			tt.opts.GlobalOptions = *globalOpts
			tt.opts.workerCount = 1

			if tt.mocks != nil {
				tt.mocks()
			}

			err := list(tt.opts)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				return
			}

			assert.NoError(t, err)
			assert.True(t, gock.IsDone(), pendingMocks(gock.Pending()))

			stdout, stderr, _ := fake.Buffers()
			assert.Equal(t, tt.wantStdout, stdout.String())
			assert.Equal(t, tt.wantStderr, stderr.String())
		})
	}
}

const (
	fooEdge      = `{"node": {"name": "foo", "url": "HTTPS://X.COM/FOO", "description": "🚀 Fast tool", "isArchived": false}}`
	archivedEdge = `{"node": {"name": "bar", "url": "https://x.com/bar", "description": "Old tool", "isArchived": true}}`
)

func mockPinned(username string, edges ...string) {
	gock.New("https://api.github.com").
		Post("/graphql").
		MatchHeader("Authorization", `^Bearer \*\*\*$`).
		JSON(map[string]interface{}{
			"query": projects.Query(username),
		}).
		Reply(200).
		JSON(fmt.Sprintf(`{"data": {"user": {"pinnedItems": {"edges": [%s]}}}}`, strings.Join(edges, ",")))
}

func pendingMocks(mocks []gock.Mock) string {
	paths := make([]string, len(mocks))
	for i, mock := range mocks {
		paths[i] = mock.Request().URLStruct.String()
	}

	return fmt.Sprintf("%d unmatched mocks: %s", len(paths), strings.Join(paths, ", "))
}
