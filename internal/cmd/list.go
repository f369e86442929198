package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/cli/go-gh/pkg/jsonpretty"
	"github.com/cli/go-gh/pkg/text"
	"github.com/heaths/gh-pinned/internal/logger"
	"github.com/heaths/gh-pinned/internal/models"
	"github.com/heaths/gh-pinned/internal/template"
	"github.com/heaths/gh-pinned/internal/utils"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const DefaultWorkerCount = 4

func NewListCmd(globalOpts *GlobalOptions, runFunc func(*listOptions) error) *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list [<login>...]",
		Short: "List pinned projects",
		Long: heredoc.Doc(`
			List the pinned repositories of one or more users as projects.

			Archived repositories and repositories without a description are
			skipped. The first word of a description is removed and, if it is
			an emoji, shown as the project icon.

			If no login is passed, the configured username is used.
		`),
		Example: heredoc.Doc(`
			# list pinned projects of the configured user
			$ gh pinned list

			# list pinned projects of several users as JSON, with homepages
			$ gh pinned list jxpeng98 heaths --format json --homepages
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = *globalOpts

			opts.users = utils.Unique(args)
			if len(opts.users) == 0 {
				opts.users = []string{opts.Config.Username}
			}

			if !cmd.Flags().Changed("homepages") {
				opts.homepages = opts.Config.Homepages
			}

			if !cmd.Flags().Changed("timeout") {
				opts.timeout = opts.Config.Timeout
			}

			if runFunc == nil {
				runFunc = list
			}

			return runFunc(&opts)
		},
	}

	StringEnumFlag(cmd, &opts.format, "format", "f", "table", []string{"table", "json", "markdown"}, "Output format")
	cmd.Flags().BoolVar(&opts.homepages, "homepages", false, "Fill in repository homepages")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Maximum time to wait for all users")
	IntRangeVarP(cmd, &opts.workerCount, "workers", "w", DefaultWorkerCount, 1, 16, "Number of users to fetch at once")

	return cmd
}

type listOptions struct {
	GlobalOptions

	users       []string
	format      string
	homepages   bool
	timeout     time.Duration
	workerCount int
}

func list(opts *listOptions) (err error) {
	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	opts.Console.StartProgress(fmt.Sprintf("Fetching pinned projects for %s", text.Pluralize(len(opts.users), "user")))
	results, err := fetchAll(ctx, opts)
	opts.Console.StopProgress()

	if err != nil {
		return
	}

	if opts.format == "json" {
		return writeJSON(opts, results)
	}

	stdout := opts.Console.Stdout()
	warn := logger.New(opts.Console, "yellow")
	t := template.New(opts.Console)

	for i, user := range opts.users {
		if len(opts.users) > 1 {
			if i > 0 {
				fmt.Fprintln(stdout)
			}
			fmt.Fprintf(stdout, "%s\n", user)
		}

		if results[i] == nil {
			warn.Printf("No projects available for %s\n", user)
			continue
		}

		if opts.format == "markdown" {
			err = t.Markdown(results[i])
		} else {
			err = t.Projects(results[i])
		}
		if err != nil {
			return
		}
	}

	return
}

// fetchAll fetches users in parallel. A nil element means the request for that
// user was rejected and reported.
func fetchAll(parent context.Context, opts *listOptions) ([][]models.Project, error) {
	results := make([][]models.Project, len(opts.users))

	workerCount := opts.workerCount
	if workerCount < 1 {
		workerCount = DefaultWorkerCount
	}
	if userCount := len(opts.users); workerCount > userCount {
		workerCount = userCount
	}

	users := make(chan int)
	wg, ctx := errgroup.WithContext(parent)

	for i := 0; i < workerCount; i++ {
		wg.Go(func() error {
			for {
				select {
				case <-ctx.Done():
					return nil
				case i, ok := <-users:
					if !ok {
						return nil
					}

					projects, err := opts.fetch(ctx, opts.users[i], opts.homepages)
					if err != nil {
						return fmt.Errorf("failed to fetch projects for %s: %w", opts.users[i], err)
					}

					results[i] = projects
				}
			}
		})
	}

send:
	for i := range opts.users {
		select {
		case <-ctx.Done():
			break send
		case users <- i:
		}
	}

	close(users)
	if err := wg.Wait(); err != nil {
		return nil, err
	}

	// Workers stop quietly when the deadline passes between users.
	if err := parent.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func writeJSON(opts *listOptions, results [][]models.Project) error {
	var v interface{} = results[0]
	if len(opts.users) > 1 {
		byUser := make(map[string][]models.Project, len(opts.users))
		for i, user := range opts.users {
			byUser[user] = results[i]
		}
		v = byUser
	}

	stdout := opts.Console.Stdout()
	if !opts.Console.IsStdoutTTY() {
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(stdout, "%s\n", b)
		return err
	}

	b, err := json.Marshal(v)
	if err != nil {
		return err
	}

	return jsonpretty.Format(stdout, bytes.NewReader(b), "  ", true)
}
