package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc"
	"github.com/gin-gonic/gin"
	"github.com/heaths/gh-pinned/internal/models"
	"github.com/heaths/gh-pinned/internal/server"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func NewServeCmd(globalOpts *GlobalOptions, runFunc func(*serveOptions) error) *cobra.Command {
	opts := serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve pinned projects over HTTP",
		Long: heredoc.Doc(`
			Serve pinned projects as JSON for a site build or client.

			  GET /api/projects[?user=<login>]
			  GET /healthz

			Each request fetches the pinned repositories again; nothing is cached.
			A rejected request to GitHub responds with 502 Bad Gateway.
		`),
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.GlobalOptions = *globalOpts

			if !cmd.Flags().Changed("addr") {
				opts.addr = opts.Config.Server.Addr
			}

			if runFunc == nil {
				runFunc = serve
			}

			return runFunc(&opts)
		},
	}

	cmd.Flags().StringVarP(&opts.addr, "addr", "a", "", "Address to listen on")

	return cmd
}

type serveOptions struct {
	GlobalOptions

	addr string
}

func (opts *serveOptions) source(ctx context.Context, username string) ([]models.Project, error) {
	ctx, cancel := context.WithTimeout(ctx, opts.Config.Timeout)
	defer cancel()

	return opts.fetch(ctx, username, opts.Config.Homepages)
}

func serve(opts *serveOptions) error {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := server.New(opts.source, server.Options{
		Username:     opts.Config.Username,
		AllowOrigins: opts.Config.Server.AllowOrigins,
		Logger:       opts.Structured,
	})

	srv := &http.Server{
		Addr:              opts.addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe()
	}()

	if opts.Console.IsStderrTTY() {
		fmt.Fprintf(opts.Console.Stderr(), "Serving pinned projects for %s on %s\n", opts.Config.Username, opts.addr)
	}

	select {
	case err := <-errs:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
