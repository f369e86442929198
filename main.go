package main

import (
	"io"
	"os"

	"github.com/MakeNowJust/heredoc"
	"github.com/cli/go-gh/pkg/auth"
	"github.com/heaths/gh-pinned/internal/cmd"
	"github.com/heaths/gh-pinned/internal/config"
	"github.com/heaths/gh-pinned/internal/logger"
	"github.com/heaths/go-console"
	"github.com/spf13/cobra"
)

func main() {
	var configFlag, hostFlag string
	var logFile *os.File

	opts := &cmd.GlobalOptions{
		Console: console.System(),
	}
	rootCmd := &cobra.Command{
		Use:   "pinned",
		Short: "Show pinned repositories as projects",
		Long: heredoc.Doc(`
		Show the repositories a user pinned to their GitHub profile as a
		list of projects, or serve them over HTTP for a portfolio site.

		Settings are read from an optional YAML file, then a .env file,
		then GITHUB_PAT, PINNED_USERNAME, and GH_HOST.
		`),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			if opts.Verbose {
				opts.Log = logger.New(opts.Console, "black+h")
			}

			cfg, err := config.Load(configFlag)
			if err != nil {
				return
			}

			if hostFlag != "" {
				cfg.Host = hostFlag
			}

			// Fall back to the gh login; anonymous requests are rejected and reported.
			if cfg.Token == "" {
				cfg.Token, _ = auth.TokenForHost(cfg.Host)
			}

			var out io.Writer = opts.Console.Stderr()
			if cfg.Log.File != "" {
				logFile, err = os.OpenFile(cfg.Log.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
				if err != nil {
					return
				}
				out = logFile
			}

			l, err := logger.NewLogrus(cfg.Log.Format, cfg.Log.Level, out)
			if err != nil {
				return
			}

			opts.Config = cfg
			opts.Structured = l
			opts.Reporter = logger.Multi(logger.NewConsole(opts.Console), logger.NewStructured(l))
			return
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logFile != nil {
				return logFile.Close()
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Read settings from a YAML file.")
	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Select another GitHub host.")
	rootCmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Show verbose output.")

	rootCmd.AddCommand(cmd.NewListCmd(opts, nil))
	rootCmd.AddCommand(cmd.NewServeCmd(opts, nil))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
