package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/heaths/gh-pinned/internal/config"
	"github.com/heaths/gh-pinned/internal/enrich"
	"github.com/heaths/gh-pinned/internal/logger"
	"github.com/heaths/gh-pinned/internal/models"
	"github.com/heaths/gh-pinned/internal/projects"
	"github.com/heaths/go-console"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type GlobalOptions struct {
	Console console.Console
	Config  *config.Config

	// Log receives verbose HTTP logs.
	Log io.Writer

	// Reporter receives payloads of rejected requests.
	Reporter logger.Reporter

	// Structured receives server access logs.
	Structured logrus.FieldLogger

	Verbose bool
}

// fetch returns the pinned projects for username, or nil if the request was
// rejected and reported. Homepages are filled in if requested.
func (opts *GlobalOptions) fetch(ctx context.Context, username string, homepages bool) ([]models.Project, error) {
	f, err := projects.New(projects.Options{
		Username: username,
		Token:    opts.Config.Token,
		Host:     opts.Config.Host,
		Log:      opts.Reporter,
		Verbose:  opts.Log,
	})
	if err != nil {
		return nil, err
	}

	results, err := f.FetchProjects(ctx)
	if err != nil || results == nil || !homepages {
		return results, err
	}

	h, err := enrich.NewHomepages(ctx, enrich.Options{
		Host:  opts.Config.Host,
		Token: opts.Config.Token,
	})
	if err != nil {
		return nil, err
	}

	return h.Enrich(ctx, results)
}

func IntRangeVarP(cmd *cobra.Command, p *int, name, shorthand string, defaultValue int, min, max int, usage string) {
	*p = defaultValue
	val := &intValue{
		value: p,
		min:   min,
		max:   max,
	}

	cmd.Flags().VarP(val, name, shorthand, fmt.Sprintf("%s: {%d <= %s <= %d}", usage, min, name, max))
}

type intValue struct {
	value    *int
	min, max int
}

func (v *intValue) String() string {
	return strconv.Itoa(*v.value)
}

func (v *intValue) Set(s string) error {
	val64, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return fmt.Errorf("invalid value: %s", s)
	}

	val := int(val64)
	if val < v.min {
		return fmt.Errorf("value is less than %d", v.min)
	}
	if val > v.max {
		return fmt.Errorf("value is more than %d", v.max)
	}

	*v.value = val
	return nil
}

func (v *intValue) Type() string {
	return "int"
}
