package main

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/lamplight/client"
	"github.com/five82/lamplight/internal/app"
)

type queryFlags struct {
	id         int
	role       string
	near       string
	nearRadius int
	short      bool
	full       bool
	recordType string
	params     []string
}

func (f *queryFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.IntVar(&f.id, "id", 0, "record id (required for one)")
	flags.StringVar(&f.role, "role", "", "profile role: user, contact, staff, org or funder")
	flags.StringVar(&f.near, "near", "", "only records near this postcode or place")
	flags.IntVar(&f.nearRadius, "radius", 0, "search radius used with --near")
	flags.BoolVar(&f.short, "short", false, "request short records")
	flags.BoolVar(&f.full, "full", false, "request full records")
	flags.StringVar(&f.recordType, "type", "", "build results as this record type")
	flags.StringArrayVar(&f.params, "param", nil, "extra query parameter as name=value (repeatable)")
}

func (f *queryFlags) query(action, method string) (client.FetchQuery, error) {
	if f.short && f.full {
		return client.FetchQuery{}, errors.New("--short and --full are mutually exclusive")
	}
	params, err := parsePairs(f.params)
	if err != nil {
		return client.FetchQuery{}, err
	}
	q := client.FetchQuery{
		Action:     strings.TrimSpace(action),
		Method:     strings.TrimSpace(method),
		ID:         f.id,
		Role:       f.role,
		Near:       f.near,
		NearRadius: f.nearRadius,
		Type:       f.recordType,
	}
	switch {
	case f.short:
		q.Return = "short"
	case f.full:
		q.Return = "full"
	}
	if len(params) > 0 {
		q.Params = url.Values{}
		for _, p := range params {
			q.Params.Add(p.name, p.value)
		}
	}
	return q, nil
}

func (c *cli) fetchCommand() *cobra.Command {
	var (
		qf       queryFlags
		template string
	)
	cmd := &cobra.Command{
		Use:   "fetch <action> <one|some|all>",
		Short: "Fetch records and print them",
		Example: `  lamplight fetch people all --role user
  lamplight fetch work one --id 42 --template "{title} on {date_from}"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.query(args[0], args[1])
			if err != nil {
				return err
			}
			return c.withEnv(false, func(env *app.Env) error {
				rs, err := env.Client.Fetch(cmd.Context(), q)
				if err != nil {
					return err
				}
				if c.jsonOutput {
					if err := writeRecordSetJSON(c.stdout, rs); err != nil {
						return err
					}
				} else {
					templateFor := env.Template
					if template != "" {
						templateFor = func(string) string { return template }
					}
					printRecordSet(c.stdout, c.stderr, rs, templateFor)
				}
				if rs.HasErrors() {
					return errReported
				}
				return nil
			})
		},
	}
	qf.register(cmd)
	cmd.Flags().StringVar(&template, "template", "", "render each record with this {field} template")
	return cmd
}

func (c *cli) browseCommand() *cobra.Command {
	var (
		qf    queryFlags
		watch int
	)
	cmd := &cobra.Command{
		Use:   "browse <action> <one|some|all>",
		Short: "Browse fetched records in a terminal UI",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.query(args[0], args[1])
			if err != nil {
				return err
			}
			interval := time.Duration(watch) * time.Second
			if watch < 0 {
				interval = -1
			}
			return c.withEnv(true, func(env *app.Env) error {
				return app.Browse(cmd.Context(), env, q, interval)
			})
		},
	}
	qf.register(cmd)
	cmd.Flags().IntVar(&watch, "watch", 0, "seconds between fetches (0 uses 30, negative fetches only on r)")
	return cmd
}

type pair struct {
	name  string
	value string
}

// parsePairs splits name=value arguments, keeping their order.
func parsePairs(raw []string) ([]pair, error) {
	out := make([]pair, 0, len(raw))
	for _, item := range raw {
		name, value, ok := strings.Cut(item, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("expected name=value, got %q", item)
		}
		out = append(out, pair{name: name, value: value})
	}
	return out, nil
}
