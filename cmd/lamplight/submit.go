package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/lamplight/datain"
	"github.com/five82/lamplight/internal/app"
	"github.com/five82/lamplight/record"
)

// save submits rec and prints the outcome. A failed submission is printed
// and reported as errReported.
func (c *cli) save(cmd *cobra.Command, rec record.Mutable) error {
	return c.withEnv(false, func(env *app.Env) error {
		out, err := env.Client.Save(cmd.Context(), rec)
		if err != nil {
			return err
		}
		return c.report(out)
	})
}

func (c *cli) report(out *datain.ResponseCollection) error {
	if c.jsonOutput {
		if err := writeCollectionJSON(c.stdout, out); err != nil {
			return err
		}
	} else {
		printCollection(c.stdout, c.stderr, out)
	}
	if !out.Success() {
		return errReported
	}
	return nil
}

func (c *cli) attendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "attend <work-id> <attendee>",
		Short: "Add an attendee to a work record",
		Long: `Add an attendee to a work record. The attendee is a profile id or a
name or email address the server can resolve.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			workID, err := parseID("work id", args[0])
			if err != nil {
				return err
			}
			return c.withEnv(false, func(env *app.Env) error {
				out, err := env.Client.AttendWork(cmd.Context(), workID, args[1])
				if err != nil {
					return err
				}
				return c.report(out)
			})
		},
	}
}

func (c *cli) referralCommand() *cobra.Command {
	var (
		attendee string
		date     string
		reason   string
		workarea string
		fields   []string
	)
	cmd := &cobra.Command{
		Use:   "referral",
		Short: "Record a referral",
		Example: `  lamplight referral --attendee 17 --workarea 3 --date "2025-03-01 10:00" \
    --reason "Self referral" --field source=website`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := record.NewReferral(nil)
			r.SetAttendee(attendee)
			if err := r.SetDate(date); err != nil {
				return err
			}
			if reason != "" {
				r.SetReason(reason)
			}
			if workarea != "" {
				r.SetWorkarea(workarea)
			}
			if err := setFields(r, fields); err != nil {
				return err
			}
			return c.save(cmd, r)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&attendee, "attendee", "", "profile id or identifier of the person referred")
	flags.StringVar(&date, "date", "", "referral date, YYYY-MM-DD [HH:MM[:SS]] (default now)")
	flags.StringVar(&reason, "reason", "", "referral reason")
	flags.StringVar(&workarea, "workarea", "", "workarea id or comma separated ids")
	flags.StringArrayVar(&fields, "field", nil, "custom field as name=value (repeatable)")
	_ = cmd.MarkFlagRequired("attendee")
	return cmd
}

func (c *cli) profileCommand() *cobra.Command {
	var (
		id     int
		role   string
		fields []string
	)
	cmd := &cobra.Command{
		Use:       "profile <people|orgs|family>",
		Short:     "Add or update a profile",
		Long:      "Add a profile, or update the profile given by --id.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"people", "orgs", "family"},
		RunE: func(cmd *cobra.Command, args []string) error {
			var p *record.Profile
			switch strings.ToLower(args[0]) {
			case "people":
				p = record.NewPeople(nil)
			case "orgs":
				p = record.NewOrgs(nil)
			case "family":
				p = record.NewFamily(nil)
			default:
				return fmt.Errorf("unknown profile kind %q", args[0])
			}
			if id > 0 {
				if err := p.Set("id", id); err != nil {
					return err
				}
			}
			if role != "" {
				p.SetRole(role)
			}
			if err := setFields(p, fields); err != nil {
				return err
			}
			return c.save(cmd, p)
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&id, "id", 0, "profile id to update")
	flags.StringVar(&role, "role", "", "profile role")
	flags.StringArrayVar(&fields, "field", nil, "profile field as name=value (repeatable)")
	return cmd
}

func (c *cli) relateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "relate <profile-id> <related-id> <relationship-id>",
		Short: "Relate two people",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int, len(args))
			for i, name := range []string{"profile id", "related id", "relationship id"} {
				n, err := parseID(name, args[i])
				if err != nil {
					return err
				}
				ids[i] = n
			}
			r := record.NewRelationship(nil)
			r.SetRelationship(ids[0], ids[1], ids[2])
			return c.save(cmd, r)
		},
	}
}

func (c *cli) groupCommand() *cobra.Command {
	var (
		notes  string
		joined string
	)
	cmd := &cobra.Command{
		Use:   "group <profile-id> <group-id>",
		Short: "Add a person to a group",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			profileID, err := parseID("profile id", args[0])
			if err != nil {
				return err
			}
			groupID, err := parseID("group id", args[1])
			if err != nil {
				return err
			}
			g := record.NewGroupMembership(nil)
			g.SetGroupMembership(profileID, groupID, notes, nil)
			if joined != "" {
				if err := g.Set("date_joined", joined); err != nil {
					return err
				}
			}
			return c.save(cmd, g)
		},
	}
	cmd.Flags().StringVar(&notes, "notes", "", "membership notes")
	cmd.Flags().StringVar(&joined, "joined", "", "date joined, YYYY-MM-DD")
	return cmd
}

func setFields(rec record.Mutable, raw []string) error {
	pairs, err := parsePairs(raw)
	if err != nil {
		return err
	}
	for _, p := range pairs {
		if err := rec.Set(p.name, p.value); err != nil {
			return fmt.Errorf("set %s: %w", p.name, err)
		}
	}
	return nil
}

func parseID(name, raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", name, raw)
	}
	return n, nil
}
