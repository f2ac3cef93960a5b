package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/lamplight/internal/prefs"
)

func (c *cli) templateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "template",
		Short: "Manage the templates records are rendered with",
		Long: `Templates use {field} placeholders and are keyed by record type,
e.g. PeopleSummary for "fetch people all" or Work for "fetch work one".
They apply to fetch output and the browse list.`,
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "Show stored templates",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			p, err := prefs.Load(c.prefsPath)
			if err != nil {
				return err
			}
			names := p.TemplateTypes()
			if len(names) == 0 {
				mutedColor.Fprintln(c.stdout, "no templates set; records render every field")
				return nil
			}
			for _, name := range names {
				idColor.Fprintf(c.stdout, "%-24s", name)
				fmt.Fprintf(c.stdout, " %s\n", p.Template(name))
			}
			return nil
		},
	}

	set := &cobra.Command{
		Use:     "set <type> <template>",
		Short:   "Store the template for a record type",
		Example: `  lamplight template set PeopleSummary "{surname}, {first_name}"`,
		Args:    cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := prefs.Update(c.prefsPath, func(p *prefs.Prefs) error {
				return p.SetTemplate(args[0], args[1])
			})
			if err != nil {
				return err
			}
			okColor.Fprint(c.stdout, "saved")
			fmt.Fprintf(c.stdout, " template for %s\n", args[0])
			return nil
		},
	}

	unset := &cobra.Command{
		Use:   "unset <type>",
		Short: "Remove the template for a record type",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			_, err := prefs.Update(c.prefsPath, func(p *prefs.Prefs) error {
				return p.SetTemplate(args[0], "")
			})
			if err != nil {
				return err
			}
			okColor.Fprint(c.stdout, "removed")
			fmt.Fprintf(c.stdout, " template for %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, set, unset)
	return cmd
}
