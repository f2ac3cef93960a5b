package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/lamplight/datain"
	"github.com/five82/lamplight/internal/app"
)

// errReported marks a failure that has already been printed.
var errReported = errors.New("reported")

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return execute(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	c := &cli{stdout: stdout, stderr: stderr}
	root := c.rootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			errColor.Fprintf(stderr, "lamplight: %v\n", err)
		}
		return 1
	}
	return 0
}

type cli struct {
	stdout io.Writer
	stderr io.Writer

	configPath   string
	prefsPath    string
	jsonOutput   bool
	echoReturned bool
	ackMessages  bool
}

func (c *cli) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "lamplight",
		Short: "Command line client for the Lamplight database API",
		Long: `lamplight fetches records from a Lamplight database and submits
attendance, referrals, profiles and group memberships.

Credentials come from ~/.config/lamplight/config.toml, a .env file next to
it, or the LAMPLIGHT_KEY, LAMPLIGHT_ID and LAMPLIGHT_PROJECT variables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default ~/.config/lamplight/config.toml)")
	flags.StringVar(&c.prefsPath, "prefs", "", "preferences file (default ~/.config/lamplight/prefs.toml)")
	flags.BoolVar(&c.jsonOutput, "json", false, "print results as JSON")
	flags.BoolVar(&c.echoReturned, "echo-returned-id", false, "report a bare number returned by a submission as the saved id")
	flags.BoolVar(&c.ackMessages, "ack-messages", false, "treat a submission answered with only a message as saved")

	root.AddCommand(
		c.fetchCommand(),
		c.attendCommand(),
		c.referralCommand(),
		c.profileCommand(),
		c.relateCommand(),
		c.groupCommand(),
		c.browseCommand(),
		c.logsCommand(),
		c.templateCommand(),
	)
	return root
}

func (c *cli) policy() datain.Policy {
	p := datain.DefaultPolicy()
	if c.echoReturned {
		p.Echo = datain.EchoReturnedID
	}
	p.MessageAcknowledges = c.ackMessages
	return p
}

// withEnv sets up the API environment, runs fn and releases the environment.
func (c *cli) withEnv(interactive bool, fn func(*app.Env) error) error {
	policy := c.policy()
	env, err := app.Setup(app.Options{
		ConfigPath:  c.configPath,
		PrefsPath:   c.prefsPath,
		Interactive: interactive,
		Policy:      &policy,
	})
	if err != nil {
		return err
	}
	runErr := fn(env)
	if err := env.Close(); err != nil && runErr == nil {
		return fmt.Errorf("close: %w", err)
	}
	return runErr
}
