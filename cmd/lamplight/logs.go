package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"

	"github.com/five82/lamplight/internal/config"
	"github.com/five82/lamplight/internal/logtail"
)

func (c *cli) logsCommand() *cobra.Command {
	var (
		lines int
		level string
	)
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the end of the configured log file",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			minLevel, err := zapcore.ParseLevel(level)
			if err != nil {
				return err
			}
			cfg, err := config.Load(c.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if cfg.LogFile == "" {
				return errors.New("no log_file configured; logs are written to stderr")
			}
			entries, err := logtail.Read(cfg.LogFile, lines, minLevel)
			if err != nil {
				return err
			}
			printLogEntries(c.stdout, entries)
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "debug", "minimum level to show")
	return cmd
}

var levelColors = map[zapcore.Level]*color.Color{
	zapcore.DebugLevel: color.New(color.FgCyan),
	zapcore.InfoLevel:  color.New(color.FgGreen),
	zapcore.WarnLevel:  color.New(color.FgYellow),
	zapcore.ErrorLevel: color.New(color.FgRed, color.Bold),
}

func printLogEntries(w io.Writer, entries []logtail.Entry) {
	for _, e := range entries {
		c, ok := levelColors[e.Level]
		if !ok {
			c = errColor
		}
		c.Fprintln(w, e.Line)
	}
}
