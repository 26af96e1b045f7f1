package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/arvelie/internal/arvelie"
)

// cli holds the flag values and collaborators shared by every subcommand.
type cli struct {
	out    io.Writer
	now    func() time.Time
	offset int
	output string
	tz     string
}

func newRootCmd(out io.Writer, now func() time.Time) *cobra.Command {
	c := &cli{out: out, now: now}

	rootCmd := &cobra.Command{
		Use:   "arvelie",
		Short: "Convert dates to and from the Arvelie calendar",
		Long: `Arvelie splits the year into 26 months of 14 days (A-Z, days 00-13)
followed by a year-day (+00) and, in leap years, a leap-day (+01).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.validate()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.IntVar(&c.offset, "offset", 2000, "year offset added to two-digit Arvelie years")
	flags.StringVarP(&c.output, "output", "o", outputText, "output format: text, json or yaml")
	flags.StringVar(&c.tz, "tz", "", "IANA time zone for \"now\" (default local)")

	rootCmd.AddCommand(
		newConvertCmd(c),
		newTodayCmd(c),
		newSeasonCmd(c),
	)

	return rootCmd
}

func (c *cli) validate() error {
	if err := arvelie.ValidateYearOffset(c.offset); err != nil {
		return fmt.Errorf("--offset must be a multiple of 100 between 0 and %d, got %d", arvelie.MaxYearOffset, c.offset)
	}
	switch c.output {
	case outputText, outputJSON, outputYAML:
	default:
		return fmt.Errorf("--output must be one of: text, json, yaml; got %q", c.output)
	}
	if c.tz != "" {
		if _, err := time.LoadLocation(c.tz); err != nil {
			return fmt.Errorf("--tz %q is not a known time zone: %w", c.tz, err)
		}
	}
	return nil
}

// current returns the clock's time in the --tz zone.
func (c *cli) current() time.Time {
	now := c.now()
	if c.tz == "" {
		return now
	}
	loc, err := time.LoadLocation(c.tz)
	if err != nil {
		return now
	}
	return now.In(loc)
}

func (c *cli) parse(s string) (*arvelie.Date, error) {
	return arvelie.Parse(s, arvelie.WithYearOffset(c.offset))
}
