package main

import (
	"github.com/spf13/cobra"

	"github.com/zapponejosh/arvelie/internal/season"
	"github.com/zapponejosh/arvelie/internal/view"
)

func newSeasonCmd(c *cli) *cobra.Command {
	var (
		hour        int
		names       bool
		traditional bool
	)

	cmd := &cobra.Command{
		Use:   "season [date]",
		Short: "Classify a date and hour into a season and a period of the day",
		Long: `Classify a date and hour into a season and a period of the day.

The date is ISO or Arvelie and defaults to today; --hour defaults to the
current hour. Without --names the season and period print as numbers 0-3.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := c.current()

			month := now.Month()
			if len(args) == 1 {
				d, err := c.parse(args[0])
				if err != nil {
					return err
				}
				month = d.Gregorian().Month
			}
			if !cmd.Flags().Changed("hour") {
				hour = now.Hour()
			}

			result, err := season.Classify(month, hour, traditional)
			if err != nil {
				return err
			}

			s := view.NewSeason(result, month, hour, names)
			return c.render(s, s.Season+" "+s.Period)
		},
	}

	cmd.Flags().IntVar(&hour, "hour", 0, "hour of the day 0-23")
	cmd.Flags().BoolVar(&names, "names", true, "print names instead of numbers")
	cmd.Flags().BoolVar(&traditional, "traditional", true, "rotate seasons every month")
	return cmd
}
