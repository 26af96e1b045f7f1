package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/arvelie/internal/arvelie"
	"github.com/zapponejosh/arvelie/internal/view"
)

func newTodayCmd(c *cli) *cobra.Command {
	var traditional bool

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Print today's date in both calendars with its season",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := c.current()
			d, err := arvelie.FromTime(now)
			if err != nil {
				return err
			}

			t := view.NewToday(d, now, traditional)
			return c.render(t, fmt.Sprintf("%s  %s  %s %s",
				t.Date.Arvelie, t.Date.ISO, t.Season.Season, t.Season.Period))
		},
	}

	cmd.Flags().BoolVar(&traditional, "traditional", true, "rotate seasons every month")
	return cmd
}
