package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zapponejosh/arvelie/internal/view"
)

func newConvertCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <date>...",
		Short: "Convert ISO dates to Arvelie and Arvelie dates to ISO",
		Example: `  arvelie convert 2025-06-21
  arvelie convert 25M03 24+01 --output yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(args)
		},
	}
}

func (c *cli) runConvert(args []string) error {
	dates := make([]view.Date, 0, len(args))
	lines := make([]string, 0, len(args))

	for _, arg := range args {
		d, err := c.parse(arg)
		if err != nil {
			return err
		}
		dates = append(dates, view.NewDate(d))
		lines = append(lines, fmt.Sprintf("%s  %s", d.GregorianString(), d.String()))
	}

	if len(dates) == 1 {
		return c.render(dates[0], lines[0])
	}
	return c.render(dates, strings.Join(lines, "\n"))
}
