package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/churchcal/calrepo"
	"github.com/churchcal/calrepo/sanctorale"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List calendars and their data sources",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.load(cmd)
			if err != nil {
				return err
			}

			fmt.Fprintln(a.out, headerStyle.Render("Calendars"))
			for _, name := range repo.Keys() {
				def, _ := repo.Definition(name)
				specs := make([]string, len(def.Sanctorale))
				for i, s := range def.Sanctorale {
					specs[i] = s.String()
				}
				fmt.Fprintf(a.out, "  %s %s\n", nameStyle.Render(name), sourceStyle.Render(strings.Join(specs, " < ")))
			}
			return nil
		},
	}
}

func (a *app) showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show NAME",
		Short: "Print a calendar's raw definition as YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, err := a.load(cmd)
			if err != nil {
				return err
			}

			entry, ok := repo.Metadata()[args[0]]
			if !ok {
				return &calrepo.KeyNotFoundError{Name: args[0]}
			}
			out, err := yaml.Marshal(map[string]any{args[0]: entry})
			if err != nil {
				return fmt.Errorf("encoding definition: %w", err)
			}
			_, err = a.out.Write(out)
			return err
		},
	}
}

func (a *app) dayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "day NAME [DATE]",
		Short: "Show the celebrations of a date (default today)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now()
			if len(args) == 2 {
				d, err := time.Parse(time.DateOnly, args[1])
				if err != nil {
					return fmt.Errorf("invalid date %q: want YYYY-MM-DD", args[1])
				}
				date = d
			}

			repo, err := a.load(cmd)
			if err != nil {
				return err
			}
			cal, err := repo.Lookup(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			day := cal.Day(date)
			fmt.Fprintf(a.out, "%s %s\n", headerStyle.Render(day.Date.Format("Monday, 2 January 2006")), sourceStyle.Render(cal.Name()))
			celebrations := day.Celebrations()
			if len(celebrations) == 0 {
				fmt.Fprintln(a.out, rankStyle.Render("  ferial day"))
				return nil
			}
			for _, c := range celebrations {
				fmt.Fprintf(a.out, "  %s %s\n", colourStyle(c.Colour).Render(c.Title), rankStyle.Render(describe(c)))
			}
			return nil
		},
	}
}

func describe(c sanctorale.Celebration) string {
	s := fmt.Sprintf("(%s, %s)", strings.ReplaceAll(string(c.Rank), "_", " "), c.Colour)
	if c.Symbol != "" {
		s += " #" + c.Symbol
	}
	return s
}
