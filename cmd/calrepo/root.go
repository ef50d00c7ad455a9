package main

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/churchcal/calrepo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// app holds the state shared by all commands.
type app struct {
	v      *viper.Viper
	out    io.Writer
	errOut io.Writer
	logger *log.Logger
}

func newApp(out, errOut io.Writer) *app {
	v := viper.New()
	v.SetEnvPrefix("CALREPO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	v.SetDefault("config", "calendars.yml")
	v.SetDefault("data", ".")
	v.SetDefault("verbose", false)

	return &app{v: v, out: out, errOut: errOut}
}

func (a *app) root() *cobra.Command {
	root := &cobra.Command{
		Use:   "calrepo",
		Short: "Inspect a repository of liturgical calendars",
		Long: headerStyle.Render("calrepo") + ` builds liturgical calendars from layered sanctorale data.

Calendars are defined in a YAML file (--config, $CALREPO_CONFIG). File data
sources are resolved against the data directory (--data, $CALREPO_DATA).`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if a.v.GetBool("verbose") {
				level = log.DebugLevel
			}
			a.logger = log.NewWithOptions(a.errOut, log.Options{Prefix: "calrepo", Level: level})
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)

	flags := root.PersistentFlags()
	flags.String("config", "calendars.yml", "calendar definitions file")
	flags.String("data", ".", "directory file data sources are resolved against")
	flags.BoolP("verbose", "v", false, "enable debug logging")
	_ = a.v.BindPFlag("config", flags.Lookup("config"))
	_ = a.v.BindPFlag("data", flags.Lookup("data"))
	_ = a.v.BindPFlag("verbose", flags.Lookup("verbose"))

	root.AddCommand(a.listCmd(), a.showCmd(), a.checkCmd(), a.dayCmd())
	return root
}

func (a *app) configPath() string {
	return a.v.GetString("config")
}

func (a *app) dataPath() string {
	return a.v.GetString("data")
}

func (a *app) load(cmd *cobra.Command) (*calrepo.Repository, error) {
	return calrepo.Load(cmd.Context(), a.configPath(), a.dataPath(), calrepo.WithLogger(a.logger))
}
