// Command bankloan analyses which bank customers accept a personal loan offer
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go-ml.dev/pkg/bankloan/config"
)

// app holds settings shared by all subcommands
type app struct {
	v      *viper.Viper
	cfg    *config.Config
	dir    string // directory with bankloan.yml
	render bool   // render markdown for terminal
	width  int    // terminal word wrap
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.New()}
	root := &cobra.Command{
		Use:   "bankloan",
		Short: "Personal loan acceptance analysis",
		Long: `Profile the bank customer dataset, fit logistic regression and decision
tree on resampled training sets and compare their recall on the same test rows.

Settings are read from bankloan.yml in the config directory, BANKLOAN_* environment
variables and flags, in increasing priority.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
			a.cfg, err = config.Load(a.v, a.dir)
			return
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&a.dir, "config", ".", "directory containing bankloan.yml")
	pf.String("data", "", "customer dataset, .csv or .csv.xz")
	pf.String("out", "", "write markdown report to the file")
	pf.String("xlsx", "", "write spreadsheet report to the file")
	pf.String("db", "", "results history database")
	pf.Int64("seed", 0, "random seed of split and resampling")
	pf.Int("workers", 0, "count of models fitted in parallel")
	pf.Bool("verbose", false, "log every training iteration")
	pf.BoolVar(&a.render, "render", false, "render report for terminal")
	pf.IntVar(&a.width, "width", 100, "terminal width for rendered report")
	for key, flag := range map[string]string{
		"data.path":       "data",
		"output.markdown": "out",
		"output.xlsx":     "xlsx",
		"output.db":       "db",
		"split.seed":      "seed",
		"workers":         "workers",
		"verbose":         "verbose",
	} {
		if err := a.v.BindPFlag(key, pf.Lookup(flag)); err != nil {
			panic(err)
		}
	}

	root.AddCommand(a.reportCmd(), a.exploreCmd(), a.runsCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
