package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go-ml.dev/pkg/bankloan/analysis"
	"go-ml.dev/pkg/bankloan/report"
	"go-ml.dev/pkg/bankloan/store"
	"go-ml.dev/pkg/iokit"
	"go-ml.dev/pkg/zorros/zlog"
	"go-ml.dev/pkg/zorros/zorros"
)

func (a *app) reportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Run the whole analysis and write the report",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := analysis.Run(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			if err = a.write(cmd, r); err != nil {
				return err
			}
			if !a.cfg.Output.Store || a.cfg.Output.DB == "" {
				return nil
			}
			s, err := store.Open(a.cfg.Output.DB)
			if err != nil {
				return err
			}
			defer s.Close()
			if err = s.SaveRun(cmd.Context(), r); err != nil {
				return err
			}
			zlog.Info(fmt.Sprintf("run %v saved to %v", r.RunID, s.Path()))
			return nil
		},
	}
}

func (a *app) exploreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Profile the cleaned dataset without fitting models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := analysis.Explore(cmd.Context(), a.cfg)
			if err != nil {
				return err
			}
			return a.write(cmd, r)
		},
	}
}

func (a *app) runsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "runs [run-id]",
		Short: "List stored runs or results of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(a.cfg.Output.DB)
			if err != nil {
				return err
			}
			defer s.Close()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			defer w.Flush()
			if len(args) == 0 {
				runs, err := s.Runs(cmd.Context())
				if err != nil {
					return err
				}
				fmt.Fprintln(w, "ID\tCREATED\tSOURCE\tSEED\tROWS\tBEST\tRECALL")
				for _, r := range runs {
					fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.3f\n",
						r.ID, r.Created.Local().Format("2006-01-02 15:04"), r.Source, r.Seed, r.Rows, r.BestModel, r.BestRecall)
				}
				return nil
			}
			results, err := s.Results(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if len(results) == 0 {
				return zorros.Errorf("run %v is not found", args[0])
			}
			fmt.Fprintln(w, "VARIANT\tMODEL\tRECALL\tSPECIFICITY\tPRECISION\tF1\tACCURACY\tAUC")
			for _, x := range results {
				fmt.Fprintf(w, "%s\t%s\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
					x.Variant, x.Model, x.Recall, x.Specificity, x.Precision, x.F1, x.Accuracy, x.AUC)
			}
			return nil
		},
	}
}

// write sends the report to configured files, and to stdout when no markdown file is given
func (a *app) write(cmd *cobra.Command, r *report.Report) error {
	if a.cfg.Output.Xlsx != "" {
		if err := r.WriteXLSX(iokit.File(a.cfg.Output.Xlsx)); err != nil {
			return err
		}
	}
	if a.cfg.Output.Markdown != "" {
		if err := r.WriteMarkdown(iokit.File(a.cfg.Output.Markdown)); err != nil {
			return err
		}
		if !a.render {
			return nil
		}
	}
	text := r.Markdown()
	if a.render {
		var err error
		if text, err = r.Render(a.width); err != nil {
			return err
		}
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
