package cmd

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ltes/calculator"
	"ltes/dataset"
	"ltes/figure"
	"ltes/solution"
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare the full and reduced models, and optionally experimental data",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyRunFlags(cmd)
		format, err := figure.GetFormat(cfg.Format)
		if err != nil {
			return err
		}
		var sols []*solution.Solution
		defer func() {
			for _, s := range sols {
				s.Model.Close()
			}
		}()
		for _, name := range []string{calculator.FullName, calculator.ReducedName} {
			sol, err := solveModel(cmd.Context(), name)
			if err != nil {
				return err
			}
			sols = append(sols, sol)
		}

		times, _ := cmd.Flags().GetInt("times")
		save := func(fig *figure.Figure, err error, name string) error {
			if err != nil {
				return err
			}
			return fig.Save(filepath.Join(cfg.OutputDir, name), cfg.DPI)
		}
		end := sols[0].Times[len(sols[0].Times)-1]
		fig, err := figure.Compare0D(sols, nil, nil, format)
		if err := save(fig, err, "compare_0D.png"); err != nil {
			return err
		}
		fig, err = figure.Compare1D(sols, nil, nil, figure.Spread(end, times), format)
		if err := save(fig, err, "compare_1D.png"); err != nil {
			return err
		}
		fig, err = figure.Compare2D(sols, "", "", figure.Spread(end, 4), nil, format)
		if err := save(fig, err, "compare_2D.png"); err != nil {
			return err
		}

		dir, _ := cmd.Flags().GetString("data")
		if dir != "" {
			data, err := dataset.Load(dir, nil)
			if err != nil {
				return err
			}
			fig, err := figure.CompareData(sols[0], data, format)
			if err := save(fig, err, "comparison_data.png"); err != nil {
				return err
			}
		}
		log.WithField("dir", cfg.OutputDir).Info("plots saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
	addRunFlags(compareCmd)
	compareCmd.Flags().Int("times", 5, "number of profile times")
	compareCmd.Flags().String("data", "", "directory of experimental HTF/PCM CSV files")
}
