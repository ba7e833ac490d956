package cmd

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ltes/figure"
	"ltes/study"
)

var refineCmd = &cobra.Command{
	Use:   "refine",
	Short: "Mesh refinement study of energy conservation and convergence",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyRunFlags(cmd)
		f := cmd.Flags()
		if f.Changed("min") {
			cfg.MinLevel, _ = f.GetInt("min")
		}
		if f.Changed("max") {
			cfg.MaxLevel, _ = f.GetInt("max")
		}
		if f.Changed("set") {
			cfg.RefinementSet = cfg.ParameterSet
		}
		format, err := figure.GetFormat(cfg.Format)
		if err != nil {
			return err
		}
		sc, err := cfg.Study()
		if err != nil {
			return err
		}
		res, err := study.Execute(cmd.Context(), sc)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return err
		}
		if err := res.WriteCSV(filepath.Join(cfg.OutputDir, "mesh_refinement.csv")); err != nil {
			return err
		}
		fig, err := figure.ConservationConvergence(res, format)
		if err != nil {
			return err
		}
		if err := fig.Save(filepath.Join(cfg.OutputDir, "convergence_conservation_error.png"), cfg.DPI); err != nil {
			return err
		}
		fig, err = figure.VariableConvergence(res, format)
		if err != nil {
			return err
		}
		if err := fig.Save(filepath.Join(cfg.OutputDir, "convergence_variables.png"), cfg.DPI); err != nil {
			return err
		}
		log.WithField("dir", cfg.OutputDir).Info("plots saved")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refineCmd)
	addRunFlags(refineCmd)
	refineCmd.Flags().Int("min", 0, "coarsest refinement level")
	refineCmd.Flags().Int("max", 4, "finest refinement level")
}
