package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"ltes/dataset"
	"ltes/solution"
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Solve one model and print its final state",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyRunFlags(cmd)
		if cmd.Flags().Changed("model") {
			cfg.Model, _ = cmd.Flags().GetString("model")
		}
		sol, err := solveModel(cmd.Context(), cfg.Model)
		if err != nil {
			return err
		}
		defer sol.Model.Close()

		last, err := sol.Last()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "model:                      %s (%s)\n", sol.Model.Name(), sol.Solver)
		fmt.Fprintf(out, "time:                       %g s\n", last.Time)
		fmt.Fprintf(out, "outlet temperature:         %.3f degC\n", last.OutletTemperature-solution.Kelvin)
		fmt.Fprintf(out, "state of charge:            %.4f\n", last.AveragedStateOfCharge)
		fmt.Fprintf(out, "stored energy:              %.6g J.m-2\n", last.StoredEnergy)
		fmt.Fprintf(out, "energy conservation error:  %.3g %%\n", last.RelativeConservationError)
		fmt.Fprintf(out, "solve time:                 %s\n", sol.SolveTime)

		dir, _ := cmd.Flags().GetString("export")
		if dir == "" {
			return nil
		}
		return export(sol, dir)
	},
}

// export writes the HTF and PCM temperatures at the thermocouple positions in
// the experimental data format.
func export(sol *solution.Solution, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	p := sol.Model.Params()
	minutes, err := sol.Scalar(solution.TimeMin)
	if err != nil {
		return err
	}
	for _, x := range dataset.DefaultPositions {
		htf := &dataset.Series{Position: x, Time: minutes}
		pcm := &dataset.Series{Position: x, Time: minutes}
		for _, t := range sol.Times {
			tf, err := sol.FluidTemperatureAt(t, x*p.PipeLength)
			if err != nil {
				return err
			}
			tc, err := sol.PCMTemperatureAt(t, x*p.PipeLength, 0.8*p.CapsuleRadius)
			if err != nil {
				return err
			}
			htf.Temperature = append(htf.Temperature, tf-solution.Kelvin)
			pcm.Temperature = append(pcm.Temperature, tc-solution.Kelvin)
		}
		if err := dataset.Write(filepath.Join(dir, dataset.FileName(dataset.HTF, x)), dataset.HTF, htf); err != nil {
			return err
		}
		if err := dataset.Write(filepath.Join(dir, dataset.FileName(dataset.PCM, x)), dataset.PCM, pcm); err != nil {
			return err
		}
	}
	log.WithField("dir", dir).Info("temperatures exported")
	return nil
}

func init() {
	rootCmd.AddCommand(solveCmd)
	addRunFlags(solveCmd)
	solveCmd.Flags().StringP("model", "m", "", "model: full or reduced")
	solveCmd.Flags().String("export", "", "directory for HTF/PCM temperature CSV files")
}
