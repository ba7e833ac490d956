package cmd

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"

	"ltes/model"
	"ltes/server"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Stream simulations to websocket clients on /ws",
	RunE: func(cmd *cobra.Command, args []string) error {
		applyRunFlags(cmd)
		if cmd.Flags().Changed("addr") {
			cfg.Addr, _ = cmd.Flags().GetString("addr")
		}
		env := model.Env{
			Model:         cfg.Model,
			ParameterSet:  cfg.ParameterSet,
			Overrides:     cfg.Parameters,
			CapsulePoints: cfg.CapsulePoints,
			PipePoints:    cfg.PipePoints,
			EndTime:       cfg.EndTime,
			Outputs:       cfg.Outputs,
			Solver:        cfg.Solver,
		}
		s, err := server.NewServer(cfg.Addr, upgrader, server.Options{
			Env:           env,
			Solver:        cfg.SolverConfig(),
			ParameterFile: cfg.ParameterFile,
			Workers:       cfg.Workers,
			History:       cfg.History,
			HistoryKind:   cfg.HistoryKind,
		})
		if err != nil {
			return err
		}
		return s.Serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	addRunFlags(serveCmd)
	serveCmd.Flags().String("addr", ":9000", "listen address")
}
