package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Query the pump's run state, composition and pressure",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		ctrl, closePort := connect(logger)
		defer closePort()

		report, err := ctrl.Status()
		if err != nil {
			logger.Fatal("status query failed", zap.Error(err))
		}
		state, err := report.State()
		if err != nil {
			logger.Fatal("bad status report", zap.Error(err))
		}
		pressure, err := report.Pressure()
		if err != nil {
			logger.Fatal("bad status report", zap.Error(err))
		}
		mix := report.Proportions()
		fmt.Printf("state:    %s (%d)\n", state, int(state))
		fmt.Printf("time:     %s total, %s in step\n", report.TotalTime(), report.StepTime())
		fmt.Printf("flow:     %s mL/min\n", report.Flow())
		fmt.Printf("mix:      A=%s B=%s C=%s D=%s\n", mix[0], mix[1], mix[2], mix[3])
		fmt.Printf("pressure: %d\n", pressure)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
