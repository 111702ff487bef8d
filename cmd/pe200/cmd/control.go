package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wfriedl/PE200"
)

// control verbs are thin wrappers around single pump commands.
var controlVerbs = []struct {
	use   string
	short string
	run   func(*pe200.Controller) error
}{
	{"start", "Start executing the loaded method (from SHTDN only)", (*pe200.Controller).Start},
	{"inject", "Advance from step 0 to step 1", (*pe200.Controller).Inject},
	{"stop", "Stop flow immediately", (*pe200.Controller).Stop},
	{"advance", "Advance to the next run step", (*pe200.Controller).Advance},
	{"resume", "Resume from hold, or SHTDN to EQUIL without flow", (*pe200.Controller).Resume},
	{"hold", "Pause time and gradient without stopping flow", (*pe200.Controller).Hold},
	{"quit", "Reset the current method to step 0, time 0", (*pe200.Controller).Quit},
	{"restart", "Safely halt the current method", (*pe200.Controller).Restart},
	{"seize", "Seize external control", (*pe200.Controller).Seize},
	{"release", "Release external control", (*pe200.Controller).Release},
}

// infoCmd represents the info command
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Query the pump's version line",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		ctrl, closePort := connect(logger)
		defer closePort()
		line, err := ctrl.Info()
		if err != nil {
			logger.Fatal("info failed", zap.Error(err))
		}
		fmt.Println(line)
	},
}

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Interrupt the pump and re-establish control",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		ctrl, closePort := connect(logger)
		defer closePort()
		if err := ctrl.Reset(resetSeize); err != nil {
			logger.Fatal("reset failed", zap.Error(err))
		}
		fmt.Println("pump reset")
	},
}

var resetSeize bool

func init() {
	for _, verb := range controlVerbs {
		op := verb.run
		rootCmd.AddCommand(&cobra.Command{
			Use:   verb.use,
			Short: verb.short,
			Run: func(cmd *cobra.Command, args []string) {
				logger := newLogger()
				ctrl, closePort := connect(logger)
				defer closePort()
				if err := op(ctrl); err != nil {
					logger.Fatal(cmd.Use+" failed", zap.Error(err))
				}
			},
		})
	}
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(resetCmd)
	resetCmd.Flags().BoolVar(&resetSeize, "seize", false, "re-seize control after the reset")
}
