package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	gradTime  float64
	gradRate  float64
	gradFrom  string
	gradTo    string
	gradCurve int
)

// gradientCmd represents the gradient command
var gradientCmd = &cobra.Command{
	Use:   "gradient",
	Short: "Program and start a composition gradient",
	Long: `Program a three-step gradient: hold the initial composition, ramp
to the final composition over the given time with the given curve, then
hold. The pump is started and injected past the initial hold step.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		initial, err := parseMix(gradFrom)
		if err != nil {
			logger.Fatal("bad initial mix", zap.Error(err))
		}
		final, err := parseMix(gradTo)
		if err != nil {
			logger.Fatal("bad final mix", zap.Error(err))
		}
		ctrl, closePort := connect(logger)
		defer closePort()

		if err := ctrl.Gradient(gradTime, gradRate, initial, final, gradCurve); err != nil {
			logger.Fatal("gradient failed", zap.Error(err))
		}
		fmt.Println("gradient running")
	},
}

func init() {
	rootCmd.AddCommand(gradientCmd)
	gradientCmd.Flags().Float64VarP(&gradTime, "time", "t", 10, "ramp time in minutes")
	gradientCmd.Flags().Float64VarP(&gradRate, "rate", "r", 1.0, "flow rate in mL/min")
	gradientCmd.Flags().StringVar(&gradFrom, "from", "0,0,0,100", "initial proportions %A,%B,%C,%D")
	gradientCmd.Flags().StringVar(&gradTo, "to", "100,0,0,0", "final proportions %A,%B,%C,%D")
	gradientCmd.Flags().IntVarP(&gradCurve, "curve", "c", 1, "ramp curve shape, 1-9")
}
