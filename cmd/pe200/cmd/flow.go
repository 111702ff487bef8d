package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wfriedl/PE200"
)

var (
	flowRate float64
	flowMix  string
)

// flowCmd represents the flow command
var flowCmd = &cobra.Command{
	Use:   "flow",
	Short: "Program and start an isocratic method",
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger()
		mix, err := parseMix(flowMix)
		if err != nil {
			logger.Fatal("bad mix", zap.Error(err))
		}
		ctrl, closePort := connect(logger)
		defer closePort()

		if err := ctrl.Flow(flowRate, mix); err != nil {
			logger.Fatal("flow failed", zap.Error(err))
		}
		fmt.Println("pumping")
	},
}

func init() {
	rootCmd.AddCommand(flowCmd)
	flowCmd.Flags().Float64VarP(&flowRate, "rate", "r", 1.0, "flow rate in mL/min")
	flowCmd.Flags().StringVarP(&flowMix, "mix", "m", "0,0,0,100", "solvent proportions %A,%B,%C,%D")
}

// parseMix parses a comma-separated A,B,C,D composition.
func parseMix(s string) (pe200.Proportions, error) {
	var mix pe200.Proportions
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return mix, fmt.Errorf("mix needs 4 comma-separated values, got %q", s)
	}
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return mix, fmt.Errorf("mix value %q: %w", part, err)
		}
		mix[i] = v
	}
	return mix, nil
}
