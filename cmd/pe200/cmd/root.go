package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/wfriedl/PE200"
	"github.com/wfriedl/PE200/comm/serial"
	"github.com/wfriedl/PE200/env"
)

var (
	portName string
	verbose  bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "pe200",
	Short: "pe200 controls a Perkin Elmer 200-series LC pump over a serial line",
	Long: `pe200 programs and controls a Perkin Elmer 200-series quaternary
LC pump. Without --port the first serial device that identifies as a
pump is used.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&portName, "port", "p", "", "serial device (default: probe all ports)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}

func newLogger() *zap.Logger {
	var logger *zap.Logger
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

// connect locates the pump and wires up a controller. The returned
// close function releases the serial port.
func connect(logger *zap.Logger) (*pe200.Controller, func()) {
	environ := env.LoadEnv(logger)
	if portName == "" {
		portName = environ.SerialPort
	}

	var port *serial.Port
	var err error
	if portName != "" {
		port, err = serial.Probe(portName)
		if err != nil {
			logger.Fatal("failed to open pump", zap.String("port", portName), zap.Error(err))
		}
	} else {
		var name string
		port, name, err = serial.Find()
		if err != nil {
			logger.Fatal("failed to find pump", zap.Error(err))
		}
		logger.Info("found pump", zap.String("port", name))
	}

	ctrl := pe200.New(port, environ.Limits, logger)
	return ctrl, func() {
		if err := port.Close(); err != nil {
			logger.Error("failed to close port", zap.Error(err))
		}
	}
}
