package env

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/wfriedl/PE200"
	"github.com/wfriedl/PE200/comm/serial"
)

type Environment struct {
	SerialPort string
	Baud       int
	Limits     pe200.Limits
}

// LoadEnv reads configuration from .env and the process environment.
// Every setting has a default: an empty SERIAL_PORT means the pump is
// located by probing.
func LoadEnv(logger *zap.Logger) *Environment {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", zap.Error(err))
	}
	e := &Environment{
		SerialPort: os.Getenv("SERIAL_PORT"),
		Baud:       intVal(logger, "SERIAL_BAUD", serial.Baud),
		Limits: pe200.Limits{
			Min:   intVal(logger, "MIN_PRESSURE", pe200.DefaultLimits.Min),
			Max:   intVal(logger, "MAX_PRESSURE", pe200.DefaultLimits.Max),
			Ready: intVal(logger, "READY_PRESSURE", pe200.DefaultLimits.Ready),
		},
	}
	return e
}

func intVal(logger *zap.Logger, name string, def int) int {
	v, found := os.LookupEnv(name)
	if !found {
		return def
	}
	parsed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		logger.Fatal("failed to parse "+name, zap.Error(err))
	}
	return int(parsed)
}
