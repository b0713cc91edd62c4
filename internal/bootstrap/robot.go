package bootstrap

import (
	"errors"
	"log/slog"

	"go.uber.org/fx"

	"github.com/pwspen/vlmcar/internal/drive"
	"github.com/pwspen/vlmcar/internal/robot"
)

// ProvideSim is the only robot backend today. Hardware camera, range
// sensor, and motor drivers plug in here by providing their own
// RangeSensor, Camera, and Actuator implementations.
func ProvideSim(cfg *Config, logger *slog.Logger) (*robot.Sim, error) {
	if !cfg.Sim {
		return nil, errors.New("no hardware robot backend configured, set SIM=true")
	}
	return robot.NewSim(logger), nil
}

func ProvideRangeSensor(s *robot.Sim) robot.RangeSensor { return s }

func ProvideCamera(s *robot.Sim) robot.Camera { return s }

func ProvideActuator(s *robot.Sim) drive.Actuator { return s }

var RobotModule = fx.Options(
	fx.Provide(
		ProvideSim,
		ProvideRangeSensor,
		ProvideCamera,
		ProvideActuator,
	),
)
