package main

import (
	"os"
	"strconv"

	"lodge/config"
	"lodge/helper"
	"lodge/shared/logger"

	"github.com/rs/zerolog/log"
)

const (
	argLength      = 2
	forceArgLength = 3
	actionForce    = "force"
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msg("Migration action is required: up, down, step-up, drop, version or force <version>")
	}

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	if os.Args[1] == actionForce {
		if len(os.Args) < forceArgLength {
			log.Fatal().Msg("force needs the version to mark as applied")
		}

		version, err := strconv.Atoi(os.Args[2])
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid migration version")
		}

		if err = helper.Force(cfg, version); err != nil {
			log.Fatal().Err(err).Msg("Failed to force migration version")
		}

		return
	}

	if err := helper.Runner(cfg, helper.Action(os.Args[1])); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
}
