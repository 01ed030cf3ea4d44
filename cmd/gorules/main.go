// Copyright ©2020 BlinnikovAA. All rights reserved.
// This file is part of yagogame.
//
// yagogame is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// yagogame is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with yagogame.  If not, see <https://www.gnu.org/licenses/>.

// Command gorules plays a game of go in the terminal, or plays many random
// games concurrently to check the rules engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/yagoggame/gorules/config"
)

func main() {
	if err := run(); err != nil {
		log.Error().Err(err).Msg("gorules failed")
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", getEnvOrDefault("GORULES_CONFIG", ""), "path to the YAML config file")
	selfPlay := flag.Bool("selfplay", false, "play random games and check the rules engine after every move")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	level, err := cfg.Log.ZerologLevel()
	if err != nil {
		return err
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *selfPlay {
		stats, err := runSelfPlay(ctx, cfg, logger)
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, stats)
		return nil
	}
	return playInteractive(ctx, os.Stdin, os.Stdout, cfg, logger)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
