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

// Package config loads settings of the gorules command from a YAML file
// and GORULES_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/game/field"
	"github.com/yagoggame/gorules/game/session"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment variables overriding the file.
const EnvPrefix = "GORULES_"

var (
	// ErrRead error occurs when the config file can't be read
	ErrRead = errors.New("failed to read config")
	// ErrParse error occurs when the config file is not valid YAML
	ErrParse = errors.New("failed to parse config")
	// ErrDecode error occurs when values don't fit the config fields
	ErrDecode = errors.New("failed to decode config")
	// ErrInvalid error occurs when a value is out of range
	ErrInvalid = errors.New("invalid config value")
)

// Board describes the field of a new game.
type Board struct {
	SizeX    int `mapstructure:"size_x" yaml:"size_x"`
	SizeY    int `mapstructure:"size_y" yaml:"size_y"`
	Handicap int `mapstructure:"handicap" yaml:"handicap"`
}

// Players holds names shown for the sides.
type Players struct {
	Black string `mapstructure:"black" yaml:"black"`
	White string `mapstructure:"white" yaml:"white"`
}

// Log configures the logger.
type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// SelfPlay configures the random games audit.
type SelfPlay struct {
	Games    int    `mapstructure:"games" yaml:"games"`
	Workers  int    `mapstructure:"workers" yaml:"workers"`
	MaxMoves int    `mapstructure:"max_moves" yaml:"max_moves"`
	Seed     uint64 `mapstructure:"seed" yaml:"seed"`
}

// Config is the full configuration of the command.
type Config struct {
	Board    Board    `mapstructure:"board" yaml:"board"`
	Players  Players  `mapstructure:"players" yaml:"players"`
	Log      Log      `mapstructure:"log" yaml:"log"`
	SelfPlay SelfPlay `mapstructure:"self_play" yaml:"self_play"`
}

// Default returns the configuration used for keys nobody set.
func Default() *Config {
	return &Config{
		Board:    Board{SizeX: 9, SizeY: 9},
		Players:  Players{Black: "Black", White: "White"},
		Log:      Log{Level: "info"},
		SelfPlay: SelfPlay{Games: 100, Workers: 4, MaxMoves: 400, Seed: 1},
	}
}

// Load reads the file at path, if any, and applies the process environment.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		var err error
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrRead, err)
		}
	}
	return Parse(data, os.Environ())
}

// Parse merges YAML data and environ ("KEY=value" pairs) over the defaults.
// Environment wins over the file.
func Parse(data []byte, environ []string) (*Config, error) {
	raw := make(map[string]interface{})
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrParse, err)
	}
	applyEnv(raw, environ)

	cfg := Default()
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrDecode, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv puts GORULES_SECTION_KEY=value into raw[section][key].
// The section is the part before the first underscore: GORULES_BOARD_SIZE_X
// sets board.size_x, GORULES_SELF_PLAY_SEED sets self_play.seed.
func applyEnv(raw map[string]interface{}, environ []string) {
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(name, EnvPrefix))

		section, rest, ok := splitSection(key)
		if !ok {
			continue
		}
		sub, ok := raw[section].(map[string]interface{})
		if !ok {
			sub = make(map[string]interface{})
			raw[section] = sub
		}
		sub[rest] = value
	}
}

func splitSection(key string) (section, rest string, ok bool) {
	for _, s := range []string{"self_play", "board", "players", "log"} {
		if strings.HasPrefix(key, s+"_") {
			return s, strings.TrimPrefix(key, s+"_"), true
		}
	}
	return "", "", false
}

// Validate checks ranges of the values.
func (c *Config) Validate() error {
	if c.Board.SizeX < 1 || c.Board.SizeX > 19 || c.Board.SizeY < 1 || c.Board.SizeY > 19 {
		return fmt.Errorf("%w: %w: board %dx%d", ErrInvalid, field.ErrFieldSize, c.Board.SizeX, c.Board.SizeY)
	}
	if c.Board.Handicap < 0 || c.Board.Handicap > 9 {
		return fmt.Errorf("%w: %w: got %d", ErrInvalid, session.ErrHandicap, c.Board.Handicap)
	}
	if c.Players.Black == "" || c.Players.White == "" {
		return fmt.Errorf("%w: empty player name", ErrInvalid)
	}
	if _, err := c.Log.ZerologLevel(); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, err)
	}
	if c.SelfPlay.Games < 0 || c.SelfPlay.Workers < 1 || c.SelfPlay.MaxMoves < 1 {
		return fmt.Errorf("%w: self play games %d, workers %d, max moves %d",
			ErrInvalid, c.SelfPlay.Games, c.SelfPlay.Workers, c.SelfPlay.MaxMoves)
	}
	return nil
}

// ZerologLevel parses the level name.
func (l Log) ZerologLevel() (zerolog.Level, error) {
	return zerolog.ParseLevel(l.Level)
}
