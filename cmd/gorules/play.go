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

package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/config"
	"github.com/yagoggame/gorules/game/igame"
	"github.com/yagoggame/gorules/game/session"
)

// errUnknownCommand error occurs when a line is neither a command nor a move
var errUnknownCommand = errors.New("unknown command")

const helpText = `commands:
  x y     place a chip, coordinates from 0
  pass    skip the turn, two passes in a row end the game
  resign  surrender
  board   print the field
  score   print captured chips
  quit    leave the game
`

// playInteractive runs the command loop of one game between two people
// sharing the terminal.
func playInteractive(ctx context.Context, in io.Reader, out io.Writer, cfg *config.Config, logger zerolog.Logger) error {
	s, err := session.New(cfg.Board.SizeX, cfg.Board.SizeY, cfg.Board.Handicap,
		session.WithLogger(logger),
		session.WithPlayers(cfg.Players.Black, cfg.Players.White))
	if err != nil {
		return err
	}

	fmt.Fprint(out, helpText)
	fmt.Fprint(out, s)

	scanner := bufio.NewScanner(in)
	for prompt(out, s); scanner.Scan(); prompt(out, s) {
		if err := ctx.Err(); err != nil {
			return err
		}
		quit, err := execute(out, s, scanner.Text())
		if err != nil {
			fmt.Fprintf(out, "rejected: %v\n", err)
		}
		if quit {
			return nil
		}
		if s.Phase() == session.GameOver {
			res, _ := s.Result()
			fmt.Fprintf(out, "game over, %v\n", res)
			return nil
		}
	}
	return scanner.Err()
}

func prompt(out io.Writer, s *session.Session) {
	colour := s.CurrentPlayer()
	p, _ := s.Player(colour)
	fmt.Fprintf(out, "%v (%s) to move: ", colour, p.Name)
}

// execute applies one line of input to the session.
func execute(out io.Writer, s *session.Session, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}

	switch strings.ToLower(fields[0]) {
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprint(out, helpText)
	case "board":
		fmt.Fprint(out, s)
	case "score":
		printScores(out, s)
	case "pass":
		return false, s.Pass(s.CurrentPlayer())
	case "resign":
		return false, s.Surrender(s.CurrentPlayer())
	default:
		td, err := parseTurn(fields)
		if err != nil {
			return false, err
		}
		outcome, err := s.ApplyMove(td.X, td.Y)
		if err != nil {
			return false, err
		}
		if len(outcome.Captured) > 0 {
			fmt.Fprintf(out, "%v captured %d chips\n", outcome.Colour, len(outcome.Captured))
		}
		fmt.Fprint(out, s)
	}
	return false, nil
}

func parseTurn(fields []string) (igame.TurnData, error) {
	if len(fields) != 2 {
		return igame.TurnData{}, fmt.Errorf("%w: %q", errUnknownCommand, strings.Join(fields, " "))
	}
	x, errX := strconv.Atoi(fields[0])
	y, errY := strconv.Atoi(fields[1])
	if errX != nil || errY != nil {
		return igame.TurnData{}, fmt.Errorf("%w: %q", errUnknownCommand, strings.Join(fields, " "))
	}
	return igame.TurnData{X: x, Y: y}, nil
}

func printScores(out io.Writer, s *session.Session) {
	for _, p := range s.Players() {
		fmt.Fprintf(out, "%v (%s): %d\n", p.Colour, p.Name, p.Score)
	}
	if leader := s.Leader(); leader != igame.NoColour {
		fmt.Fprintf(out, "%v leads\n", leader)
	} else {
		fmt.Fprintln(out, "even")
	}
}
