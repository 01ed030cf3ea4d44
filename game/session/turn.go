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

package session

import (
	"fmt"

	"github.com/yagoggame/gorules/game/field"
	"github.com/yagoggame/gorules/game/igame"
)

// ApplyMove puts a chip of the current player to (x, y).
func (s *Session) ApplyMove(x, y int) (*igame.MoveOutcome, error) {
	return s.Move(s.current, &igame.TurnData{X: x, Y: y})
}

// Move puts a chip of colour to td.
// The placement, group merging and captures are made on a copy of the field
// and registries, which replaces the session's ones only when the move is legal.
// A rejected move leaves the session unchanged.
func (s *Session) Move(colour igame.ChipColour, td *igame.TurnData) (*igame.MoveOutcome, error) {
	if err := s.precheck(colour); err != nil {
		return nil, err
	}
	if td == nil {
		return nil, fmt.Errorf("%w: no turn data", field.ErrOutOfBounds)
	}

	s.phase = Resolving
	defer func() {
		if s.phase == Resolving {
			s.phase = AwaitingMove
		}
	}()

	f := s.field.Copy()
	regs := s.regs.Clone()

	if err := f.Place(colour, *td); err != nil {
		s.logRejected(colour, *td, err)
		return nil, err
	}
	if _, err := regs.For(colour).AttachOrCreate(f, *td); err != nil {
		s.logRejected(colour, *td, err)
		return nil, err
	}
	report, err := s.resolver.Resolve(f, *td, colour, regs)
	if err != nil {
		s.logRejected(colour, *td, err)
		return nil, err
	}

	s.field, s.regs = f, regs
	s.players[colour].Score += report.Stones
	s.moves++
	s.passes = 0
	s.current = colour.Opposite()
	s.history = append(s.history, Record{
		Number:   len(s.history) + 1,
		Colour:   colour,
		Position: *td,
		Captured: report.Stones,
	})

	s.log.Debug().
		Stringer("colour", colour).
		Int("x", td.X).
		Int("y", td.Y).
		Int("move", s.moves).
		Int("captured", report.Stones).
		Msg("move accepted")

	return &igame.MoveOutcome{
		Colour:         colour,
		Position:       *td,
		Captured:       report.Captured,
		CapturedGroups: len(report.Groups),
		NextPlayer:     s.current,
		MoveNumber:     s.moves,
	}, nil
}

// Pass gives the turn to the other colour.
// The second pass in a row ends the game.
func (s *Session) Pass(colour igame.ChipColour) error {
	if err := s.precheck(colour); err != nil {
		return err
	}

	s.passes++
	s.current = colour.Opposite()
	s.history = append(s.history, Record{
		Number: len(s.history) + 1,
		Colour: colour,
		Pass:   true,
	})
	s.log.Debug().Stringer("colour", colour).Int("passes", s.passes).Msg("pass")

	if s.passes >= 2 {
		s.finish(igame.ByPasses, igame.NoColour)
	}
	return nil
}

// Surrender ends the game with the other colour as the winner.
// Any side may surrender at any time before the end.
func (s *Session) Surrender(colour igame.ChipColour) error {
	if s.result != nil {
		return fmt.Errorf("%w: %v surrenders", ErrGameOver, colour)
	}
	if !colour.Valid() {
		return fmt.Errorf("%w: got colour: %v", field.ErrColour, colour)
	}

	s.finish(igame.BySurrender, colour)
	return nil
}

func (s *Session) precheck(colour igame.ChipColour) error {
	if s.result != nil {
		return fmt.Errorf("%w: %v moves", ErrGameOver, colour)
	}
	if !colour.Valid() {
		return fmt.Errorf("%w: got colour: %v", field.ErrColour, colour)
	}
	if colour != s.current {
		return fmt.Errorf("%w: %v moves, %v expected", ErrNotYourTurn, colour, s.current)
	}
	return nil
}

// finish ends the game. loser is the surrendered colour, if any.
func (s *Session) finish(reason igame.EndReason, loser igame.ChipColour) {
	scores := s.Scores()
	res := &igame.Result{
		Reason: reason,
		Scores: scores,
	}

	if reason == igame.BySurrender {
		res.Winner = loser.Opposite()
	} else {
		res.Winner = s.Leader()
		res.Tie = res.Winner == igame.NoColour
	}

	s.result = res
	s.phase = GameOver
	s.log.Info().
		Stringer("reason", reason).
		Stringer("winner", res.Winner).
		Bool("tie", res.Tie).
		Int("black", scores[igame.Black]).
		Int("white", scores[igame.White]).
		Msg("game over")
}

func (s *Session) logRejected(colour igame.ChipColour, td igame.TurnData, err error) {
	s.log.Debug().
		Err(err).
		Stringer("colour", colour).
		Int("x", td.X).
		Int("y", td.Y).
		Msg("move rejected")
}
