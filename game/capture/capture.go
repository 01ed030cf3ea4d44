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

// Package capture removes groups left without liberties by a move.
package capture

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/game/field"
	"github.com/yagoggame/gorules/game/group"
	"github.com/yagoggame/gorules/game/igame"
	"golang.org/x/exp/slices"
)

var (
	// ErrSuicide error occurs when a move leaves the mover's own group without liberties
	ErrSuicide = errors.New("move leaves own group without liberties")
	// ErrNotAttached error occurs when the placed chip is not in any group
	ErrNotAttached = errors.New("placed chip belongs to no group")
)

// Board is the grid access needed to resolve captures.
type Board interface {
	group.Board
	Capture(td igame.TurnData, by igame.ChipColour) error
}

// Report describes groups taken off by one move.
type Report struct {
	Colour   igame.ChipColour
	Groups   [][]igame.TurnData
	Captured []igame.TurnData
	Stones   int
}

// Resolver resolves captures after a chip is placed and attached to its group.
type Resolver struct {
	log zerolog.Logger
}

// New makes a Resolver writing debug records to logger.
func New(logger zerolog.Logger) *Resolver {
	return &Resolver{log: logger}
}

// Resolve captures every opposite colour group adjacent to td which has no
// liberties left, turning its points into territory captured by colour.
// It returns ErrSuicide when the group holding td is left without liberties,
// captures included. Resolve mutates b and regs even on error,
// so callers resolve on copies they can drop.
func (r *Resolver) Resolve(b Board, td igame.TurnData, colour igame.ChipColour, regs *group.Registries) (*Report, error) {
	if !colour.Valid() {
		return nil, fmt.Errorf("%w: got colour: %v", field.ErrColour, colour)
	}
	friends := regs.For(colour)
	enemies := regs.For(colour.Opposite())

	own, ok := friends.GroupAt(td)
	if !ok {
		return nil, fmt.Errorf("%w: %v at %v", ErrNotAttached, colour, td)
	}

	enemies.Refresh(b, td)
	// collect first: the registry must not change while it is walked.
	dead := make([]*group.Group, 0, 4)
	for _, g := range enemies.AdjacentGroups(b, td) {
		if g.LibertyCount() == 0 {
			dead = append(dead, g)
		}
	}

	report := &Report{Colour: colour}
	for _, g := range dead {
		members := g.Members()
		for _, m := range members {
			if err := b.Capture(m, colour); err != nil {
				return nil, fmt.Errorf("failed to capture group %d: %w", g.ID(), err)
			}
		}
		if err := enemies.Remove(g); err != nil {
			return nil, fmt.Errorf("failed to capture group %d: %w", g.ID(), err)
		}
		report.Groups = append(report.Groups, members)
		report.Captured = append(report.Captured, members...)
		report.Stones += len(members)
	}
	slices.SortFunc(report.Captured, group.Compare)

	friends.Refresh(b, td)
	if own.LibertyCount() == 0 {
		return nil, fmt.Errorf("%w: %v at %v, group of %d", ErrSuicide, colour, td, own.Size())
	}

	if report.Stones > 0 {
		r.log.Debug().
			Stringer("colour", colour).
			Int("x", td.X).
			Int("y", td.Y).
			Int("groups", len(report.Groups)).
			Int("captured", report.Stones).
			Msg("groups captured")
	}
	return report, nil
}
