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
	"errors"
	"fmt"

	"github.com/yagoggame/gorules/game/group"
	"github.com/yagoggame/gorules/game/igame"
	"golang.org/x/exp/slices"
)

// ErrCorrupted error occurs when Validate finds the state inconsistent
var ErrCorrupted = errors.New("game state is inconsistent")

// Validate audits the session: groups partition the chips of their colour,
// every group is connected and maximal, stored liberties match the field,
// and scores match the captured points.
func (s *Session) Validate() error {
	for _, colour := range []igame.ChipColour{igame.Black, igame.White} {
		if err := s.validateColour(colour); err != nil {
			return err
		}
		captured := s.field.Count(igame.Captured, colour)
		if score := s.players[colour].Score; score != captured {
			return fmt.Errorf("%w: %v score %d, captured points %d", ErrCorrupted, colour, score, captured)
		}
	}
	return nil
}

func (s *Session) validateColour(colour igame.ChipColour) error {
	reg := s.regs.For(colour)
	stones := s.field.Stones(colour)
	if reg.Stones() != len(stones) {
		return fmt.Errorf("%w: %v has %d chips, %d grouped", ErrCorrupted, colour, len(stones), reg.Stones())
	}
	for _, td := range stones {
		if _, ok := reg.GroupAt(td); !ok {
			return fmt.Errorf("%w: %v chip at %v is in no group", ErrCorrupted, colour, td)
		}
	}

	seen := 0
	for _, g := range reg.Groups() {
		members := g.Members()
		seen += len(members)
		for _, m := range members {
			if owner, _ := reg.GroupAt(m); owner != g {
				return fmt.Errorf("%w: %v owned by another group than %d", ErrCorrupted, m, g.ID())
			}
		}
		if !slices.Equal(connected(s.field, members[0], colour), members) {
			return fmt.Errorf("%w: group %d is not a maximal connected set", ErrCorrupted, g.ID())
		}
		if want := group.Liberties(g, s.field).Sorted(); !slices.Equal(want, g.Liberties()) {
			return fmt.Errorf("%w: group %d liberties %v, want %v", ErrCorrupted, g.ID(), g.Liberties(), want)
		}
		if g.LibertyCount() == 0 {
			return fmt.Errorf("%w: group %d has no liberties", ErrCorrupted, g.ID())
		}
	}
	if seen != len(stones) {
		return fmt.Errorf("%w: %v groups hold %d chips, field %d", ErrCorrupted, colour, seen, len(stones))
	}
	return nil
}

// connected flood fills chips of colour from start, ordered row by row.
func connected(b group.Board, start igame.TurnData, colour igame.ChipColour) []igame.TurnData {
	want := igame.Point{Kind: igame.Occupied, Colour: colour}
	visited := group.NewSet(start)
	stack := []igame.TurnData{start}
	for len(stack) > 0 {
		td := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range b.Neighbours(td) {
			if visited.Has(n) || b.At(n) != want {
				continue
			}
			visited.Add(n)
			stack = append(stack, n)
		}
	}
	return visited.Sorted()
}
