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

// Package group tracks connected chips of one colour and their liberties.
package group

import (
	"fmt"

	"github.com/yagoggame/gorules/game/igame"
)

// Board is the read access to the grid needed to walk groups.
type Board interface {
	At(td igame.TurnData) igame.Point
	Neighbours(td igame.TurnData) []igame.TurnData
}

// Group is a maximal set of orthogonally connected chips of one colour.
type Group struct {
	id        int
	colour    igame.ChipColour
	members   Set
	liberties Set
}

// ID returns the group's identifier, unique within its Registry.
func (g *Group) ID() int {
	return g.id
}

// Colour returns the colour of the group's chips.
func (g *Group) Colour() igame.ChipColour {
	return g.colour
}

// Size returns the number of chips in the group.
func (g *Group) Size() int {
	return g.members.Len()
}

// Has reports whether the chip at td belongs to the group.
func (g *Group) Has(td igame.TurnData) bool {
	return g.members.Has(td)
}

// Members returns the group's chips ordered row by row.
func (g *Group) Members() []igame.TurnData {
	return g.members.Sorted()
}

// Liberties returns the liberties computed on the last structural change,
// ordered row by row.
func (g *Group) Liberties() []igame.TurnData {
	return g.liberties.Sorted()
}

// LibertyCount returns the number of liberties computed on the last structural change.
func (g *Group) LibertyCount() int {
	return g.liberties.Len()
}

// Recompute refreshes the group's liberties from the board.
func (g *Group) Recompute(b Board) {
	g.liberties = Liberties(g, b)
}

// String provides compatibility with Stringer interface.
func (g *Group) String() string {
	return fmt.Sprintf("[ id: %d, colour: %v, members: %v, liberties: %v ]",
		g.id, g.colour, g.Members(), g.Liberties())
}

func (g *Group) clone() *Group {
	return &Group{
		id:        g.id,
		colour:    g.colour,
		members:   g.members.Clone(),
		liberties: g.liberties.Clone(),
	}
}

// Liberties returns empty points orthogonally adjacent to any chip of g.
func Liberties(g *Group, b Board) Set {
	liberties := make(Set)
	for td := range g.members {
		for _, n := range b.Neighbours(td) {
			if b.At(n).Kind == igame.Empty {
				liberties.Add(n)
			}
		}
	}
	return liberties
}
