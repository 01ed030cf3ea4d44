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

// Package igame holds the data types shared by the rule engine
// and by whatever displays or transports a game.
package igame

import "fmt"

// ChipColour provides datatype of chip's colours
type ChipColour int

// Set of chip's colours
const (
	NoColour ChipColour = iota
	Black
	White
)

// Opposite returns the colour of the other side.
// NoColour has no opposite and is returned as is.
func (c ChipColour) Opposite() ChipColour {
	switch c {
	case Black:
		return White
	case White:
		return Black
	}
	return NoColour
}

// Valid reports whether c is a colour of a stone.
func (c ChipColour) Valid() bool {
	return c == Black || c == White
}

// String provides compatibility with Stringer interface.
func (c ChipColour) String() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	case NoColour:
		return "NoColour"
	}
	return fmt.Sprintf("ChipColour(%d)", int(c))
}

// TurnData is a struct, using to put a gamer's turn data.
// Coordinates are 0-indexed.
type TurnData struct {
	X, Y int
}

// String provides compatibility with Stringer interface.
func (td TurnData) String() string {
	return fmt.Sprintf("(%d, %d)", td.X, td.Y)
}

// PointKind is the tag of a Point.
type PointKind int

// Set of point kinds
const (
	Empty PointKind = iota
	Occupied
	Captured
)

// String provides compatibility with Stringer interface.
func (k PointKind) String() string {
	switch k {
	case Empty:
		return "Empty"
	case Occupied:
		return "Occupied"
	case Captured:
		return "Captured"
	}
	return fmt.Sprintf("PointKind(%d)", int(k))
}

// Point is the state of one intersection of the board.
// Colour is the stone colour for Occupied points
// and the capturing colour for Captured ones.
type Point struct {
	Kind   PointKind
	Colour ChipColour
}

// String provides compatibility with Stringer interface.
func (p Point) String() string {
	switch p.Kind {
	case Empty:
		return "Empty"
	case Occupied:
		return p.Colour.String()
	case Captured:
		return "CapturedBy" + p.Colour.String()
	}
	return fmt.Sprintf("Point{%v, %v}", p.Kind, p.Colour)
}

// MoveOutcome describes the result of an accepted move.
type MoveOutcome struct {
	Colour         ChipColour
	Position       TurnData
	Captured       []TurnData
	CapturedGroups int
	NextPlayer     ChipColour
	MoveNumber     int
}

// EndReason tells why a game is over.
type EndReason int

// Set of end reasons
const (
	NotOver EndReason = iota
	ByPasses
	BySurrender
)

// String provides compatibility with Stringer interface.
func (r EndReason) String() string {
	switch r {
	case NotOver:
		return "not over"
	case ByPasses:
		return "two passes"
	case BySurrender:
		return "surrender"
	}
	return fmt.Sprintf("EndReason(%d)", int(r))
}

// Result is the outcome of a finished game.
// Winner is NoColour when Tie is set.
type Result struct {
	Winner ChipColour
	Tie    bool
	Reason EndReason
	Scores map[ChipColour]int
}

// String provides compatibility with Stringer interface.
func (r Result) String() string {
	winner := "TIE"
	if !r.Tie {
		winner = r.Winner.String()
	}
	return fmt.Sprintf("winner: %s, black: %d, white: %d, by %s",
		winner, r.Scores[Black], r.Scores[White], r.Reason)
}

// FieldState describes the game state on the field
type FieldState struct {
	ID            string
	SizeX, SizeY  int
	Handicap      int
	Points        [][]Point
	Scores        map[ChipColour]int
	ChipsOnBoard  map[ChipColour][]TurnData
	CurrentPlayer ChipColour
	MoveNumber    int
	GameOver      bool
	Result        *Result
}

// Master interface wraps functions to work with game field and it's state
type Master interface {
	Move(colour ChipColour, td *TurnData) (*MoveOutcome, error)
	Pass(colour ChipColour) error
	Surrender(colour ChipColour) error
	CurrentPlayer() ChipColour
	State() *FieldState
}
