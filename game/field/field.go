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

// Package field holds the board grid: the single owner of point states.
package field

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yagoggame/gorules/game/igame"
)

var (
	// ErrFieldSize error occures when New is called with wrong size
	ErrFieldSize = errors.New("field size is out of range (from 1x1 to 19x19)")
	// ErrColour error occurs when some of operations is made with No Colour
	ErrColour = errors.New("only black and white chips allowed")
	// ErrOutOfBounds error occurs when Place is made with TurnData out of range
	ErrOutOfBounds = errors.New("position is out of range")
	// ErrOccupied error occurs when Place is made on occupied position
	ErrOccupied = errors.New("the position is occupied")
	// ErrCaptured error occurs when Place is made on permanently captured position
	ErrCaptured = errors.New("the position is permanently captured")
	// ErrNotOccupied error occurs when Capture is made on a position without a stone
	ErrNotOccupied = errors.New("the position holds no stone")
)

const (
	minSize = 1
	maxSize = 19
)

// Field holds position of chips on the game desk.
// Points are stored row-major: points[y][x].
type Field struct {
	points [][]igame.Point
	sizeX  int
	sizeY  int
}

// New generate Field with demensions of sizeX x sizeY
func New(sizeX, sizeY int) (*Field, error) {
	if sizeX < minSize || sizeX > maxSize || sizeY < minSize || sizeY > maxSize {
		return nil, fmt.Errorf("%w: desired size is %dx%d", ErrFieldSize, sizeX, sizeY)
	}

	field := &Field{
		sizeX:  sizeX,
		sizeY:  sizeY,
		points: make([][]igame.Point, sizeY),
	}
	for i := range field.points {
		field.points[i] = make([]igame.Point, sizeX)
	}
	return field, nil
}

// SizeX returns field's width
func (field *Field) SizeX() int {
	return field.sizeX
}

// SizeY returns field's height
func (field *Field) SizeY() int {
	return field.sizeY
}

// InBounds reports whether td lies on the field.
func (field *Field) InBounds(td igame.TurnData) bool {
	return td.X >= 0 && td.Y >= 0 && td.X < field.sizeX && td.Y < field.sizeY
}

// At returns the state of the point at td.
// Positions out of range read as an empty point.
func (field *Field) At(td igame.TurnData) igame.Point {
	if !field.InBounds(td) {
		return igame.Point{}
	}
	return field.points[td.Y][td.X]
}

// Place performs attempt to put chip of colour to position td
func (field *Field) Place(colour igame.ChipColour, td igame.TurnData) error {
	if err := field.precheck(colour, td); err != nil {
		return err
	}
	if err := field.checkPosition(td); err != nil {
		return err
	}

	field.points[td.Y][td.X] = igame.Point{Kind: igame.Occupied, Colour: colour}
	return nil
}

// Capture turns the stone at td into territory captured by colour.
// Captured points never hold a stone again.
func (field *Field) Capture(td igame.TurnData, by igame.ChipColour) error {
	if err := field.precheck(by, td); err != nil {
		return err
	}
	if field.points[td.Y][td.X].Kind != igame.Occupied {
		return fmt.Errorf("%w: at %v", ErrNotOccupied, td)
	}

	field.points[td.Y][td.X] = igame.Point{Kind: igame.Captured, Colour: by}
	return nil
}

// Neighbours returns orthogonally adjacent positions of td which lie on the field.
func (field *Field) Neighbours(td igame.TurnData) []igame.TurnData {
	neighbours := make([]igame.TurnData, 0, 4)
	for _, d := range [...]igame.TurnData{{X: 0, Y: -1}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: -1, Y: 0}} {
		n := igame.TurnData{X: td.X + d.X, Y: td.Y + d.Y}
		if field.InBounds(n) {
			neighbours = append(neighbours, n)
		}
	}
	return neighbours
}

// Copy returns an independent copy of the field.
func (field *Field) Copy() *Field {
	cpy := &Field{
		sizeX:  field.sizeX,
		sizeY:  field.sizeY,
		points: make([][]igame.Point, field.sizeY),
	}
	for y := range field.points {
		cpy.points[y] = make([]igame.Point, field.sizeX)
		copy(cpy.points[y], field.points[y])
	}
	return cpy
}

// Snapshot returns a copy of the points, row-major: [y][x].
func (field *Field) Snapshot() [][]igame.Point {
	return field.Copy().points
}

// Stones returns positions of chips of colour, row by row.
func (field *Field) Stones(colour igame.ChipColour) []igame.TurnData {
	positions := make([]igame.TurnData, 0)

	for y := 0; y < field.sizeY; y++ {
		for x := 0; x < field.sizeX; x++ {
			p := field.points[y][x]
			if p.Kind == igame.Occupied && p.Colour == colour {
				positions = append(positions, igame.TurnData{X: x, Y: y})
			}
		}
	}

	return positions
}

// Count returns the number of points of the kind and colour.
func (field *Field) Count(kind igame.PointKind, colour igame.ChipColour) int {
	n := 0
	for _, row := range field.points {
		for _, p := range row {
			if p.Kind == kind && p.Colour == colour {
				n++
			}
		}
	}
	return n
}

// String renders the field: "." empty, "X"/"O" black/white stone,
// "x"/"o" point captured by black/white.
func (field *Field) String() string {
	var sb strings.Builder
	for _, row := range field.points {
		for x, p := range row {
			if x > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteByte(pointRune(p))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func pointRune(p igame.Point) byte {
	switch {
	case p.Kind == igame.Occupied && p.Colour == igame.Black:
		return 'X'
	case p.Kind == igame.Occupied && p.Colour == igame.White:
		return 'O'
	case p.Kind == igame.Captured && p.Colour == igame.Black:
		return 'x'
	case p.Kind == igame.Captured && p.Colour == igame.White:
		return 'o'
	}
	return '.'
}

func (field *Field) precheck(colour igame.ChipColour, td igame.TurnData) error {
	if !colour.Valid() {
		return fmt.Errorf("%w: got colour: %v", ErrColour, colour)
	}

	if !field.InBounds(td) {
		return fmt.Errorf("%w: got turn data: %v on %dx%d field", ErrOutOfBounds, td, field.sizeX, field.sizeY)
	}

	return nil
}

func (field *Field) checkPosition(td igame.TurnData) error {
	switch p := field.points[td.Y][td.X]; p.Kind {
	case igame.Occupied:
		return fmt.Errorf("%w: at %v by %v", ErrOccupied, td, p.Colour)
	case igame.Captured:
		return fmt.Errorf("%w: at %v by %v", ErrCaptured, td, p.Colour)
	}
	return nil
}
