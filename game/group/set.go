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

package group

import (
	"github.com/yagoggame/gorules/game/igame"
	"golang.org/x/exp/slices"
)

// Set is an unordered set of positions.
type Set map[igame.TurnData]struct{}

// NewSet makes a set of tds.
func NewSet(tds ...igame.TurnData) Set {
	s := make(Set, len(tds))
	for _, td := range tds {
		s.Add(td)
	}
	return s
}

// Add puts td to the set.
func (s Set) Add(td igame.TurnData) {
	s[td] = struct{}{}
}

// Remove drops td from the set.
func (s Set) Remove(td igame.TurnData) {
	delete(s, td)
}

// Has reports whether td is in the set.
func (s Set) Has(td igame.TurnData) bool {
	_, ok := s[td]
	return ok
}

// Len returns the number of positions in the set.
func (s Set) Len() int {
	return len(s)
}

// Union adds all positions of other to s.
func (s Set) Union(other Set) {
	for td := range other {
		s.Add(td)
	}
}

// Clone returns an independent copy of s.
func (s Set) Clone() Set {
	cpy := make(Set, len(s))
	cpy.Union(s)
	return cpy
}

// Sorted returns positions of the set ordered row by row.
func (s Set) Sorted() []igame.TurnData {
	tds := make([]igame.TurnData, 0, len(s))
	for td := range s {
		tds = append(tds, td)
	}
	slices.SortFunc(tds, Compare)
	return tds
}

// Compare orders positions row by row: by Y, then by X.
func Compare(a, b igame.TurnData) int {
	if a.Y != b.Y {
		return a.Y - b.Y
	}
	return a.X - b.X
}
