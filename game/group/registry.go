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
	"errors"
	"fmt"

	"github.com/yagoggame/gorules/game/igame"
	"golang.org/x/exp/slices"
)

var (
	// ErrNoChip error occurs when a position holds no chip of the registry's colour
	ErrNoChip = errors.New("no chip of registry colour at position")
	// ErrGrouped error occurs when a position already belongs to a group
	ErrGrouped = errors.New("position already belongs to a group")
	// ErrForeignGroup error occurs when a group is not registered in the registry
	ErrForeignGroup = errors.New("group is not registered")
)

// Registry holds the live groups of one colour.
// Groups are disjoint, and every chip of the colour placed through
// AttachOrCreate belongs to exactly one of them.
type Registry struct {
	colour igame.ChipColour
	groups map[int]*Group
	owner  map[igame.TurnData]int
	nextID int
}

// NewRegistry makes an empty registry for colour.
func NewRegistry(colour igame.ChipColour) *Registry {
	return &Registry{
		colour: colour,
		groups: make(map[int]*Group),
		owner:  make(map[igame.TurnData]int),
		nextID: 1,
	}
}

// Colour returns the colour of the registry's groups.
func (r *Registry) Colour() igame.ChipColour {
	return r.colour
}

// Len returns the number of live groups.
func (r *Registry) Len() int {
	return len(r.groups)
}

// Stones returns the number of chips in all live groups.
func (r *Registry) Stones() int {
	return len(r.owner)
}

// Groups returns live groups ordered by ID.
func (r *Registry) Groups() []*Group {
	groups := make([]*Group, 0, len(r.groups))
	for _, g := range r.groups {
		groups = append(groups, g)
	}
	sortByID(groups)
	return groups
}

// GroupAt returns the group holding the chip at td.
func (r *Registry) GroupAt(td igame.TurnData) (*Group, bool) {
	id, ok := r.owner[td]
	if !ok {
		return nil, false
	}
	return r.groups[id], true
}

// AdjacentGroups returns distinct groups having a chip orthogonally adjacent to td,
// ordered by ID.
func (r *Registry) AdjacentGroups(b Board, td igame.TurnData) []*Group {
	seen := make(map[int]bool, 4)
	groups := make([]*Group, 0, 4)
	for _, n := range b.Neighbours(td) {
		id, ok := r.owner[n]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		groups = append(groups, r.groups[id])
	}
	sortByID(groups)
	return groups
}

// AttachOrCreate puts the chip at td into a group: a new one if no group of the
// registry is adjacent, the adjacent one if there is exactly one, otherwise all
// adjacent groups and td are unified into the group with the lowest ID.
// The chip must already be on the board.
func (r *Registry) AttachOrCreate(b Board, td igame.TurnData) (*Group, error) {
	if p := b.At(td); p.Kind != igame.Occupied || p.Colour != r.colour {
		return nil, fmt.Errorf("%w: %v at %v, registry colour %v", ErrNoChip, p, td, r.colour)
	}
	if _, ok := r.owner[td]; ok {
		return nil, fmt.Errorf("%w: at %v", ErrGrouped, td)
	}

	friends := r.AdjacentGroups(b, td)

	var survivor *Group
	switch len(friends) {
	case 0:
		survivor = &Group{
			id:      r.nextID,
			colour:  r.colour,
			members: make(Set),
		}
		r.nextID++
		r.groups[survivor.id] = survivor
	default:
		survivor = friends[0]
		for _, consumed := range friends[1:] {
			r.absorb(survivor, consumed)
		}
	}

	survivor.members.Add(td)
	r.owner[td] = survivor.id
	survivor.Recompute(b)
	return survivor, nil
}

// Remove drops g and all its chips from the registry.
func (r *Registry) Remove(g *Group) error {
	if registered, ok := r.groups[g.id]; !ok || registered != g {
		return fmt.Errorf("%w: %v", ErrForeignGroup, g)
	}
	for td := range g.members {
		delete(r.owner, td)
	}
	delete(r.groups, g.id)
	return nil
}

// Refresh recomputes liberties of the groups at and around td.
func (r *Registry) Refresh(b Board, td igame.TurnData) {
	groups := r.AdjacentGroups(b, td)
	if g, ok := r.GroupAt(td); ok {
		groups = append(groups, g)
	}
	for _, g := range groups {
		g.Recompute(b)
	}
}

// Clone returns an independent deep copy of the registry.
func (r *Registry) Clone() *Registry {
	cpy := &Registry{
		colour: r.colour,
		groups: make(map[int]*Group, len(r.groups)),
		owner:  make(map[igame.TurnData]int, len(r.owner)),
		nextID: r.nextID,
	}
	for id, g := range r.groups {
		cpy.groups[id] = g.clone()
	}
	for td, id := range r.owner {
		cpy.owner[td] = id
	}
	return cpy
}

// absorb moves all chips of consumed into survivor and forgets consumed.
func (r *Registry) absorb(survivor, consumed *Group) {
	for td := range consumed.members {
		survivor.members.Add(td)
		r.owner[td] = survivor.id
	}
	delete(r.groups, consumed.id)
}

func sortByID(groups []*Group) {
	slices.SortFunc(groups, func(a, b *Group) int {
		return a.id - b.id
	})
}

// Registries holds a registry per colour.
type Registries struct {
	Black *Registry
	White *Registry
}

// NewRegistries makes empty registries for both colours.
func NewRegistries() *Registries {
	return &Registries{
		Black: NewRegistry(igame.Black),
		White: NewRegistry(igame.White),
	}
}

// For returns the registry of colour, nil for NoColour.
func (rs *Registries) For(colour igame.ChipColour) *Registry {
	switch colour {
	case igame.Black:
		return rs.Black
	case igame.White:
		return rs.White
	}
	return nil
}

// Clone returns an independent deep copy of both registries.
func (rs *Registries) Clone() *Registries {
	return &Registries{
		Black: rs.Black.Clone(),
		White: rs.White.Clone(),
	}
}
