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

package group_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yagoggame/gorules/game/field"
	"github.com/yagoggame/gorules/game/group"
	"github.com/yagoggame/gorules/game/igame"
)

func td(x, y int) igame.TurnData {
	return igame.TurnData{X: x, Y: y}
}

func newField(t *testing.T, size int) *field.Field {
	t.Helper()
	f, err := field.New(size, size)
	require.NoError(t, err)
	return f
}

// place puts chips to the field and attaches them to the registry, in order.
func place(t *testing.T, f *field.Field, r *group.Registry, tds ...igame.TurnData) *group.Group {
	t.Helper()
	var g *group.Group
	for _, p := range tds {
		require.NoError(t, f.Place(r.Colour(), p))
		var err error
		g, err = r.AttachOrCreate(f, p)
		require.NoError(t, err)
	}
	return g
}

func TestAttachOrCreate(t *testing.T) {
	t.Run("singleton", func(t *testing.T) {
		f := newField(t, 9)
		r := group.NewRegistry(igame.Black)

		g := place(t, f, r, td(4, 4))

		require.Equal(t, 1, r.Len())
		require.Equal(t, []igame.TurnData{td(4, 4)}, g.Members())
		require.Equal(t, 4, g.LibertyCount())
	})

	t.Run("merging two chips on the edge", func(t *testing.T) {
		f := newField(t, 9)
		r := group.NewRegistry(igame.Black)

		place(t, f, r, td(0, 0))
		g := place(t, f, r, td(1, 0))

		require.Equal(t, 1, r.Len())
		require.Equal(t, 2, g.Size())
		require.ElementsMatch(t, []igame.TurnData{td(0, 1), td(1, 1), td(2, 0)}, g.Liberties())
	})

	t.Run("bridging three groups", func(t *testing.T) {
		f := newField(t, 9)
		r := group.NewRegistry(igame.White)

		place(t, f, r, td(3, 4), td(5, 4), td(4, 3))
		require.Equal(t, 3, r.Len())

		g := place(t, f, r, td(4, 4))

		require.Equal(t, 1, r.Len())
		require.Equal(t, 1, g.ID(), "the lowest ID group survives")
		require.ElementsMatch(t, []igame.TurnData{td(4, 3), td(3, 4), td(4, 4), td(5, 4)}, g.Members())
		require.NotContains(t, g.Liberties(), td(4, 4))
		for _, m := range g.Members() {
			got, ok := r.GroupAt(m)
			require.True(t, ok)
			require.Same(t, g, got)
		}
	})

	t.Run("wrong colour", func(t *testing.T) {
		f := newField(t, 9)
		r := group.NewRegistry(igame.White)
		require.NoError(t, f.Place(igame.Black, td(1, 1)))

		_, err := r.AttachOrCreate(f, td(1, 1))
		require.ErrorIs(t, err, group.ErrNoChip)
		require.Equal(t, 0, r.Len())
	})

	t.Run("attached twice", func(t *testing.T) {
		f := newField(t, 9)
		r := group.NewRegistry(igame.Black)
		place(t, f, r, td(1, 1))

		_, err := r.AttachOrCreate(f, td(1, 1))
		require.ErrorIs(t, err, group.ErrGrouped)
	})
}

// TestMergeOrderIndependent builds the same shape in every order
// and expects one identical group each time.
func TestMergeOrderIndependent(t *testing.T) {
	shape := []igame.TurnData{td(2, 1), td(1, 2), td(3, 2), td(2, 3), td(2, 2)}
	orders := [][]int{
		{0, 1, 2, 3, 4},
		{3, 2, 1, 0, 4},
		{4, 0, 1, 2, 3},
		{1, 4, 3, 0, 2},
		{2, 0, 4, 3, 1},
	}

	var want []igame.TurnData
	var wantLiberties []igame.TurnData
	for _, order := range orders {
		f := newField(t, 5)
		r := group.NewRegistry(igame.Black)
		for _, i := range order {
			place(t, f, r, shape[i])
		}

		require.Equal(t, 1, r.Len(), "order %v", order)
		g := r.Groups()[0]
		if want == nil {
			want = g.Members()
			wantLiberties = g.Liberties()
			continue
		}
		require.Equal(t, want, g.Members(), "order %v", order)
		require.Equal(t, wantLiberties, g.Liberties(), "order %v", order)
	}
}

func TestLiberties(t *testing.T) {
	f := newField(t, 5)
	black := group.NewRegistry(igame.Black)
	white := group.NewRegistry(igame.White)

	g := place(t, f, black, td(0, 0), td(0, 1))
	require.ElementsMatch(t, []igame.TurnData{td(1, 0), td(1, 1), td(0, 2)}, g.Liberties())

	place(t, f, white, td(1, 0))
	require.Equal(t, 3, g.LibertyCount(), "stored liberties are not patched")
	require.ElementsMatch(t, []igame.TurnData{td(1, 1), td(0, 2)}, group.Liberties(g, f).Sorted())

	black.Refresh(f, td(1, 0))
	require.Equal(t, 2, g.LibertyCount())

	require.NoError(t, f.Place(igame.White, td(1, 1)))
	require.NoError(t, f.Capture(td(1, 1), igame.White))
	require.ElementsMatch(t, []igame.TurnData{td(0, 2)}, group.Liberties(g, f).Sorted(),
		"captured points are not liberties")
}

func TestAdjacentGroups(t *testing.T) {
	f := newField(t, 9)
	r := group.NewRegistry(igame.White)
	a := place(t, f, r, td(4, 3), td(5, 3))
	b := place(t, f, r, td(3, 4))
	place(t, f, r, td(8, 8))

	groups := r.AdjacentGroups(f, td(4, 4))
	require.Len(t, groups, 2)
	require.Same(t, a, groups[0])
	require.Same(t, b, groups[1])

	require.Empty(t, r.AdjacentGroups(f, td(0, 8)))
}

func TestRemove(t *testing.T) {
	f := newField(t, 9)
	r := group.NewRegistry(igame.Black)
	g := place(t, f, r, td(2, 2), td(2, 3))
	other := place(t, f, r, td(6, 6))

	require.NoError(t, r.Remove(g))
	require.Equal(t, 1, r.Len())
	require.Equal(t, 1, r.Stones())
	_, ok := r.GroupAt(td(2, 2))
	require.False(t, ok)

	require.ErrorIs(t, r.Remove(g), group.ErrForeignGroup)
	require.Equal(t, []*group.Group{other}, r.Groups())
}

func TestCloneIsIndependent(t *testing.T) {
	f := newField(t, 9)
	rs := group.NewRegistries()
	place(t, f, rs.Black, td(1, 1))

	cpy := rs.Clone()
	cf := f.Copy()
	place(t, cf, cpy.For(igame.Black), td(1, 2))
	place(t, cf, cpy.For(igame.White), td(5, 5))

	require.Equal(t, 1, rs.Black.Stones())
	require.Equal(t, 0, rs.White.Len())
	g, ok := rs.Black.GroupAt(td(1, 1))
	require.True(t, ok)
	require.Equal(t, 1, g.Size())
	require.Equal(t, 4, g.LibertyCount())

	require.Equal(t, 2, cpy.Black.Stones())
	require.Nil(t, rs.For(igame.NoColour))
}

func TestSetSorted(t *testing.T) {
	s := group.NewSet(td(2, 1), td(0, 2), td(1, 1), td(5, 0))
	require.Equal(t, []igame.TurnData{td(5, 0), td(1, 1), td(2, 1), td(0, 2)}, s.Sorted())
}
