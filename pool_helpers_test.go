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

package gorules

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/game"
)

var usualParams = GameParams{SizeX: 9, SizeY: 9}

var validGamers = []*game.Gamer{
	game.NewGamer("Joe", 1),
	game.NewGamer("Nick", 2),
	game.NewGamer("Jack", 3),
	game.NewGamer("Fred", 4),
	game.NewGamer("Fury", 5),
}

type testCase struct {
	caseName string
	id       int
	gamer    *game.Gamer
	want     error
}

var poolJoinTests = func() []testCase {
	tests := []testCase{{caseName: "unknown id", id: 0, want: ErrIDNotFound}}
	for _, g := range validGamers {
		tests = append(tests, testCase{caseName: g.Name, id: g.ID, gamer: g})
	}
	return append(tests, testCase{caseName: "occupied", id: validGamers[0].ID, want: ErrGamerOccupied})
}()

func newPool(t *testing.T) GamersPool {
	t.Helper()
	pool := NewGamersPool(zerolog.Nop())
	if pool == nil {
		t.Fatalf("Unexpected nil pool")
	}
	return pool
}

func fillPool(t *testing.T, pool GamersPool) {
	t.Helper()
	for _, g := range validGamers {
		if err := pool.AddGamer(g); err != nil {
			t.Fatalf("Unexpected fail on AddGamer: %v", err)
		}
	}
}

func checkReleaseCounter(t *testing.T, pool GamersPool, releaseCounter int) {
	gamerInGameCount := 0
	actualGamers := pool.ListGamers()
	for _, g := range actualGamers {
		if !g.IsVacant() {
			gamerInGameCount++
		}
	}
	if gamerInGameCount != len(actualGamers)-releaseCounter {
		t.Errorf("Unexpected count of Gamers in game:\nwant: %d,\ngot: %d", len(actualGamers)-releaseCounter, gamerInGameCount)
	}
}

func prepareGamers(t *testing.T, pool GamersPool) {
	for _, g := range validGamers {
		if err := pool.AddGamer(g); err != nil {
			t.Fatalf("Unexpected fail on AddGamer: %v", err)
		}
		if err := pool.JoinGame(g.ID, usualParams); err != nil {
			t.Fatalf("Unexpected fail on JoinGame: %v", err)
		}
	}
}

func checkFunction(t *testing.T, test testCase, fn func(id int) (*game.Gamer, error)) (*game.Gamer, error) {
	returnedGamer, err := fn(test.id)

	if !errors.Is(err, test.want) {
		t.Errorf("Unexpected action err:\ngot: %v,\nwant: err=%v.", err, test.want)
	}

	switch test.want == nil {
	case true:
		if returnedGamer == nil || !reflect.DeepEqual(*returnedGamer, *test.gamer) {
			t.Errorf("Unexpected action gamer:\nwant: %v,\ngot %v", test.gamer, returnedGamer)
		}
	case false:
		if returnedGamer != nil {
			t.Errorf("Unexpected action gamer:\nwant nill gamer pointer,\ngot: %v", returnedGamer)
		}
	}
	return returnedGamer, err
}

func asyncReleaseState(pool GamersPool) (signal <-chan bool) {
	c := make(chan bool)
	go func(c chan<- bool) {
		pool.Release()
		_, ok := <-pool
		c <- ok
		close(c)
	}(c)
	return c
}

func checkInitialDisjoined(t *testing.T, pool GamersPool) {
	actualGamers := pool.ListGamers()
	for _, g := range actualGamers {
		if !g.IsVacant() {
			t.Fatalf("Unexpected Gamer.GetGame():\nwant:nil,\ngot:%v", g.GetGame())
		}
	}
}

func checkJoin(t *testing.T, pool GamersPool) {
	countRequestedJoins := join(t, pool)

	countJoined := 0
	actualGamers := pool.ListGamers()
	for _, g := range actualGamers {
		if !g.IsVacant() {
			countJoined++
		}
	}

	if countRequestedJoins != countJoined {
		t.Errorf("Unexpected num of join success:\nwant:%d\ngot: %d", countRequestedJoins, countJoined)
	}
}

func join(t *testing.T, pool GamersPool) int {
	countRequestedJoins := 0
	for _, test := range poolJoinTests {
		t.Run(test.caseName, func(t *testing.T) {
			err := pool.JoinGame(test.id, usualParams)
			if !errors.Is(err, test.want) {
				t.Errorf("Unexpected result for JoinGame on id %d:\nwant: %v\ngot: %v ", test.id, test.want, err)
			}
			if err == nil {
				countRequestedJoins++
			}
		})
	}
	return countRequestedJoins
}

func checkGamesCount(t *testing.T, pool GamersPool) {
	games := make(map[game.Game]bool)
	actualGamers := pool.ListGamers()

	for _, g := range actualGamers {
		games[g.GetGame()] = true
	}

	want := int(math.Ceil(float64(len(validGamers)) / 2.0))
	if len(games) != want {
		t.Errorf("Unexpected number of games for %d validGamers:\nwant: %d,\ngot %d", len(validGamers), want, len(games))
	}
}
