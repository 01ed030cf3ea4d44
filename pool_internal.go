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
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/game"
	"golang.org/x/exp/slices"
)

var errNoVacantGamer = errors.New("failed to find vacant gamer")

// action is a type with actions values.
type action int

// set of actions values of GamersPool object.
const (
	add      action = iota // add gamer to pool
	rem                    // remove gamer from pool
	rel                    // release all data
	lst                    // get list of gamers in pool
	joinG                  // join the Game or create a new one
	releaseG               // release the Game
	getG                   // get gamer's game
)

// command is a type to hold a comand to a GamersPool.
type command struct {
	act    action
	params GameParams
	gamer  *game.Gamer
	id     int
	rez    chan<- interface{}
}

// poolData is the state owned by the goroutine of a GamersPool.
type poolData struct {
	gamers map[int]*game.Gamer
	params map[game.Game]GameParams
	log    zerolog.Logger
}

// addGamer implements concurrently safe processing of querry of
// AddGamer function
func addGamer(pd *poolData, gamer *game.Gamer, rezChan chan<- interface{}) {
	defer close(rezChan)

	gCpy := *gamer
	if _, ok := pd.gamers[gCpy.ID]; ok {
		rezChan <- fmt.Errorf("failed to add gamer with id %d to a pool: %w", gCpy.ID, ErrIDOccupied)
		return
	}
	pd.gamers[gCpy.ID] = &gCpy
	pd.log.Debug().Int("gamer", gCpy.ID).Str("name", gCpy.Name).Msg("gamer added")
}

// rmGamer implements concurrently safe processing of querry of
// RmGamer function
func rmGamer(pd *poolData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	gamer, ok := pd.gamers[id]
	if !ok {
		return
	}
	leave(pd, gamer)
	delete(pd.gamers, id)

	gCpy := *gamer
	rezChan <- &gCpy
}

// listGamers implements concurrently safe processing of querry of
// ListGamers function
func listGamers(pd *poolData, rezChan chan<- interface{}) {
	defer close(rezChan)

	rez := make([]*game.Gamer, 0, len(pd.gamers))
	for k := range pd.gamers {
		gCpy := *pd.gamers[k]
		rez = append(rez, &gCpy)
	}
	slices.SortFunc(rez, func(a, b *game.Gamer) int {
		return a.ID - b.ID
	})
	rezChan <- rez
}

// getGamer implements concurrently safe processing of querry of
// GetGamer function
func getGamer(pd *poolData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	gamer, ok := pd.gamers[id]
	if !ok {
		rezChan <- fmt.Errorf("failed to get gamer for id %d: %w", id, ErrIDNotFound)
		return
	}
	gCpy := *gamer
	rezChan <- &gCpy
}

func joinOtherGame(pd *poolData, gamer *game.Gamer, params GameParams) error {
	for _, g := range pd.gamers {
		if gamer.ID == g.ID || g.IsVacant() {
			continue
		}
		if pd.params[g.GetGame()] != params {
			continue
		}

		// copy the gamer to prevent of changing by the Game
		gCpy := *gamer
		if err := g.GetGame().Join(&gCpy); err == nil {
			gamer.SetGame(g.GetGame())
			pd.log.Info().Int("gamer", gamer.ID).Int("partner", g.ID).Msg("gamer joined a game")
			return nil
		}
	}
	return errNoVacantGamer
}

func startOwnGame(pd *poolData, gamer *game.Gamer, params GameParams) error {
	gm, err := game.NewGame(params.SizeX, params.SizeY, params.Handicap, pd.log)
	if err != nil {
		return fmt.Errorf("failed to create game for gamer with id %d: %w: %w", gamer.ID, ErrGamerGameStart, err)
	}

	// copy the gamer to prevent of changing by the Game
	gCpy := *gamer
	if err := gm.Join(&gCpy); err != nil {
		gamer.SetGame(nil)
		gm.End()
		return fmt.Errorf("failed to join gamer with id %d to a game: %w: %w", gamer.ID, ErrGamerGameStart, err)
	}
	gamer.SetGame(gm)
	pd.params[gm] = params
	pd.log.Info().
		Int("gamer", gamer.ID).
		Int("size_x", params.SizeX).
		Int("size_y", params.SizeY).
		Msg("gamer started a game")
	return nil
}

// joinGame implements concurrently safe processing of querry of
// JoinGame function
func joinGame(pd *poolData, cmd *command) {
	defer close(cmd.rez)

	gamer, ok := pd.gamers[cmd.id]
	if !ok {
		cmd.rez <- fmt.Errorf("failed to join gamer with id %d to a game: %w", cmd.id, ErrIDNotFound)
		return
	}

	if !gamer.IsVacant() {
		cmd.rez <- fmt.Errorf("failed to join gamer with id %d to a game: %w", cmd.id, ErrGamerOccupied)
		return
	}

	err := joinOtherGame(pd, gamer, cmd.params)
	if errors.Is(err, errNoVacantGamer) {
		if err := startOwnGame(pd, gamer, cmd.params); err != nil {
			cmd.rez <- err
		}
	}
}

// releaseGame implements concurrently safe processing of querry of
// ReleaseGame function
func releaseGame(pd *poolData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	gamer, ok := pd.gamers[id]
	if !ok {
		rezChan <- fmt.Errorf("failed to release game for id %d: %w", id, ErrIDNotFound)
		return
	}
	leave(pd, gamer)
}

// leave takes the gamer away from his game, forgetting games nobody plays.
func leave(pd *poolData, gamer *game.Gamer) {
	gm := gamer.GetGame()
	if gm == nil {
		return
	}
	if err := gm.Leave(gamer.ID); err != nil {
		pd.log.Debug().Err(err).Int("gamer", gamer.ID).Msg("failed to leave a game")
	}
	gamer.SetGame(nil)

	for _, g := range pd.gamers {
		if g.GetGame() == gm {
			return
		}
	}
	delete(pd.params, gm)
}

// run processes commads for thread safe operations on pool.
func (gp GamersPool) run(logger zerolog.Logger) {
	pd := &poolData{
		gamers: make(map[int]*game.Gamer),
		params: make(map[game.Game]GameParams),
		log:    logger,
	}
	go func(gp GamersPool) {
		for cmd := range gp {
			switch cmd.act {
			case rel:
				close(gp)
				close(cmd.rez)

			case add:
				addGamer(pd, cmd.gamer, cmd.rez)
			case lst:
				listGamers(pd, cmd.rez)
			case rem:
				rmGamer(pd, cmd.id, cmd.rez)
			case joinG:
				joinGame(pd, cmd)
			case releaseG:
				releaseGame(pd, cmd.id, cmd.rez)
			case getG:
				getGamer(pd, cmd.id, cmd.rez)
			}
		}
	}(gp)
}
