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

package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/game/igame"
	"github.com/yagoggame/gorules/game/session"
	"golang.org/x/exp/rand"
)

// gameAction is a type with game action values
type gameAction int

// set of actions values of Game object
const (
	joinCMD        gameAction = iota // join This Game
	endCMD                           // finish this game
	gamerStateCMD                    // state of a gamer
	fieldStateCMD                    // state of the field
	makeTurnCMD                      // make a turn
	passCMD                          // pass a turn
	surrenderCMD                     // give up
	isGameBegunCMD                   // request of state to avoid of wBeginCMD
	isMyTurnCMD                      // request of state to avoid of wTurnCMD
	leaveCMD                         // leave a game

	// action, which can cause an awaiting
	wBeginCMD // wait of game begin
	wTurnCMD  // wait for your turn
)

// gameCommand is a type to hold a comand to a Game
type gameCommand struct {
	act   gameAction
	gamer *Gamer
	id    int
	rez   chan<- interface{}
	turn  *igame.TurnData
}

// gameData is the state owned by the goroutine of a Game.
type gameData struct {
	gamerStates map[int]*GamerState
	sess        *session.Session
	left        bool
	rnd         *rand.Rand
	log         zerolog.Logger
}

// over reports whether a gamer left or the session is finished.
func (gd *gameData) over() bool {
	return gd.left || gd.sess.Phase() == session.GameOver
}

func (gd *gameData) isMyTurn(gs *GamerState) bool {
	return gs.Colour == gd.sess.CurrentPlayer()
}

// recoverAsErr processes the panic
// on any action after closing the Game as chanel
func recoverAsErr(err *error) {
	r := recover()
	if r == nil {
		return
	}

	if errR, ok := r.(error); ok {
		if strings.Compare(errR.Error(), "send on closed channel") != 0 {
			panic(r)
		}
		*err = ErrResourceNotAvailable
		return
	}
	panic(r)
}

// Process queries

// join implements concurrently safe processing of querry of
// Join function
func join(gd *gameData, gamer *Gamer, rezChan chan<- interface{}) {
	defer close(rezChan)

	if len(gd.gamerStates) > 1 {
		rezChan <- ErrNoPlace
		return
	}

	if gd.over() {
		rezChan <- ErrGameOver
		return
	}

	chipColour := igame.ChipColour(gd.rnd.Intn(2) + 1)
	for id := range gd.gamerStates {
		chipColour = gd.gamerStates[id].Colour.Opposite()
	}

	gd.gamerStates[gamer.ID] = &GamerState{
		Colour: chipColour,
		Name:   gamer.Name,
	}
	gd.log.Info().Int("gamer", gamer.ID).Stringer("colour", chipColour).Msg("gamer joined")
}

// gamerState implements concurrently safe processing of querry of
// GamerState function
func gamerState(gd *gameData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	gs, ok := gd.gamerStates[id]
	if !ok {
		rezChan <- fmt.Errorf("failed to gamerState for gamer with id %d: %w", id, ErrUnknownID)
		return
	}

	// make a copy of gamer state to prevent change from the outside
	rezChan <- &GamerState{Colour: gs.Colour, Name: gs.Name}
}

// fieldState implements concurrently safe processing of querry of
// FieldState function
func fieldState(gd *gameData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	if _, ok := gd.gamerStates[id]; !ok {
		rezChan <- fmt.Errorf("failed to fieldState for gamer with id %d: %w", id, ErrUnknownID)
		return
	}
	rezChan <- gd.sess.State()
}

// waitBegin implements concurrently safe processing of querry of
// WaitBegin function
func waitBegin(gd *gameData, id int, rezChan chan<- interface{}) {
	gs, err := getGamerStateAndChecks(gd, id)
	if err != nil {
		rezChan <- err
		close(rezChan)
		return
	}

	// put chanel to report on estimation of game begin condition in safe place.
	gs.beMSGChan = rezChan

	// if number of players enough to begin a game - report to all players.
	if len(gd.gamerStates) == 2 {
		for _, gs := range gd.gamerStates {
			reportOnChan(&gs.beMSGChan, nil)
		}
	}
}

// isGameBegun implements concurrently safe processing of querry of
// IsGameBegun function
func isGameBegun(gd *gameData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	if _, err := getGamerStateAndChecks(gd, id); err != nil {
		rezChan <- err
		return
	}

	rezChan <- len(gd.gamerStates) == 2
}

// waitTurn implements concurrently safe processing of querry of
// WaitTurn function
func waitTurn(gd *gameData, id int, rezChan chan<- interface{}) {
	gs, err := getGamerStateAndChecks(gd, id)
	if err != nil {
		rezChan <- err
		close(rezChan)
		return
	}

	if gd.isMyTurn(gs) {
		close(rezChan)
		return
	}

	// put chanel to report on estimation of player's turn begin condition in safe place.
	gs.turnMSGChan = rezChan
}

// isMyTurn implements concurrently safe processing of querry of
// IsMyTurn function
func isMyTurn(gd *gameData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	gs, err := getGamerStateAndChecks(gd, id)
	if err != nil {
		rezChan <- err
		return
	}

	rezChan <- gd.isMyTurn(gs)
}

// makeTurn implements concurrently safe processing of querry of
// MakeTurn function
func makeTurn(gd *gameData, id int, turn *igame.TurnData, rezChan chan<- interface{}) {
	defer close(rezChan)

	gs, err := getActiveGamerState(gd, id, "makeTurn")
	if err != nil {
		rezChan <- err
		return
	}

	outcome, err := gd.sess.Move(gs.Colour, turn)
	if err != nil {
		rezChan <- fmt.Errorf("failed to makeTurn for gamer with id %d: %w: %w", id, ErrWrongTurn, err)
		return
	}

	rezChan <- outcome
	reportOnTurnChange(gd)
}

// pass implements concurrently safe processing of querry of
// Pass function
func pass(gd *gameData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	gs, err := getActiveGamerState(gd, id, "pass")
	if err != nil {
		rezChan <- err
		return
	}

	if err := gd.sess.Pass(gs.Colour); err != nil {
		rezChan <- fmt.Errorf("failed to pass for gamer with id %d: %w: %w", id, ErrWrongTurn, err)
		return
	}
	reportOnTurnChange(gd)
}

// surrender implements concurrently safe processing of querry of
// Surrender function
func surrender(gd *gameData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	gs, err := getGamerStateAndChecks(gd, id)
	if err != nil {
		rezChan <- err
		return
	}

	if err := gd.sess.Surrender(gs.Colour); err != nil {
		rezChan <- fmt.Errorf("failed to surrender for gamer with id %d: %w", id, err)
		return
	}
	reportOnTurnChange(gd)
}

// leaveGame implements concurrently safe processing of querry of
// LeaveGame function
func leaveGame(gd *gameData, id int, rezChan chan<- interface{}) {
	defer close(rezChan)

	// this action may be called only for joined players.
	gs, ok := gd.gamerStates[id]
	if !ok {
		rezChan <- fmt.Errorf("failed to leaveGame for gamer with id %d: %w", id, ErrUnknownID)
		return
	}

	// the gamer leaving an unfinished game loses it.
	if gd.sess.Phase() != session.GameOver && len(gd.gamerStates) == 2 {
		if err := gd.sess.Surrender(gs.Colour); err != nil {
			gd.log.Debug().Err(err).Int("gamer", id).Msg("failed to surrender on leave")
		}
	}
	gd.left = true

	// report to other player's, if they are awaiting somesthing, that other player left the game.
	for _, gs := range gd.gamerStates {
		reportOnChan(&gs.beMSGChan, ErrOtherGamerLeft)
		reportOnChan(&gs.turnMSGChan, ErrOtherGamerLeft)
	}

	delete(gd.gamerStates, id)
	gd.log.Info().Int("gamer", id).Msg("gamer left")
}

// helpers

// reportOnChan passes deferred data if needed
func reportOnChan(rezChan *chan<- interface{}, val interface{}) {
	if *rezChan != nil {
		if val != nil {
			*rezChan <- val
		}
		close(*rezChan)
		*rezChan = nil
	}
}

func getGamerStateAndChecks(gd *gameData, id int) (gs *GamerState, err error) {
	gs, ok := gd.gamerStates[id]
	if !ok {
		return nil, fmt.Errorf("failed to operate for gamer with id %d: %w", id, ErrUnknownID)
	}

	if gd.over() {
		return nil, ErrGameOver
	}
	return gs, nil
}

// getActiveGamerState returns the state of the gamer whose turn it is.
func getActiveGamerState(gd *gameData, id int, op string) (*GamerState, error) {
	gs, err := getGamerStateAndChecks(gd, id)
	if err != nil {
		return nil, err
	}
	if len(gd.gamerStates) != 2 {
		return nil, fmt.Errorf("failed to %s for gamer with id %d: %w", op, id, ErrGameNotBegun)
	}
	if !gd.isMyTurn(gs) {
		return nil, fmt.Errorf("failed to %s for gamer with id %d: %w", op, id, ErrNotYourTurn)
	}
	return gs, nil
}

// reportOnTurnChange wakes the gamer awaiting his turn,
// or all awaiting gamers when the game is over.
func reportOnTurnChange(gd *gameData) {
	if gd.over() {
		for _, gs := range gd.gamerStates {
			reportOnChan(&gs.beMSGChan, ErrGameOver)
			reportOnChan(&gs.turnMSGChan, ErrGameOver)
		}
		return
	}

	for _, gs := range gd.gamerStates {
		if gd.isMyTurn(gs) {
			reportOnChan(&gs.turnMSGChan, nil)
		}
	}
}

// run processes commads for thread safe operations on Game.
func (g Game) run(sess *session.Session, logger zerolog.Logger) {
	gd := &gameData{
		gamerStates: make(map[int]*GamerState),
		sess:        sess,
		rnd:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		log:         logger,
	}

	go func(g Game) {
		closed := false
		for cmd := range g {
			switch cmd.act {
			case endCMD:
				close(g)
				close(cmd.rez)
				closed = true

			case joinCMD:
				join(gd, cmd.gamer, cmd.rez)
			case gamerStateCMD:
				gamerState(gd, cmd.id, cmd.rez)
			case fieldStateCMD:
				fieldState(gd, cmd.id, cmd.rez)
			case wBeginCMD:
				waitBegin(gd, cmd.id, cmd.rez)
			case wTurnCMD:
				waitTurn(gd, cmd.id, cmd.rez)
			case isMyTurnCMD:
				isMyTurn(gd, cmd.id, cmd.rez)
			case isGameBegunCMD:
				isGameBegun(gd, cmd.id, cmd.rez)
			case makeTurnCMD:
				makeTurn(gd, cmd.id, cmd.turn, cmd.rez)
			case passCMD:
				pass(gd, cmd.id, cmd.rez)
			case surrenderCMD:
				surrender(gd, cmd.id, cmd.rez)
			case leaveCMD:
				leaveGame(gd, cmd.id, cmd.rez)
			}
			if !closed && gd.left && len(gd.gamerStates) == 0 {
				close(g)
				closed = true
			}
		}
		for _, gs := range gd.gamerStates {
			reportOnChan(&gs.beMSGChan, ErrGameDestroyed)
			reportOnChan(&gs.turnMSGChan, ErrGameDestroyed)
		}
		gd.log.Debug().Msg("game destroyed")
	}(g)
}
