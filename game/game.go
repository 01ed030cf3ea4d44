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

// Package game provides thread safe game entity: two gamers sharing
// one session of go, with awaiting of the game begin and of turns.
package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/game/igame"
	"github.com/yagoggame/gorules/game/session"
)

var (
	// ErrNoPlace error occurs when third gamer tries to join the game
	ErrNoPlace = errors.New("no vacant place in the game")
	// ErrGameOver error occurs when attempt operation on game wich is over
	ErrGameOver = errors.New("game over")
	// ErrUnknownID error occurs when gamer with unknown id tries to operate on the game
	ErrUnknownID = errors.New("not joined gamer")
	// ErrNotYourTurn error occurs when gamer makes a turn out of his turn
	ErrNotYourTurn = errors.New("not a gamer's turn")
	// ErrWrongTurn error occurs when the turn breaks rules of the game
	ErrWrongTurn = errors.New("wrong turn")
	// ErrOtherGamerLeft error occurs when awaiting gamer left alone in the game
	ErrOtherGamerLeft = errors.New("other gamer left the game")
	// ErrGameDestroyed error occurs when game ended during awaiting
	ErrGameDestroyed = errors.New("game destroyed")
	// ErrResourceNotAvailable error occurs on any operation on the ended game
	ErrResourceNotAvailable = errors.New("resource is not available")
	// ErrCancelled error occurs when context of awaiting is done
	ErrCancelled = errors.New("cancelled")
	// ErrGameNotBegun error occurs when gamer acts before the second gamer joined
	ErrGameNotBegun = errors.New("game not begun")
)

// GamerState describes a gamer inside the game.
type GamerState struct {
	// colour of chip of this gamer
	Colour igame.ChipColour
	// name of this gamer
	Name string
	// delayed inform for WaitBegin's client
	beMSGChan chan<- interface{}
	// delayed inform for WaitTurn's client
	turnMSGChan chan<- interface{}
}

// Game is a datatype based on chanel, to provide a thread safe game entity.
type Game chan *gameCommand

// NewGame creates the Game on the sizeX x sizeY field.
// Game must be finished by calling of End() method or Leave() of all gamers.
func NewGame(sizeX, sizeY, handicap int, logger zerolog.Logger) (Game, error) {
	sess, err := session.New(sizeX, sizeY, handicap, session.WithLogger(logger))
	if err != nil {
		return nil, err
	}

	g := make(Game)
	g.run(sess, logger.With().Str("game", sess.ID()).Logger())
	return g, nil
}

// End releases game resources and close a Game object as chanel.
// Use this function only to abort, if creation failed.
// Normaly, Leave invocation for all gamers has the same consequences.
// If the End() invoked after this, an error will be returned.
func (g Game) End() (err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: endCMD, rez: c}
	<-c
	return nil
}

// Join tries to join gamer to this Game.
func (g Game) Join(gamer *Gamer) (err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: joinCMD, gamer: gamer, rez: c}

	if err := <-c; err != nil {
		return err.(error)
	}
	return nil
}

// GamerState returns a copy of internal state of a gamer.
func (g Game) GamerState(id int) (state *GamerState, err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: gamerStateCMD, id: id, rez: c}
	rez := <-c

	switch rez := rez.(type) {
	case error:
		return nil, rez
	case *GamerState:
		return rez, nil
	}
	return nil, fmt.Errorf("unknown type of value returned: %T: %v", rez, rez)
}

// WaitBegin waits for game begin.
// If gamer started this game, it awaits another gamer.
func (g Game) WaitBegin(ctx context.Context, id int) (err error) {
	defer recoverAsErr(&err)

	// buffered: a cancelled waiter does not read it, the game must not block on it later
	c := make(chan interface{}, 1)
	g <- &gameCommand{act: wBeginCMD, id: id, rez: c}
	return awaitOn(ctx, c)
}

// IsGameBegun returns true, if all gamers joined to a game.
// Function provided to avoid of sleep on WaitBegin call.
func (g Game) IsGameBegun(id int) (igb bool, err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{}, 1)
	g <- &gameCommand{act: isGameBegunCMD, id: id, rez: c}
	return boolResult(<-c)
}

// WaitTurn waits for gamer's turn.
func (g Game) WaitTurn(ctx context.Context, id int) (err error) {
	defer recoverAsErr(&err)

	// buffered: a cancelled waiter does not read it, the game must not block on it later
	c := make(chan interface{}, 1)
	g <- &gameCommand{act: wTurnCMD, id: id, rez: c}
	return awaitOn(ctx, c)
}

// IsMyTurn returns true, if now is a gamer's turn.
// Function provided to avoid of sleep on WaitTurn call.
func (g Game) IsMyTurn(id int) (imt bool, err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{}, 1)
	g <- &gameCommand{act: isMyTurnCMD, id: id, rez: c}
	return boolResult(<-c)
}

// MakeTurn tries to put gamer's chip to turn.
func (g Game) MakeTurn(id int, turn *igame.TurnData) (outcome *igame.MoveOutcome, err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: makeTurnCMD, id: id, rez: c, turn: turn}
	rez := <-c

	switch rez := rez.(type) {
	case error:
		return nil, rez
	case *igame.MoveOutcome:
		return rez, nil
	}
	return nil, fmt.Errorf("unknown type of value returned: %T: %v", rez, rez)
}

// Pass passes gamer's turn. The second pass in a row ends the game.
func (g Game) Pass(id int) (err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: passCMD, id: id, rez: c}
	return errResult(<-c)
}

// Surrender ends the game with the other gamer as the winner.
func (g Game) Surrender(id int) (err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: surrenderCMD, id: id, rez: c}
	return errResult(<-c)
}

// FieldState returns the state of the field.
// Joined gamer can request it after the game is over.
func (g Game) FieldState(id int) (state *igame.FieldState, err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: fieldStateCMD, id: id, rez: c}
	rez := <-c

	switch rez := rez.(type) {
	case error:
		return nil, rez
	case *igame.FieldState:
		return rez, nil
	}
	return nil, fmt.Errorf("unknown type of value returned: %T: %v", rez, rez)
}

// Leave leaves a game.
// No methods of this Game object should be invoked by this gamer after this call.
func (g Game) Leave(id int) (err error) {
	defer recoverAsErr(&err)

	c := make(chan interface{})
	g <- &gameCommand{act: leaveCMD, id: id, rez: c}
	return errResult(<-c)
}

func awaitOn(ctx context.Context, c <-chan interface{}) error {
	select {
	case rez := <-c:
		if err, ok := rez.(error); ok {
			return err
		}
	case <-ctx.Done():
		return fmt.Errorf("%w: %s", ErrCancelled, ctx.Err())
	}
	return nil
}

func boolResult(rez interface{}) (bool, error) {
	switch rez := rez.(type) {
	case error:
		return false, rez
	case bool:
		return rez, nil
	}
	return false, fmt.Errorf("unknown type of value returned: %T: %v", rez, rez)
}

func errResult(rez interface{}) error {
	if err, ok := rez.(error); ok {
		return err
	}
	return nil
}
