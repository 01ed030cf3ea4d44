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

// Package session runs one game of go: turn order, move validation,
// groups, captures and score.
//
// A Session is not safe for concurrent use. It is owned by whoever
// drives the turns; package game wraps it for shared access.
package session

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/game/capture"
	"github.com/yagoggame/gorules/game/field"
	"github.com/yagoggame/gorules/game/group"
	"github.com/yagoggame/gorules/game/igame"
)

var (
	// ErrNotYourTurn error occurs when a colour moves out of turn
	ErrNotYourTurn = errors.New("not the player's turn")
	// ErrGameOver error occurs when attempt operation on game wich is over
	ErrGameOver = errors.New("the game is over")
	// ErrGameNotOver error occurs when result is requested before the end
	ErrGameNotOver = errors.New("the game is not over yet")
	// ErrHandicap error occurs when New is called with wrong handicap
	ErrHandicap = errors.New("handicap is out of range (from 0 to 9)")
)

const maxHandicap = 9

// Phase is the state of the session's state machine.
type Phase int

// Set of session phases
const (
	AwaitingMove Phase = iota
	Resolving
	GameOver
)

// String provides compatibility with Stringer interface.
func (p Phase) String() string {
	switch p {
	case AwaitingMove:
		return "awaiting move"
	case Resolving:
		return "resolving"
	case GameOver:
		return "game over"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Player holds display facing data of a side.
type Player struct {
	Name   string
	Colour igame.ChipColour
	Score  int
}

// Record is an entry of the game history: an accepted move or a pass.
type Record struct {
	Number   int
	Colour   igame.ChipColour
	Pass     bool
	Position igame.TurnData
	Captured int
}

// GroupInfo describes a group of connected chips.
type GroupInfo struct {
	Colour    igame.ChipColour
	Members   []igame.TurnData
	Liberties []igame.TurnData
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger of the session.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Session) {
		s.log = logger
	}
}

// WithPlayers sets names of the black and the white players.
func WithPlayers(black, white string) Option {
	return func(s *Session) {
		s.players[igame.Black].Name = black
		s.players[igame.White].Name = white
	}
}

// Session holds the state of one game.
type Session struct {
	id       uuid.UUID
	field    *field.Field
	regs     *group.Registries
	resolver *capture.Resolver
	players  map[igame.ChipColour]*Player
	current  igame.ChipColour
	phase    Phase
	moves    int
	passes   int
	handicap int
	result   *igame.Result
	history  []Record
	log      zerolog.Logger
}

// New starts a game on a sizeX x sizeY field. Black moves first.
// The handicap is recorded only, no chips are placed for it.
func New(sizeX, sizeY, handicap int, opts ...Option) (*Session, error) {
	if handicap < 0 || handicap > maxHandicap {
		return nil, fmt.Errorf("%w: got %d", ErrHandicap, handicap)
	}
	f, err := field.New(sizeX, sizeY)
	if err != nil {
		return nil, err
	}

	s := &Session{
		id:    uuid.New(),
		field: f,
		regs:  group.NewRegistries(),
		players: map[igame.ChipColour]*Player{
			igame.Black: {Name: igame.Black.String(), Colour: igame.Black},
			igame.White: {Name: igame.White.String(), Colour: igame.White},
		},
		current:  igame.Black,
		phase:    AwaitingMove,
		handicap: handicap,
		log:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With().Str("game", s.id.String()).Logger()
	s.resolver = capture.New(s.log)

	s.log.Debug().
		Int("size_x", sizeX).
		Int("size_y", sizeY).
		Int("handicap", handicap).
		Msg("game created")
	return s, nil
}

// ID returns the unique identifier of the session.
func (s *Session) ID() string {
	return s.id.String()
}

// Size returns dimensions of the field.
func (s *Session) Size() (sizeX, sizeY int) {
	return s.field.SizeX(), s.field.SizeY()
}

// Handicap returns the recorded handicap.
func (s *Session) Handicap() int {
	return s.handicap
}

// Phase returns the state of the session.
func (s *Session) Phase() Phase {
	return s.phase
}

// CurrentPlayer returns the colour to move.
func (s *Session) CurrentPlayer() igame.ChipColour {
	return s.current
}

// MoveCount returns the number of accepted moves, passes excluded.
func (s *Session) MoveCount() int {
	return s.moves
}

// Board returns a copy of the points, row-major: [y][x].
func (s *Session) Board() [][]igame.Point {
	return s.field.Snapshot()
}

// String renders the field.
func (s *Session) String() string {
	return s.field.String()
}

// Scores returns captured chips credited to each colour.
func (s *Session) Scores() map[igame.ChipColour]int {
	return map[igame.ChipColour]int{
		igame.Black: s.players[igame.Black].Score,
		igame.White: s.players[igame.White].Score,
	}
}

// Leader returns the colour with more captured chips, NoColour when even.
// After a surrender the result, not the leader, tells the winner.
func (s *Session) Leader() igame.ChipColour {
	black, white := s.players[igame.Black].Score, s.players[igame.White].Score
	switch {
	case black > white:
		return igame.Black
	case white > black:
		return igame.White
	}
	return igame.NoColour
}

// GroupAt describes the group holding the chip at td.
func (s *Session) GroupAt(td igame.TurnData) (GroupInfo, bool) {
	p := s.field.At(td)
	if p.Kind != igame.Occupied {
		return GroupInfo{}, false
	}
	g, ok := s.regs.For(p.Colour).GroupAt(td)
	if !ok {
		return GroupInfo{}, false
	}
	return GroupInfo{
		Colour:    g.Colour(),
		Members:   g.Members(),
		Liberties: g.Liberties(),
	}, true
}

// Player returns a copy of the player of colour.
func (s *Session) Player(colour igame.ChipColour) (Player, bool) {
	p, ok := s.players[colour]
	if !ok {
		return Player{}, false
	}
	return *p, true
}

// Players returns copies of the black and the white players.
func (s *Session) Players() []Player {
	return []Player{*s.players[igame.Black], *s.players[igame.White]}
}

// History returns accepted moves and passes in order.
func (s *Session) History() []Record {
	history := make([]Record, len(s.history))
	copy(history, s.history)
	return history
}

// Result returns the outcome of a finished game.
func (s *Session) Result() (igame.Result, error) {
	if s.result == nil {
		return igame.Result{}, ErrGameNotOver
	}
	return copyResult(s.result), nil
}

// State calculate full state description
func (s *Session) State() *igame.FieldState {
	state := &igame.FieldState{
		ID:            s.ID(),
		SizeX:         s.field.SizeX(),
		SizeY:         s.field.SizeY(),
		Handicap:      s.handicap,
		Points:        s.field.Snapshot(),
		Scores:        s.Scores(),
		ChipsOnBoard:  make(map[igame.ChipColour][]igame.TurnData, 2),
		CurrentPlayer: s.current,
		MoveNumber:    s.moves,
		GameOver:      s.result != nil,
	}
	for _, colour := range []igame.ChipColour{igame.Black, igame.White} {
		state.ChipsOnBoard[colour] = s.field.Stones(colour)
	}
	if s.result != nil {
		res := copyResult(s.result)
		state.Result = &res
	}
	return state
}

func copyResult(res *igame.Result) igame.Result {
	cpy := *res
	cpy.Scores = make(map[igame.ChipColour]int, len(res.Scores))
	for c, score := range res.Scores {
		cpy.Scores[c] = score
	}
	return cpy
}
