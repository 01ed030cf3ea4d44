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

package main

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/yagoggame/gorules/config"
	"github.com/yagoggame/gorules/game/capture"
	"github.com/yagoggame/gorules/game/igame"
	"github.com/yagoggame/gorules/game/session"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

type gameTask struct {
	number int
	seed   uint64
}

type gameReport struct {
	number   int
	result   igame.Result
	moves    int
	passes   int
	rejected int
}

// selfPlayStats sums up reports of finished games.
type selfPlayStats struct {
	Games     int
	BlackWins int
	WhiteWins int
	Ties      int
	Moves     int
	Passes    int
	Captured  int
	Rejected  int
}

func (st *selfPlayStats) add(r gameReport) {
	st.Games++
	switch {
	case r.result.Tie:
		st.Ties++
	case r.result.Winner == igame.Black:
		st.BlackWins++
	case r.result.Winner == igame.White:
		st.WhiteWins++
	}
	st.Moves += r.moves
	st.Passes += r.passes
	st.Rejected += r.rejected
	st.Captured += r.result.Scores[igame.Black] + r.result.Scores[igame.White]
}

func (st selfPlayStats) String() string {
	return fmt.Sprintf("games: %d, black: %d, white: %d, ties: %d, moves: %d, passes: %d, captured: %d, suicides rejected: %d",
		st.Games, st.BlackWins, st.WhiteWins, st.Ties, st.Moves, st.Passes, st.Captured, st.Rejected)
}

// runSelfPlay plays cfg.SelfPlay.Games random games on cfg.SelfPlay.Workers
// goroutines. The first broken invariant stops all of them.
func runSelfPlay(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (selfPlayStats, error) {
	logger.Info().
		Int("games", cfg.SelfPlay.Games).
		Int("workers", cfg.SelfPlay.Workers).
		Uint64("seed", cfg.SelfPlay.Seed).
		Msg("self play started")

	g, ctx := errgroup.WithContext(ctx)

	tasks := make(chan gameTask)
	reports := make(chan gameReport)

	g.Go(func() error {
		defer close(tasks)
		for i := 0; i < cfg.SelfPlay.Games; i++ {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case tasks <- gameTask{number: i + 1, seed: cfg.SelfPlay.Seed + uint64(i)}:
			}
		}
		return nil
	})

	wg := &sync.WaitGroup{}
	for i := 0; i < cfg.SelfPlay.Workers; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, cfg, logger, tasks, reports)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(reports)
		return nil
	})

	var stats selfPlayStats
	g.Go(func() error {
		for r := range reports {
			stats.add(r)
			logger.Debug().Int("number", r.number).Stringer("result", r.result).Msg("self play game finished")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return stats, err
	}
	logger.Info().Stringer("stats", stats).Msg("self play finished")
	return stats, nil
}

func playGames(ctx context.Context, cfg *config.Config, logger zerolog.Logger,
	tasks <-chan gameTask, reports chan<- gameReport) error {
	for task := range tasks {
		r, err := playRandomGame(cfg, logger, task)
		if err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case reports <- r:
		}
	}
	return nil
}

// playRandomGame chooses uniformly among empty points or a pass, checking
// the session after every accepted action. Moves over cfg.SelfPlay.MaxMoves
// are replaced by passes.
func playRandomGame(cfg *config.Config, logger zerolog.Logger, task gameTask) (gameReport, error) {
	r := gameReport{number: task.number}

	s, err := session.New(cfg.Board.SizeX, cfg.Board.SizeY, cfg.Board.Handicap,
		session.WithLogger(logger.With().Int("selfplay", task.number).Logger()),
		session.WithPlayers(cfg.Players.Black, cfg.Players.White))
	if err != nil {
		return r, err
	}
	rnd := rand.New(rand.NewSource(task.seed))

	for s.Phase() != session.GameOver {
		colour := s.CurrentPlayer()
		empty := emptyPoints(s.Board())

		pass := s.MoveCount() >= cfg.SelfPlay.MaxMoves || len(empty) == 0
		if !pass {
			i := rnd.Intn(len(empty) + 1)
			if i == len(empty) {
				pass = true
			} else {
				_, err := s.Move(colour, &empty[i])
				switch {
				case errors.Is(err, capture.ErrSuicide):
					r.rejected++
					pass = true
				case err != nil:
					return r, fmt.Errorf("game %d, move %v of %v: %w", task.number, empty[i], colour, err)
				}
			}
		}
		if pass {
			if err := s.Pass(colour); err != nil {
				return r, fmt.Errorf("game %d, pass of %v: %w", task.number, colour, err)
			}
			r.passes++
		}

		if err := s.Validate(); err != nil {
			return r, fmt.Errorf("game %d after %d moves: %w", task.number, s.MoveCount(), err)
		}
	}

	r.moves = s.MoveCount()
	r.result, err = s.Result()
	return r, err
}

func emptyPoints(board [][]igame.Point) []igame.TurnData {
	var empty []igame.TurnData
	for y, row := range board {
		for x, p := range row {
			if p.Kind == igame.Empty {
				empty = append(empty, igame.TurnData{X: x, Y: y})
			}
		}
	}
	return empty
}
