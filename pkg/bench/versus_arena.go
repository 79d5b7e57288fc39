package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"runtime"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/IlikeChooros/go-catapult/pkg/aim"
	"github.com/IlikeChooros/go-catapult/pkg/board"
	"github.com/IlikeChooros/go-catapult/pkg/config"
	"github.com/IlikeChooros/go-catapult/pkg/eval"
	"github.com/IlikeChooros/go-catapult/pkg/opponent"
	"github.com/IlikeChooros/go-catapult/pkg/search"
)

/*
Arena benchmark subpackage, plays a series of games between two automated
opponents. Every launch is flown with the trajectory predictor, so a disc
sinks into whatever column it lands above, or misses the board entirely.
*/

type VersusArena struct {
	VersusArenaStats
	Player1  Player
	Player2  Player
	NGames   uint
	NThreads uint
	// A game with this many launches is a draw, 0 means 4 launches per cell
	MaxTurns int

	cfg       *config.Config
	tables    map[board.Cell]*aim.Table
	evaluator *eval.Evaluator
	wg        sync.WaitGroup
	finished  atomic.Bool
	ctx       context.Context
	logger    *zap.Logger
}

// NewVersusArena calibrates the launches of both sides. Columns that don't
// converge are tolerated, the opponents aim at their fallback targets
func NewVersusArena(ctx context.Context, cfg *config.Config, p1, p2 Player, logger *zap.Logger) (*VersusArena, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	va := &VersusArena{
		Player1:   p1,
		Player2:   p2,
		NGames:    100,
		NThreads:  2,
		cfg:       cfg,
		tables:    make(map[board.Cell]*aim.Table, 2),
		evaluator: cfg.Evaluator(),
		ctx:       ctx,
		logger:    logger,
	}

	for _, side := range []board.Cell{board.PlayerA, board.PlayerB} {
		table, err := aim.Calibrate(ctx, cfg.AimParams(side, logger.With(zap.Stringer("side", side))))
		if err != nil && !errors.Is(err, aim.ErrNotConverged) {
			return nil, fmt.Errorf("bench: calibrating side %v: %w", side, err)
		}
		va.tables[side] = table
	}
	return va, nil
}

func (va *VersusArena) WithContext(ctx context.Context) *VersusArena {
	va.ctx = ctx
	return va
}

func (va *VersusArena) Setup(nGames uint, nThreads uint) {
	va.NGames = nGames
	va.NThreads = max(nThreads, 1)
}

// Calibrated aim table of the side
func (va *VersusArena) Table(side board.Cell) *aim.Table {
	return va.tables[side]
}

func (va *VersusArena) Wait() {
	va.wg.Wait()

	for {
		if va.finished.Load() {
			break
		}
		runtime.Gosched()
	}
}

func (va *VersusArena) Start(listener ListenerLike) {
	if listener == nil {
		listener = &DefaultListener{}
	}

	// Start equally distributed work between worker threads
	va.finished.Store(false)
	listener.OnStart()
	nGames := va.NGames / va.NThreads
	rest := va.NGames % va.NThreads

	va.wg.Add(int(va.NThreads))
	for i := range va.NThreads {
		delta := 0
		if rest > 0 {
			delta = 1
			rest--
		}

		l := listener.Clone()
		l.SetRow(int(i) + statsRowStart)
		go va.worker(int(i), int(nGames)+delta, l)
	}
}

func (va *VersusArena) newOpponent(player Player, side board.Cell, seed int64) *opponent.Opponent {
	return opponent.New(side, player.Difficulty, va.tables[side], va.evaluator,
		opponent.WithRand(rand.New(rand.NewSource(seed))),
		opponent.WithLogger(va.logger.With(zap.Stringer("player", player))),
	)
}

func (va *VersusArena) worker(id int, nGames int, listener ListenerLike) {
	seed := search.SeedGeneratorFn() + int64(id)*7919
	r := rand.New(rand.NewSource(seed))
	localStats := VersusArenaStats{}

	// first to move plays a, each player has an opponent for both sides
	p1 := map[board.Cell]*opponent.Opponent{
		board.PlayerA: va.newOpponent(va.Player1, board.PlayerA, seed+1),
		board.PlayerB: va.newOpponent(va.Player1, board.PlayerB, seed+2),
	}
	p2 := map[board.Cell]*opponent.Opponent{
		board.PlayerA: va.newOpponent(va.Player2, board.PlayerA, seed+3),
		board.PlayerB: va.newOpponent(va.Player2, board.PlayerB, seed+4),
	}

Loop:
	for i := range nGames {
		p1First := r.Int()%2 == 0
		first, second := p2[board.PlayerA], p1[board.PlayerB]
		if p1First {
			first, second = p1[board.PlayerA], p2[board.PlayerB]
		}
		outcome, ok := va.playGame(first, second, listener, id, nGames, i, &localStats)
		if !ok {
			break Loop
		}

		switch result := toPlayerResult(outcome, p1First); result {
		case VersusDraw:
			atomic.AddUint32(&va.draws, 1)
			localStats.draws++
		case VersusPl1Win:
			atomic.AddUint32(&va.p1Wins, 1)
			localStats.p1Wins++
		default:
			atomic.AddUint32(&va.p2Wins, 1)
			localStats.p2Wins++
		}
		if !outcome.IsDraw {
			if outcome.FirstPlayerWon {
				atomic.AddUint32(&va.firstToMoveWins, 1)
			} else {
				atomic.AddUint32(&va.secondToMoveWins, 1)
			}
		}
	}

	listener.OnFinishedWork(VersusWorkerInfo{
		WorkerID:      id,
		NGames:        nGames,
		FinishedGames: localStats.Total(),
		P1Wins:        int(localStats.p1Wins),
		P2Wins:        int(localStats.p2Wins),
		Draws:         int(localStats.draws),
		P1Name:        va.Player1.String(),
		P2Name:        va.Player2.String(),
	})
	va.wg.Done()

	if id == 0 {
		va.wg.Wait()
		listener.Summary(va.Summary())
		listener.OnEnd()
		va.finished.Store(true)
	}
}

func (va *VersusArena) Summary() VersusSummaryInfo {
	return VersusSummaryInfo{
		TotalGames:       va.Total(),
		P1Wins:           va.P1Wins(),
		P2Wins:           va.P2Wins(),
		FirstToMoveWins:  va.FirstToMoveWins(),
		SecondToMoveWins: va.SecondToMoveWins(),
		Draws:            va.Draws(),
		Hits:             va.Hits(),
		Misses:           va.Misses(),
		Workers:          int(va.NThreads),
		P1Name:           va.Player1.String(),
		P2Name:           va.Player2.String(),
	}
}

// Land flies the launch from the side's spawn and returns the column the disc
// sinks into, or board.NoColumn if it misses the board
func (va *VersusArena) Land(side board.Cell, launch aim.Launch) int {
	_, col := va.cfg.Fly(va.tables[side].Origin(), launch)
	return col
}

// playGame returns false, if the arena's context was cancelled mid-game
func (va *VersusArena) playGame(
	first, second *opponent.Opponent, listener ListenerLike,
	workerId, nGames, finishedGames int, localStats *VersusArenaStats,
) (GameOutcome, bool) {
	pos := board.MustPosition(va.cfg.Geometry)
	moves := make([]int, 0, pos.Geometry().Cells())
	maxTurns := va.MaxTurns
	if maxTurns <= 0 {
		maxTurns = 4 * pos.Geometry().Cells()
	}

	info := func() VersusWorkerInfo {
		return VersusWorkerInfo{
			WorkerID:      workerId,
			Moves:         moves,
			GameMoveNum:   len(moves),
			NGames:        nGames,
			FinishedGames: finishedGames,
			P1Wins:        int(localStats.p1Wins),
			P2Wins:        int(localStats.p2Wins),
			Draws:         int(localStats.draws),
			P1Name:        va.Player1.String(),
			P2Name:        va.Player2.String(),
		}
	}

	listener.OnGameStart()
	players := [2]*opponent.Opponent{first, second}
	for turn := 0; turn < maxTurns && !pos.IsTerminated(); turn++ {
		select {
		case <-va.ctx.Done():
			return GameOutcome{}, false
		default:
			// continue
		}

		player := players[turn%2]
		launch, decision := player.NextLaunch(pos)
		col := va.Land(player.Side(), launch)

		if col == board.NoColumn || !pos.CanDrop(col) {
			col = board.NoColumn
			atomic.AddUint32(&va.misses, 1)
		} else {
			_, _ = pos.Drop(col, player.Side())
			if col == decision.Column {
				atomic.AddUint32(&va.hits, 1)
			} else {
				atomic.AddUint32(&va.misses, 1)
			}
		}
		moves = append(moves, col)
		listener.OnMoveMade(info())
	}
	listener.OnFinishedGame(info())

	switch pos.Termination() {
	case board.TerminationAWon:
		return GameOutcome{FirstPlayerWon: true}, true
	case board.TerminationBWon:
		return GameOutcome{FirstPlayerWon: false}, true
	}
	return GameOutcome{IsDraw: true}, true
}
