package search

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"testing"

	"github.com/IlikeChooros/go-catapult/pkg/board"
	"github.com/IlikeChooros/go-catapult/pkg/eval"
)

func TestMain(m *testing.M) {
	SetSeedGeneratorFn(func() int64 {
		return 42
	})
	fmt.Printf("Using seed %d\n", SeedGeneratorFn())
	os.Exit(m.Run())
}

func newEngine(notation string) (*Engine, *board.Position) {
	pos := board.MustParse(notation, 4)
	return NewEngine(eval.New(pos.Geometry())), pos
}

func TestBestMoveTerminal(t *testing.T) {
	tests := []struct {
		name     string
		notation string
		side     board.Cell
		want     int
	}{
		{"draw", "abab/abab/baba/baba", board.PlayerA, DrawScore},
		{"own win", "4/4/4/bbbb", board.PlayerB, WinScore},
		{"opponent win", "4/4/4/bbbb", board.PlayerA, -WinScore},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, pos := newEngine(tt.notation)
			col, score := engine.BestMove(pos, 4, tt.side)
			if col != board.NoColumn || score != tt.want {
				t.Fatalf("BestMove = (%d, %d), want (%d, %d)", col, score, board.NoColumn, tt.want)
			}
		})
	}
}

func TestBestMoveDepthZero(t *testing.T) {
	engine, pos := newEngine("7/7/7/7/7/3a3")
	col, score := engine.BestMove(pos, 0, board.PlayerA)
	if col != board.NoColumn || score != engine.Evaluator().Score(pos, board.PlayerA) {
		t.Errorf("depth 0 must return the static score, got (%d, %d)", col, score)
	}
}

func TestTakesImmediateWin(t *testing.T) {
	for depth := 1; depth <= 4; depth++ {
		engine, pos := newEngine("7/7/7/7/7/aaa1bb1")
		col, score := engine.BestMove(pos, depth, board.PlayerA)
		if col != 3 || score != WinScore {
			t.Errorf("depth %d: BestMove = (%d, %d), want (3, %d)", depth, col, score, WinScore)
		}
	}
}

func TestBlocksThreat(t *testing.T) {
	engine, pos := newEngine("7/7/7/7/7/bbb1aa1")
	col, score := engine.BestMove(pos, 2, board.PlayerA)
	if col != 3 {
		t.Fatalf("expected the block in column 3, got %d (score %d)", col, score)
	}
	if score <= -WinScore {
		t.Errorf("blocking should avoid the loss, score %d", score)
	}
}

// Equal scores keep the first searched column, whatever the default was
func TestTieKeepsFirstColumn(t *testing.T) {
	geometry := board.Geometry{Rows: 1, Cols: 4, Connect: 4}
	pos := board.MustPosition(geometry)
	engine := NewEngine(eval.New(geometry))

	for seed := int64(0); seed < 20; seed++ {
		engine.SetRand(rand.New(rand.NewSource(seed)))
		if col, _ := engine.BestMove(pos, 1, board.PlayerA); col != 0 {
			t.Fatalf("seed %d: got column %d, want 0", seed, col)
		}
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	positions := []string{
		"7/7/7/7/7/7",
		"7/7/7/7/3b3/2aab2",
		"7/7/3b3/2aab2/1abba2/1baab2",
		"4/4/1b2/ab2",
	}

	for _, notation := range positions {
		for _, side := range []board.Cell{board.PlayerA, board.PlayerB} {
			engine, pos := newEngine(notation)
			depth := 4
			if pos.Cols() > 4 {
				depth = 3
			}

			_, pruned := engine.BestMove(pos, depth, side)
			prunedNodes := engine.Nodes()
			_, full := engine.Minimax(pos, depth, side)

			if pruned != full {
				t.Errorf("%s (%v): alpha-beta score %d != minimax score %d", notation, side, pruned, full)
			}
			if prunedNodes > engine.Nodes() {
				t.Errorf("%s: alpha-beta visited %d nodes, minimax only %d", notation, prunedNodes, engine.Nodes())
			}
		}
	}
}

func TestBestMoveDoesNotMutate(t *testing.T) {
	engine, pos := newEngine("7/7/7/7/3b3/2aab2")
	before := pos.Notation()
	engine.BestMove(pos, 4, board.PlayerA)
	if pos.Notation() != before {
		t.Fatalf("search changed the board: %s -> %s", before, pos.Notation())
	}
}

func TestSearchDepthLimit(t *testing.T) {
	engine, pos := newEngine("7/7/7/7/7/7")
	engine.SetLimits(DefaultLimits().SetDepth(4))

	roots, stops := 0, 0
	listener := NewStatsListener()
	listener.
		OnRootMove(func(Result) { roots++ }).
		OnStop(func(Result) { stops++ })
	engine.SetListener(listener)

	result := engine.Search(context.Background(), pos, board.PlayerA)
	if !result.HasMove() || result.Column < 0 || result.Column >= 7 {
		t.Fatalf("invalid column %d", result.Column)
	}
	if !result.Completed || result.StopReason != StopDepth {
		t.Errorf("expected a complete search, got %+v", result)
	}
	if roots != 7 || stops != 1 {
		t.Errorf("listener called %d/%d times, want 7/1", roots, stops)
	}

	_, score := NewEngine(engine.Evaluator()).BestMove(pos, 4, board.PlayerA)
	if result.Score != score {
		t.Errorf("Search score %d != BestMove score %d", result.Score, score)
	}
}

func TestSearchInterrupted(t *testing.T) {
	engine, pos := newEngine("7/7/7/7/7/7")
	engine.SetLimits(DefaultLimits())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := engine.Search(ctx, pos, board.PlayerA)
	if result.Completed {
		t.Fatal("cancelled search cannot be complete")
	}
	if result.StopReason&StopInterrupt != StopInterrupt {
		t.Errorf("stop reason = %v, want Interrupt", result.StopReason)
	}
	if result.HasMove() || result.Score != 0 {
		t.Errorf("no root column was searched, got column %d with score %d", result.Column, result.Score)
	}
}

func TestSearchNodeLimit(t *testing.T) {
	engine, pos := newEngine("7/7/7/7/7/7")
	engine.SetLimits(DefaultLimits().SetNodes(1000))

	result := engine.Search(context.Background(), pos, board.PlayerA)
	if result.Completed || result.StopReason&StopNodes != StopNodes {
		t.Errorf("expected the node limit to stop the search, got %+v", result)
	}
	// the first root column alone needs far more than 1000 nodes
	if result.HasMove() {
		t.Errorf("unfinished search returned column %d", result.Column)
	}
}

func TestSearchKeepsFinishedRootColumns(t *testing.T) {
	engine, pos := newEngine("7/7/7/7/7/7")
	engine.SetLimits(DefaultLimits().SetDepth(2))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	searched := 0
	listener := NewStatsListener()
	listener.OnRootMove(func(Result) {
		searched++
		if searched == 3 {
			cancel()
		}
	})
	engine.SetListener(listener)

	result := engine.Search(ctx, pos, board.PlayerA)
	if result.Completed || searched != 3 {
		t.Fatalf("expected the search to stop after 3 root columns, searched %d, %+v", searched, result)
	}
	if result.Column < 0 || result.Column > 2 {
		t.Errorf("column %d was not searched", result.Column)
	}
}

func TestSearchTerminal(t *testing.T) {
	engine, pos := newEngine("4/4/4/bbbb")
	engine.SetLimits(DefaultLimits().SetDepth(2))
	result := engine.Search(context.Background(), pos, board.PlayerA)
	if result.HasMove() || result.Score != -WinScore {
		t.Errorf("terminal search = %+v", result)
	}
}

func BenchmarkBestMoveDepth4(b *testing.B) {
	engine, pos := newEngine("7/7/7/7/3b3/2aab2")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.BestMove(pos, 4, board.PlayerA)
	}
}

func BenchmarkMinimaxDepth4(b *testing.B) {
	engine, pos := newEngine("7/7/7/7/3b3/2aab2")
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Minimax(pos, 4, board.PlayerA)
	}
}
