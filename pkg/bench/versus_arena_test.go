package bench

import (
	"context"
	"io"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/muesli/termenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/IlikeChooros/go-catapult/pkg/board"
	"github.com/IlikeChooros/go-catapult/pkg/config"
	"github.com/IlikeChooros/go-catapult/pkg/opponent"
	"github.com/IlikeChooros/go-catapult/pkg/search"
)

func TestMain(m *testing.M) {
	search.SetSeedGeneratorFn(func() int64 { return 42 })
	os.Exit(m.Run())
}

type countingListener struct {
	DefaultListener
	games    *atomic.Int32
	launches *atomic.Int32
	finished *atomic.Int32
	summary  *VersusSummaryInfo
}

func newCountingListener() *countingListener {
	return &countingListener{
		games:    &atomic.Int32{},
		launches: &atomic.Int32{},
		finished: &atomic.Int32{},
		summary:  &VersusSummaryInfo{},
	}
}

func (c *countingListener) Clone() ListenerLike {
	clone := *c
	return &clone
}

func (c *countingListener) OnFinishedGame(info VersusWorkerInfo) {
	c.games.Add(1)
	c.launches.Add(int32(info.GameMoveNum))
}

func (c *countingListener) OnFinishedWork(info VersusWorkerInfo) {
	c.finished.Add(1)
}

func (c *countingListener) Summary(summary VersusSummaryInfo) {
	*c.summary = summary
}

func newArena(t *testing.T, p1, p2 Player) *VersusArena {
	t.Helper()
	arena, err := NewVersusArena(context.Background(), config.Default(), p1, p2, zaptest.NewLogger(t, zaptest.Level(zap.InfoLevel)))
	if err != nil {
		t.Fatalf("NewVersusArena: %v", err)
	}
	return arena
}

func TestArenaTotals(t *testing.T) {
	arena := newArena(t,
		Player{Name: "easy", Difficulty: opponent.Easy},
		Player{Name: "medium", Difficulty: opponent.Medium},
	)
	arena.Setup(6, 2)

	listener := newCountingListener()
	arena.Start(listener)
	arena.Wait()

	if got := arena.Total(); got != 6 {
		t.Fatalf("played %d games, want 6", got)
	}
	if got := listener.games.Load(); got != 6 {
		t.Errorf("listener saw %d games, want 6", got)
	}
	if got := listener.finished.Load(); got != 2 {
		t.Errorf("%d workers finished, want 2", got)
	}
	if got := arena.FirstToMoveWins() + arena.SecondToMoveWins() + arena.Draws(); got != 6 {
		t.Errorf("first + second to move wins + draws = %d, want 6", got)
	}
	if launches := int(listener.launches.Load()); arena.Hits()+arena.Misses() != launches {
		t.Errorf("hits %d + misses %d != launches %d", arena.Hits(), arena.Misses(), launches)
	}

	summary := *listener.summary
	if summary.TotalGames != 6 || summary.Workers != 2 {
		t.Errorf("unexpected summary %+v", summary)
	}
	if summary.P1Name != "easy" || summary.P2Name != "medium" {
		t.Errorf("summary names = %q, %q", summary.P1Name, summary.P2Name)
	}
}

func TestArenaCancelled(t *testing.T) {
	arena := newArena(t, Player{Difficulty: opponent.Extreme}, Player{Difficulty: opponent.Extreme})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	arena.WithContext(ctx).Setup(10, 3)

	listener := newCountingListener()
	arena.Start(listener)
	arena.Wait()

	if arena.Total() != 0 || listener.games.Load() != 0 {
		t.Errorf("cancelled arena played %d games", arena.Total())
	}
	if got := listener.finished.Load(); got != 3 {
		t.Errorf("%d workers finished, want 3", got)
	}
}

// Without noise every calibrated launch sinks into its own column
func TestTableLaunchesLandInTheirColumn(t *testing.T) {
	arena := newArena(t, Player{Difficulty: opponent.Extreme}, Player{Difficulty: opponent.Extreme})

	for _, side := range []board.Cell{board.PlayerA, board.PlayerB} {
		table := arena.Table(side)
		for col := 0; col < table.Len(); col++ {
			if !table.Calibrated(col) {
				t.Fatalf("side %v: column %d is not calibrated", side, col)
			}
			if got := arena.Land(side, table.Launch(col)); got != col {
				t.Errorf("side %v: launch for column %d landed in %d", side, col, got)
			}
		}
	}
}

func TestToPlayerResult(t *testing.T) {
	tests := []struct {
		outcome     GameOutcome
		p1WentFirst bool
		want        VersusMatchResult
	}{
		{GameOutcome{IsDraw: true}, true, VersusDraw},
		{GameOutcome{FirstPlayerWon: true}, true, VersusPl1Win},
		{GameOutcome{FirstPlayerWon: true}, false, VersusPl2Win},
		{GameOutcome{FirstPlayerWon: false}, true, VersusPl2Win},
		{GameOutcome{FirstPlayerWon: false}, false, VersusPl1Win},
	}

	for _, tt := range tests {
		if got := toPlayerResult(tt.outcome, tt.p1WentFirst); got != tt.want {
			t.Errorf("toPlayerResult(%+v, %v) = %v, want %v", tt.outcome, tt.p1WentFirst, got, tt.want)
		}
	}
}

func TestRenderBoard(t *testing.T) {
	pos := board.MustParse("7/7/7/7/7/ab5", 4)
	output := termenv.NewOutput(io.Discard, termenv.WithProfile(termenv.Ascii))

	want := strings.Repeat("| . . . . . . . |\n", 5) + "| a b . . . . . |\n" + " 0 1 2 3 4 5 6\n"
	if got := RenderBoard(output, pos); got != want {
		t.Errorf("RenderBoard =\n%s\nwant\n%s", got, want)
	}
}
