// Package snake implements the reference simulation for the engine: a
// snake game whose movement runs on a scheduled timer, whose input
// arrives as USER_INPUT events, and whose board lives in the engine's
// collision index. It exists to exercise the full record/replay surface
// and to serve as the integration vehicle for determinism tests.
package snake

import (
	"fmt"

	"github.com/vovakirdan/arcade-sim/internal/core"
	"github.com/vovakirdan/arcade-sim/internal/event"
	"github.com/vovakirdan/arcade-sim/internal/registry"
	"github.com/vovakirdan/arcade-sim/internal/sim"
)

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// directionFromString maps input params to directions. Unknown values
// return (0, false).
func directionFromString(s string) (Direction, bool) {
	switch s {
	case "up":
		return DirUp, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "right":
		return DirRight, true
	default:
		return 0, false
	}
}

// InputTurn is the input type the snake listens for. Its "direction"
// param carries one of "up", "down", "left", "right".
const InputTurn = "turn"

const (
	boardWidth  = 32
	boardHeight = 20

	// MoveIntervalTicks is how often the snake advances one cell:
	// every 125 ticks, i.e. roughly 8 times per second at 60 fps.
	MoveIntervalTicks core.Ticks = 125
)

// cellSource tags grid occupancy by entity kind.
type cellSource string

func (s cellSource) SourceID() string { return string(s) }

const (
	srcWalls cellSource = "walls"
	srcSnake cellSource = "snake"
	srcFood  cellSource = "food"
)

// Game implements sim.Simulation.
type Game struct {
	body    []core.Point // head at index 0
	dir     Direction
	nextDir Direction
	growing bool

	food    core.Point
	hasFood bool

	score int
	alive bool
}

// New creates a snake simulation.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() sim.Simulation {
		return New()
	})
}

// ID returns the simulation identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// Setup initializes the board on a freshly reset engine: border walls
// and the snake body go into the collision index, the movement timer is
// scheduled, the input handler registered, and the first food spawned.
func (g *Game) Setup(e *sim.Engine) {
	g.score = 0
	g.alive = true
	g.growing = false
	g.hasFood = false

	ix := e.Grid()
	for x := 0; x < boardWidth; x++ {
		ix.Add(core.Point{X: x, Y: 0}, srcWalls)
		ix.Add(core.Point{X: x, Y: boardHeight - 1}, srcWalls)
	}
	for y := 1; y < boardHeight-1; y++ {
		ix.Add(core.Point{X: 0, Y: y}, srcWalls)
		ix.Add(core.Point{X: boardWidth - 1, Y: y}, srcWalls)
	}

	// Fixed spawn keeps the opening position independent of the seed;
	// only food placement draws randomness.
	startX := boardWidth / 4
	startY := boardHeight / 2
	g.body = []core.Point{
		{X: startX + 2, Y: startY}, // Head
		{X: startX + 1, Y: startY},
		{X: startX, Y: startY},
	}
	for _, p := range g.body {
		ix.Add(p, srcSnake)
	}
	g.dir = DirRight
	g.nextDir = DirRight

	g.spawnFood(e)

	e.Every(MoveIntervalTicks, func() { g.advance(e) })
	e.Events().OnUserInput(func(ev event.Event) { g.handleInput(ev) })
}

// Update is part of sim.Simulation. Movement is timer-driven, so the
// per-step hook has nothing to do.
func (g *Game) Update(e *sim.Engine, delta core.Ticks) {}

// handleInput buffers a direction change for the next move. Instant
// reversal is rejected the same way the move itself would kill the
// snake.
func (g *Game) handleInput(ev event.Event) {
	if !g.alive || ev.InputType != InputTurn {
		return
	}
	dir, ok := directionFromString(ev.StringParam("direction"))
	if !ok {
		return
	}
	if !isOpposite(dir, g.dir) {
		g.nextDir = dir
	}
}

func isOpposite(d1, d2 Direction) bool {
	return (d1 == DirUp && d2 == DirDown) ||
		(d1 == DirDown && d2 == DirUp) ||
		(d1 == DirLeft && d2 == DirRight) ||
		(d1 == DirRight && d2 == DirLeft)
}

// advance moves the snake one cell. Fired by the movement timer.
func (g *Game) advance(e *sim.Engine) {
	if !g.alive {
		return
	}

	g.dir = g.nextDir
	head := g.body[0]
	var newHead core.Point
	switch g.dir {
	case DirUp:
		newHead = head.Translate(0, -1)
	case DirDown:
		newHead = head.Translate(0, 1)
	case DirLeft:
		newHead = head.Translate(-1, 0)
	case DirRight:
		newHead = head.Translate(1, 0)
	}

	ix := e.Grid()

	// The tail vacates its cell this move unless the snake is growing,
	// so pop it before the collision check.
	if !g.growing {
		tail := g.body[len(g.body)-1]
		ix.Remove(tail, srcSnake)
		g.body = g.body[:len(g.body)-1]
	}

	ate := false
	for _, src := range ix.ContainsPoint(newHead) {
		switch src.SourceID() {
		case string(srcWalls), string(srcSnake):
			g.die(e)
			return
		case string(srcFood):
			ate = true
		}
	}

	g.body = append([]core.Point{newHead}, g.body...)
	ix.Add(newHead, srcSnake)

	if ate {
		g.score++
		g.growing = true
		ix.Remove(g.food, srcFood)
		g.hasFood = false
		g.spawnFood(e)
	} else {
		g.growing = false
	}
}

// spawnFood places food at a random free cell. Free cells are collected
// in row-major order so the random pick is a deterministic function of
// the board state and the engine's random source.
func (g *Game) spawnFood(e *sim.Engine) {
	ix := e.Grid()

	var free []core.Point
	for y := 1; y < boardHeight-1; y++ {
		for x := 1; x < boardWidth-1; x++ {
			p := core.Point{X: x, Y: y}
			if len(ix.ContainsPoint(p)) == 0 {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return
	}

	g.food = free[e.Random().IntRange(0, len(free)-1)]
	g.hasFood = true
	ix.Add(g.food, srcFood)

	e.Events().RecordObjectUpdate("food", "food-1", "spawned", map[string]any{
		"x": g.food.X,
		"y": g.food.Y,
	})
}

// die ends the run, leaving an audit event in the recording.
func (g *Game) die(e *sim.Engine) {
	g.alive = false
	e.Events().RecordObjectUpdate("snake", "snake-1", "died", map[string]any{
		"score":  g.score,
		"length": len(g.body),
	})
	e.End()
}

// Snapshot returns a digest of the gameplay state for determinism
// verification.
func (g *Game) Snapshot() string {
	head := core.Point{}
	if len(g.body) > 0 {
		head = g.body[0]
	}
	return fmt.Sprintf("score=%d len=%d head=(%d,%d) dir=%s food=(%d,%d) alive=%v",
		g.score, len(g.body), head.X, head.Y, g.dir, g.food.X, g.food.Y, g.alive)
}

// Score returns the current score.
func (g *Game) Score() int { return g.score }

// Alive reports whether the snake is still alive.
func (g *Game) Alive() bool { return g.alive }

// Length returns the body length in cells.
func (g *Game) Length() int { return len(g.body) }

// Head returns the head position.
func (g *Game) Head() core.Point {
	if len(g.body) == 0 {
		return core.Point{}
	}
	return g.body[0]
}

// Food returns the current food position and whether food is present.
func (g *Game) Food() (core.Point, bool) {
	return g.food, g.hasFood
}

// Direction returns the current movement direction.
func (g *Game) Direction() Direction { return g.dir }

// Board returns the playfield dimensions.
func Board() (w, h int) {
	return boardWidth, boardHeight
}
