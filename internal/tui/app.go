package tui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
	"github.com/elektrokombinacija/nexus-checker/internal/snapshot"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/interact"
	"github.com/elektrokombinacija/nexus-checker/internal/vis/state"
)

const (
	summaryWidth  = 32
	minMapCols    = 40
	frameInterval = 16 * time.Millisecond
	mousePointer  = interact.PointerID(0)
)

const (
	hoverHex = "#b8c4d6"
	panStep  = 0.125 // fraction of the visible region per arrow key
)

// App runs the map on a terminal screen.
type App struct {
	screen tcell.Screen
	state  *state.State

	grid    *Grid
	rows    []core.SummaryRow
	rowAt   map[int]string // screen row -> state id in the summary panel
	down    bool
	ticking bool
	message string
}

// NewApp creates a terminal app drawing st on screen. The screen must
// already be initialized.
func NewApp(screen tcell.Screen, st *state.State) *App {
	return &App{screen: screen, state: st, rowAt: make(map[int]string)}
}

// Run polls events until the user quits or the screen is finalized.
func (a *App) Run() error {
	a.screen.EnableMouse(tcell.MouseDragEvents)
	a.screen.HideCursor()
	for {
		a.Draw(time.Now())
		ev := a.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if a.Handle(ev) {
			return nil
		}
	}
}

// Handle applies one event. It reports whether the app should quit.
func (a *App) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.screen.Sync()
	case *tcell.EventInterrupt:
		a.ticking = false
	case *tcell.EventMouse:
		a.mouse(ev)
	case *tcell.EventKey:
		return a.key(ev)
	}
	return false
}

// mapSize returns the number of cells the map occupies.
func (a *App) mapSize() (int, int) {
	w, h := a.screen.Size()
	cols, rows := w, h-2
	if w-summaryWidth >= minMapCols {
		cols = w - summaryWidth
	}
	if rows < 0 {
		rows = 0
	}
	return cols, rows
}

func (a *App) inMap(x, y int) bool {
	cols, rows := a.mapSize()
	return x >= 0 && y >= 0 && x < cols && y < rows
}

func (a *App) mouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btn := ev.Buttons()
	tr := a.state.Tracker
	modified := ev.Modifiers()&tcell.ModCtrl != 0

	switch {
	case btn&tcell.WheelUp != 0:
		tr.Wheel(-1, modified)
		return
	case btn&tcell.WheelDown != 0:
		tr.Wheel(1, modified)
		return
	}

	pos := CellCenter(x, y)
	pressed := btn&tcell.Button1 != 0
	switch {
	case pressed && !a.down:
		if !a.inMap(x, y) {
			if id, ok := a.rowAt[y]; ok {
				a.state.Select(id)
			}
			return
		}
		a.down = true
		tr.Press(mousePointer, pos)
	case pressed:
		tr.Move(mousePointer, pos)
	case a.down:
		a.down = false
		tr.Release(mousePointer, pos)
	}

	if a.inMap(x, y) && a.grid != nil {
		a.state.Hover = a.grid.At(x, y)
	} else {
		a.state.Hover = ""
	}
}

func (a *App) key(ev *tcell.EventKey) bool {
	vp := a.state.Viewport
	r := vp.Region()
	a.message = ""
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape:
		a.state.Flow.Cancel()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		a.state.Flow.Back()
	case tcell.KeyLeft:
		vp.PanBy(-r.W*panStep, 0)
	case tcell.KeyRight:
		vp.PanBy(r.W*panStep, 0)
	case tcell.KeyUp:
		vp.PanBy(0, -r.H*panStep)
	case tcell.KeyDown:
		vp.PanBy(0, r.H*panStep)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'y':
			a.answer(core.Yes)
		case 'n':
			a.answer(core.No)
		case 's':
			a.answer(core.NotSure)
		case 'b':
			a.state.Flow.Back()
		case 'd':
			if f := a.state.Flow.Current(); f != nil {
				a.state.Deselect(f.StateID)
			}
		case 'u':
			if !a.state.Undo() {
				a.message = "nothing to undo"
			}
		case 'r':
			if !a.state.Redo() {
				a.message = "nothing to redo"
			}
		case '+', '=':
			vp.ZoomIn()
		case '-':
			vp.ZoomOut()
		case '0':
			vp.Reset()
		}
	}
	return false
}

func (a *App) answer(ans core.Answer) {
	if err := a.state.Answer(ans); err != nil {
		a.message = err.Error()
	}
}

// Draw renders one frame. If the region is still animating it schedules
// another.
func (a *App) Draw(now time.Time) {
	cols, rows := a.mapSize()
	a.state.Tracker.SetSurface(core.Size{W: float64(cols), H: float64(rows)})
	region, active := a.state.Frame(now)

	a.screen.Clear()
	if a.grid == nil || a.grid.Region != region || a.grid.Cols != cols || a.grid.Rows != rows {
		a.grid = Rasterize(a.state.Hit, region, cols, rows)
	}
	a.drawMap()
	a.drawLabels()
	a.drawSummary(cols)
	a.drawStatus()
	a.screen.Show()

	if active && !a.ticking {
		a.ticking = true
		time.AfterFunc(frameInterval, func() {
			if err := a.screen.PostEvent(tcell.NewEventInterrupt(nil)); err != nil {
				slog.Debug("frame tick dropped", "error", err)
			}
		})
	}
}

func (a *App) cellStyle(id string) tcell.Style {
	st := tcell.StyleDefault.Background(tcell.GetColor(snapshot.BackgroundHex))
	switch {
	case id == "":
		return st
	case a.state.Selection.IsSelected(id):
		return st.Background(tcell.GetColor(a.state.Status(id).Hex()))
	case id == a.state.Hover:
		return st.Background(tcell.GetColor(hoverHex))
	default:
		return st.Background(tcell.GetColor(snapshot.StateHex))
	}
}

func (a *App) drawMap() {
	g := a.grid
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			a.screen.SetContent(col, row, ' ', nil, a.cellStyle(g.At(col, row)))
		}
	}
}

func (a *App) drawLabels() {
	g := a.grid
	fg := tcell.GetColor(snapshot.LabelHex)
	for _, s := range a.state.Hit.Shapes() {
		col, row, ok := LogicalToCell(g.Region, g.Cols, g.Rows, a.state.Hit.LabelAnchor(s))
		if !ok {
			continue
		}
		col -= runewidth.StringWidth(s.ID) / 2
		if col < 0 {
			col = 0
		}
		style := a.cellStyle(g.At(col, row)).Foreground(fg).Bold(a.state.Selection.IsSelected(s.ID))
		a.text(col, row, g.Cols-col, s.ID, style)
	}
}

func (a *App) drawSummary(mapCols int) {
	w, h := a.screen.Size()
	clear(a.rowAt)
	if w-mapCols < summaryWidth {
		return
	}
	x := mapCols + 1
	width := w - x
	a.text(x, 0, width, "Summary", tcell.StyleDefault.Bold(true))

	a.rows = a.state.Summary()
	y := 1
	if len(a.rows) == 0 {
		a.text(x, y+1, width, "Click a state to begin.", tcell.StyleDefault.Dim(true))
		return
	}
	for _, row := range a.rows {
		if y+1 >= h-2 {
			break
		}
		dot := tcell.StyleDefault.Foreground(tcell.GetColor(row.Status.Hex()))
		a.text(x, y, 2, "●", dot)
		a.text(x+2, y, width-2, fmt.Sprintf("%s  %s", row.Name, row.Label), tcell.StyleDefault)
		a.text(x+2, y+1, width-2, row.Threshold, tcell.StyleDefault.Dim(true))
		a.rowAt[y] = row.ID
		a.rowAt[y+1] = row.ID
		y += 2
	}
}

func (a *App) drawStatus() {
	w, h := a.screen.Size()
	if h < 2 {
		return
	}
	line := a.message
	if line == "" {
		line = a.questionLine()
	}
	a.text(0, h-2, w, line, tcell.StyleDefault.Bold(true))

	help := fmt.Sprintf("zoom %gx  +/- zoom  0 reset  arrows pan  y/n/s answer  b back  d remove  u/r undo/redo  q quit",
		a.state.Viewport.Zoom())
	a.text(0, h-1, w, help, tcell.StyleDefault.Dim(true))
}

func (a *App) questionLine() string {
	f := a.state.Flow.Current()
	if f == nil {
		return "Click a state to answer its nexus questions."
	}
	q, ok := f.Question()
	if !ok {
		return ""
	}
	name := f.StateID
	if s, ok := a.state.Map.Shape(f.StateID); ok {
		name = s.Name
	}
	k, n := a.state.Flow.Progress()
	return fmt.Sprintf("%s %d/%d: %s", name, k, n, q.Text)
}

// text writes s at (x, y), truncated to width cells.
func (a *App) text(x, y, width int, s string, style tcell.Style) {
	if width <= 0 {
		return
	}
	s = runewidth.Truncate(s, width, "…")
	for _, r := range s {
		a.screen.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
}
