// Package tui 是终端里的棋盘界面，基于 tview/tcell。
package tui

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"

	"xiangqi/internal/config"
	"xiangqi/internal/engine"
	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

var (
	redGlyphs   = map[xiangqi.Kind]rune{xiangqi.General: '帥', xiangqi.Advisor: '仕', xiangqi.Elephant: '相', xiangqi.Horse: '傌', xiangqi.Chariot: '俥', xiangqi.Cannon: '炮', xiangqi.Soldier: '兵'}
	blackGlyphs = map[xiangqi.Kind]rune{xiangqi.General: '將', xiangqi.Advisor: '士', xiangqi.Elephant: '象', xiangqi.Horse: '馬', xiangqi.Chariot: '車', xiangqi.Cannon: '砲', xiangqi.Soldier: '卒'}
	letters     = map[xiangqi.Kind]rune{xiangqi.General: 'K', xiangqi.Advisor: 'A', xiangqi.Elephant: 'B', xiangqi.Horse: 'N', xiangqi.Chariot: 'R', xiangqi.Cannon: 'C', xiangqi.Soldier: 'P'}
)

// ErrThinking AI 还在后台搜索时不能重开
var ErrThinking = errors.New("engine is thinking")

// view 是画图用的快照，只在界面协程里读写
type view struct {
	pos     *xiangqi.Position
	status  game.Status
	toMove  xiangqi.Side
	human   xiangqi.Side
	history []game.Result
}

type BoardUI struct {
	Box  *tview.Box
	hint *tview.TextView
	app  *tview.Application
	cfg  *config.Config

	// mu 保护 g：AI 在后台协程里原地搜索，界面只读快照
	mu    sync.Mutex
	g     *game.Game
	depth int

	it       *Interaction
	v        view
	thinking bool
	lastAI   string
	styles   []tcell.Color
}

func NewBoard(app *tview.Application, c *config.Config, hint *tview.TextView, g *game.Game) *BoardUI {
	b := &BoardUI{
		Box:   tview.NewBox(),
		hint:  hint,
		app:   app,
		g:     g,
		depth: c.Engine.Depth,
		it:    NewInteraction(),
	}
	if g.HumanSide() == xiangqi.Black {
		b.it.Cursor = xiangqi.C(4, 0)
	}
	b.SetConfig(c)
	b.refresh()
	b.Box.SetDrawFunc(b.draw)
	return b
}

// Start 如果开局轮到 AI，就让它先走
func (b *BoardUI) Start() {
	b.startEngine()
}

func (b *BoardUI) SetConfig(c *config.Config) {
	b.styles = []tcell.Color{
		tcell.PaletteColor(c.Theme.Colors.BoardColor),    // 0
		tcell.PaletteColor(c.Theme.Colors.LineColor),     // 1
		tcell.PaletteColor(c.Theme.Colors.RedColor),      // 2
		tcell.PaletteColor(c.Theme.Colors.BlackColor),    // 3
		tcell.PaletteColor(c.Theme.Colors.CursorColorBG), // 4
		tcell.PaletteColor(c.Theme.Colors.SelectedBG),    // 5
		tcell.PaletteColor(c.Theme.Colors.LastMoveBG),    // 6
	}
	b.cfg = c
}

// refresh 持锁从 game 取一份快照
func (b *BoardUI) refresh() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.v = view{
		pos:     b.g.Position().Clone(),
		status:  b.g.Status(),
		toMove:  b.g.SideToMove(),
		human:   b.g.HumanSide(),
		history: b.g.History(),
	}
	b.refreshHint()
}

// flipped 人类执黑时把黑方放在下面
func (b *BoardUI) flipped() bool {
	return b.v.human == xiangqi.Black
}

// MoveSelection 按屏幕方向移动光标
func (b *BoardUI) MoveSelection(h, v int) {
	if b.flipped() {
		h, v = -h, -v
	}
	b.it.MoveCursor(h, v)
	b.refreshHint()
}

func (b *BoardUI) ResetSelection() {
	b.it.Clear()
	b.it.Message = ""
	b.refreshHint()
}

// Activate 回车：选子或走子；走子成功后轮到 AI 就在后台搜索
func (b *BoardUI) Activate() {
	if b.thinking {
		return
	}
	b.mu.Lock()
	_, moved, _ := b.it.Activate(b.g)
	b.mu.Unlock()
	b.refresh()
	if moved {
		b.startEngine()
	}
}

// NewGame 重新开局；AI 执红时直接让它先走
func (b *BoardUI) NewGame(aiSide xiangqi.Side) error {
	if b.thinking {
		return ErrThinking
	}
	b.mu.Lock()
	err := b.g.Reset(aiSide)
	b.mu.Unlock()
	if err != nil {
		return err
	}
	b.it = NewInteraction()
	if aiSide == xiangqi.Red {
		b.it.Cursor = xiangqi.C(4, 0)
	}
	b.lastAI = ""
	b.refresh()
	b.startEngine()
	return nil
}

func (b *BoardUI) startEngine() {
	if b.v.status.Terminal() || b.v.toMove == b.v.human {
		return
	}
	b.thinking = true
	b.refreshHint()
	depth := b.depth
	go func() {
		b.mu.Lock()
		res, sr, err := b.g.RequestAutomatedMove(depth)
		b.mu.Unlock()

		b.app.QueueUpdateDraw(func() {
			b.thinking = false
			switch {
			case err != nil:
				b.lastAI = "engine: " + err.Error()
			default:
				b.lastAI = fmt.Sprintf("%v  score %d  nodes %d  %v", res, sr.Score, sr.Nodes, sr.TimeUsed.Round(time.Millisecond))
			}
			b.refresh()
		})
	}()
}

func (b *BoardUI) draw(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
	if b.v.pos == nil {
		return x, y, 1, 1
	}
	// 避开边框
	x, y, _, _ = b.Box.GetInnerRect()
	const left = 3
	var lastFrom, lastTo xiangqi.Coord
	hasLast := len(b.v.history) > 0
	if hasLast {
		r := b.v.history[len(b.v.history)-1]
		lastFrom, lastTo = r.From, r.To
	}
	var selAt xiangqi.Coord
	selOK := false
	if b.it.HasSelection() {
		selAt, selOK = b.v.pos.CoordOf(b.it.Selected)
	}

	for row := 0; row < xiangqi.Ranks; row++ {
		for col := 0; col < xiangqi.Files; col++ {
			c := b.boardCoord(col, row)
			bg := b.styles[0]
			switch {
			case c == b.it.Cursor:
				bg = b.styles[4]
			case selOK && c == selAt:
				bg = b.styles[5]
			case hasLast && (c == lastFrom || c == lastTo):
				bg = b.styles[6]
			}
			style := tcell.StyleDefault.Background(bg).Foreground(b.styles[1])

			sx, sy := x+left+col*2, y+row
			pc, ok := b.v.pos.At(c)
			if !ok {
				screen.SetContent(sx, sy, gridRune(col, row), nil, style)
				conn := '─'
				if col == xiangqi.Files-1 {
					conn = ' '
				}
				screen.SetContent(sx+1, sy, conn, nil, style)
				continue
			}
			r := b.glyph(pc)
			fg := b.styles[3]
			if pc.Side == xiangqi.Red {
				fg = b.styles[2]
			}
			screen.SetContent(sx, sy, r, nil, style.Foreground(fg).Bold(true))
			if runewidth.RuneWidth(r) < 2 {
				screen.SetContent(sx+1, sy, ' ', nil, style)
			}
		}
	}
	b.drawCoordinates(screen, x, y, left)
	return x, y, xiangqi.Files*2 + left, xiangqi.Ranks + 2
}

// boardCoord 屏幕行列到棋盘坐标
func (b *BoardUI) boardCoord(col, row int) xiangqi.Coord {
	if b.flipped() {
		return xiangqi.C(xiangqi.Files-1-col, xiangqi.Ranks-1-row)
	}
	return xiangqi.C(col, row)
}

func (b *BoardUI) glyph(pc xiangqi.Piece) rune {
	if b.cfg.Theme.HanziPieces {
		if pc.Side == xiangqi.Red {
			return redGlyphs[pc.Kind]
		}
		return blackGlyphs[pc.Kind]
	}
	r := letters[pc.Kind]
	if pc.Side == xiangqi.Black {
		r += 'a' - 'A'
	}
	return r
}

// 第 4、5 行之间是河，用 ┴ ┬ 断开
func gridRune(col, row int) rune {
	top, bottom := row == 0, row == xiangqi.Ranks-1
	isLeft, isRight := col == 0, col == xiangqi.Files-1
	switch {
	case top && isLeft:
		return '┌'
	case top && isRight:
		return '┐'
	case bottom && isLeft:
		return '└'
	case bottom && isRight:
		return '┘'
	case top || row == xiangqi.RiverHigh && !isLeft && !isRight:
		return '┬'
	case bottom || row == xiangqi.RiverLow && !isLeft && !isRight:
		return '┴'
	case isLeft:
		return '├'
	case isRight:
		return '┤'
	}
	return '┼'
}

func (b *BoardUI) drawCoordinates(s tcell.Screen, x, y, left int) {
	style := tcell.StyleDefault
	for col := 0; col < xiangqi.Files; col++ {
		c := b.boardCoord(col, 0)
		s.SetContent(x+left+col*2, y+xiangqi.Ranks+1, rune('a'+c.File), nil, style)
	}
	for row := 0; row < xiangqi.Ranks; row++ {
		c := b.boardCoord(0, row)
		s.SetContent(x+1, y+row, rune('0'+c.Rank), nil, style)
	}
}

func (b *BoardUI) refreshHint() {
	if b.hint == nil {
		return
	}
	var sb strings.Builder

	switch {
	case b.v.status.Terminal():
		sb.WriteString("───────── Game Over ─────────\n\n")
		fmt.Fprintf(&sb, "  Result: %v\n", b.v.status)
	case b.thinking:
		sb.WriteString("  ◌ Thinking...\n")
	case b.v.toMove == b.v.human:
		fmt.Fprintf(&sb, "  ● Your move (%v)\n", b.v.human)
	}
	fmt.Fprintf(&sb, "  Cursor: %v   Depth: %d\n", b.it.Cursor, b.depth)
	if b.it.Message != "" {
		fmt.Fprintf(&sb, "  %s\n", b.it.Message)
	}
	if b.lastAI != "" {
		fmt.Fprintf(&sb, "  AI: %s\n", b.lastAI)
	}

	sb.WriteString("\n  Moves\n  ─────────────\n")
	start := 0
	if len(b.v.history) > 12 {
		start = len(b.v.history) - 12
	}
	for i := start; i < len(b.v.history); i++ {
		fmt.Fprintf(&sb, "  %3d. %v\n", i+1, b.v.history[i])
	}

	sb.WriteString(`
  hjkl/↑↓←→ move   ⏎ select/play
  +/- depth   esc clear
  n new game   r swap sides   q quit`)
	b.hint.SetText(sb.String())
}

// Thinking 给外层判断是否允许退出等操作
func (b *BoardUI) Thinking() bool {
	return b.thinking
}

// AISide 以快照为准，重开失败时不会变
func (b *BoardUI) AISide() xiangqi.Side {
	return b.v.human.Opponent()
}

// Depth 当前搜索深度
func (b *BoardUI) Depth() int {
	return b.depth
}

// SetDepth 调整搜索深度，越界时夹到合法范围
func (b *BoardUI) SetDepth(d int) {
	if d < engine.MinDepth {
		d = engine.MinDepth
	}
	if d > engine.MaxDepth {
		d = engine.MaxDepth
	}
	b.depth = d
	b.refreshHint()
}
