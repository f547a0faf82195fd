package tui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"xiangqi/internal/config"
	"xiangqi/internal/game"
	"xiangqi/internal/xiangqi"
)

// Run 搭好界面并阻塞到退出
func Run(cfg *config.Config, aiSide xiangqi.Side) error {
	g, err := game.New(aiSide)
	if err != nil {
		return err
	}

	app := tview.NewApplication()

	hint := tview.NewTextView()
	hint.SetBorder(true)
	hint.SetBorderPadding(0, 0, 1, 1)
	hint.SetTitle(" Status ")
	hint.SetTitleAlign(tview.AlignLeft)

	board := NewBoard(app, cfg, hint, g)
	board.Box.SetBorder(true).SetTitle(" 象棋 ")

	board.Box.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyUp:
			board.MoveSelection(0, -1)
		case tcell.KeyDown:
			board.MoveSelection(0, 1)
		case tcell.KeyLeft:
			board.MoveSelection(-1, 0)
		case tcell.KeyRight:
			board.MoveSelection(1, 0)
		case tcell.KeyEnter:
			board.Activate()
		case tcell.KeyEsc:
			board.ResetSelection()
		case tcell.KeyRune:
			switch event.Rune() {
			case 'h':
				board.MoveSelection(-1, 0)
			case 'j':
				board.MoveSelection(0, 1)
			case 'k':
				board.MoveSelection(0, -1)
			case 'l':
				board.MoveSelection(1, 0)
			case ' ':
				board.Activate()
			case '+':
				board.SetDepth(board.Depth() + 1)
			case '-':
				board.SetDepth(board.Depth() - 1)
			case 'n':
				board.NewGame(board.AISide())
			case 'r':
				// 换边再开
				board.NewGame(board.AISide().Opponent())
			case 'q':
				app.Stop()
			}
			return nil
		}
		return event
	})

	layout := tview.NewFlex().
		AddItem(board.Box, xiangqi.Files*2+6, 0, true).
		AddItem(hint, 0, 1, false)

	board.Start()
	return app.SetRoot(layout, true).SetFocus(board.Box).Run()
}
