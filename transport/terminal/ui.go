// Package terminal plays a match in the terminal with tview.
package terminal

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe/internal/entity"
)

const (
	cellWidth   = 3
	boardWidth  = entity.Size*cellWidth + entity.Size - 1
	boardHeight = entity.Size*2 - 1
)

var (
	gridStyle     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	cursorStyle   = tcell.StyleDefault.Background(tcell.ColorDarkCyan).Foreground(tcell.ColorWhite)
	winStyle      = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	playerStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	opponentStyle = tcell.StyleDefault.Foreground(tcell.ColorRed)
)

type UI struct {
	app        *tview.Application
	board      *tview.Box
	status     *tview.TextView
	controller *Controller
}

func New(controller *Controller) *UI {
	ui := &UI{
		app:        tview.NewApplication(),
		board:      tview.NewBox(),
		status:     tview.NewTextView(),
		controller: controller,
	}

	ui.board.SetBorder(true).SetTitle(" Tic-Tac-Toe ")
	ui.board.SetDrawFunc(func(screen tcell.Screen, x, y, width, height int) (int, int, int, int) {
		drawBoard(screen, controller, x+1, y+1)
		return x + 1, y + 1, width - 2, height - 2
	})

	ui.status.SetBorder(true).SetTitle(" Status ")

	layout := tview.NewFlex().
		AddItem(ui.board, boardWidth+4, 0, true).
		AddItem(ui.status, 0, 1, false)

	ui.app.SetRoot(layout, true).SetInputCapture(ui.handleKey)

	return ui
}

// Run - blocks until the user quits or ctx is canceled.
func (that *UI) Run(ctx context.Context) error {
	that.controller.Start()
	that.refresh()

	go func() {
		<-ctx.Done()
		that.app.Stop()
	}()

	if err := that.app.Run(); err != nil {
		return fmt.Errorf("terminal ui failed: %w", err)
	}

	return nil
}

func (that *UI) handleKey(event *tcell.EventKey) *tcell.EventKey {
	handled, quit := dispatch(that.controller, event)
	if quit {
		that.app.Stop()
		return nil
	}

	if !handled {
		return event
	}

	that.refresh()

	return nil
}

func (that *UI) refresh() {
	that.status.SetText(that.controller.Status())
}

// dispatch maps a key to a controller action.
func dispatch(controller *Controller, event *tcell.EventKey) (handled, quit bool) {
	switch event.Key() {
	case tcell.KeyUp:
		controller.MoveCursor(-1, 0)
	case tcell.KeyDown:
		controller.MoveCursor(1, 0)
	case tcell.KeyLeft:
		controller.MoveCursor(0, -1)
	case tcell.KeyRight:
		controller.MoveCursor(0, 1)
	case tcell.KeyEnter:
		controller.Select()
	case tcell.KeyEscape:
		return true, true
	case tcell.KeyRune:
		return dispatchRune(controller, event.Rune())
	default:
		return false, false
	}

	return true, false
}

func dispatchRune(controller *Controller, r rune) (handled, quit bool) {
	switch r {
	case 'k':
		controller.MoveCursor(-1, 0)
	case 'j':
		controller.MoveCursor(1, 0)
	case 'h':
		controller.MoveCursor(0, -1)
	case 'l':
		controller.MoveCursor(0, 1)
	case ' ':
		controller.Select()
	case 'r':
		controller.Reset()
	case 'm':
		controller.ToggleMode()
	case 'q':
		return true, true
	default:
		return false, false
	}

	return true, false
}

// drawBoard draws the grid with its top left corner at (left, top).
func drawBoard(screen tcell.Screen, controller *Controller, left, top int) {
	match := controller.Match()
	board := match.Board()
	outcome := match.Outcome()
	last, hasLast := match.LastMove()
	over := outcome.IsOver()

	for row := range entity.Size {
		y := top + row*2

		for col := range entity.Size {
			cell := entity.Cell{Row: row, Col: col}
			x := left + col*(cellWidth+1)

			style := markStyle(board.At(row, col))
			switch {
			case outcome.Line != nil && outcome.Line.Contains(cell):
				style = winStyle
			case hasLast && cell == last:
				style = style.Underline(true)
			}

			if !over && cell == controller.Cursor() {
				style = cursorStyle
			}

			symbol := []rune(board.At(row, col).Symbol())[0]
			screen.SetContent(x, y, ' ', nil, style)
			screen.SetContent(x+1, y, symbol, nil, style)
			screen.SetContent(x+2, y, ' ', nil, style)

			if col < entity.Size-1 {
				screen.SetContent(x+cellWidth, y, '│', nil, gridStyle)
			}
		}

		if row < entity.Size-1 {
			drawSeparator(screen, left, y+1)
		}
	}
}

func drawSeparator(screen tcell.Screen, left, y int) {
	for x := range boardWidth {
		r := '─'
		if x%(cellWidth+1) == cellWidth {
			r = '┼'
		}

		screen.SetContent(left+x, y, r, nil, gridStyle)
	}
}

func markStyle(mark entity.Mark) tcell.Style {
	switch mark {
	case entity.Player:
		return playerStyle
	case entity.Opponent:
		return opponentStyle
	default:
		return tcell.StyleDefault
	}
}
