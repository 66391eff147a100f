package tui

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/chess-backend/internal/chess"
)

// The board table has one extra column on the left for rank numbers and one extra row at the
// bottom for file letters.
const (
	labelCol = 0
	labelRow = chess.Size
)

var (
	lightSquare = tcell.ColorTan
	darkSquare  = tcell.ColorSaddleBrown
	selected    = tcell.ColorYellow
	destination = tcell.ColorGreen
)

// Client is a hot-seat board in the terminal. All state changes run on the tview event loop.
type Client struct {
	logger *slog.Logger
	engine *chess.Engine

	state        chess.State
	tickInterval time.Duration

	app    *tview.Application
	board  *tview.Table
	status *tview.TextView
	layout *tview.Grid
}

func New(logger *slog.Logger, engine *chess.Engine, clockSeconds int, tickInterval time.Duration) *Client {
	client := &Client{
		logger:       logger,
		engine:       engine,
		state:        chess.NewState(clockSeconds),
		tickInterval: tickInterval,
		app:          tview.NewApplication(),
		board:        tview.NewTable(),
		status:       tview.NewTextView(),
	}

	client.layout = tview.NewGrid().
		SetRows(-1, chess.Size+1, -1).
		SetColumns(-1, 3*(chess.Size+1), 24, -1).
		AddItem(client.board, 1, 1, 1, 1, 0, 0, true).
		AddItem(client.status, 1, 2, 1, 1, 0, 0, false)

	client.board.SetSelectable(true, true)
	client.board.Select(chess.Size-1, 1).
		SetDoneFunc(func(key tcell.Key) {
			if key == tcell.KeyEscape {
				client.app.Stop()
			}
		}).
		SetSelectedFunc(func(row, col int) {
			client.tap(row, col-1)
		})

	client.render()

	return client
}

// Run shows the board until the user quits or ctx is done. The clock ticker stops with it.
func (that *Client) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go that.runClock(ctx)

	go func() {
		<-ctx.Done()
		that.app.Stop()
	}()

	if err := that.app.SetRoot(that.layout, true).SetFocus(that.board).Run(); err != nil {
		return fmt.Errorf("terminal client failed: %w", err)
	}

	return nil
}

func (that *Client) runClock(ctx context.Context) {
	ticker := time.NewTicker(that.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			that.app.QueueUpdateDraw(that.tick)
		}
	}
}

func (that *Client) tap(row, col int) {
	state, result, err := that.engine.SquareTapped(that.state, row, col)
	if err != nil {
		that.logger.Debug("tap ignored", "row", row, "col", col, "error", err)
		return
	}

	if result.Move != nil {
		that.logger.Info("move", "move", result.Move.String())
	}

	that.state = state
	that.render()
}

func (that *Client) tick() {
	that.state = that.engine.ClockTick(that.state)
	that.renderStatus()
}

func (that *Client) render() {
	that.renderBoard()
	that.renderStatus()
}

func (that *Client) renderBoard() {
	for row := 0; row < chess.Size; row++ {
		that.board.SetCell(row, labelCol, tview.NewTableCell(fmt.Sprintf("%d", chess.Size-row)).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))

		for col := 0; col < chess.Size; col++ {
			sq := chess.Square{Row: row, Col: col}

			text := " "
			if p, ok := that.state.Board.PieceAt(sq); ok {
				text = p.Code()
			}

			that.board.SetCell(row, col+1, tview.NewTableCell(" "+text+" ").
				SetAlign(tview.AlignCenter).
				SetTextColor(tcell.ColorBlack).
				SetBackgroundColor(that.squareColor(sq)))
		}
	}

	that.board.SetCell(labelRow, labelCol, tview.NewTableCell("").SetSelectable(false))
	for col := 0; col < chess.Size; col++ {
		that.board.SetCell(labelRow, col+1, tview.NewTableCell(string(rune('a'+col))).
			SetAlign(tview.AlignCenter).
			SetSelectable(false))
	}
}

func (that *Client) squareColor(sq chess.Square) tcell.Color {
	switch {
	case that.state.Selection != nil && *that.state.Selection == sq:
		return selected
	case that.state.IsDestination(sq):
		return destination
	case (sq.Row+sq.Col)%2 == 0:
		return lightSquare
	default:
		return darkSquare
	}
}

func (that *Client) renderStatus() {
	that.status.SetText(fmt.Sprintf("White %s\nBlack %s\n\n%s to move\n\nEnter: select / move\nEsc: quit",
		formatClock(that.state.Clocks.White),
		formatClock(that.state.Clocks.Black),
		that.state.Active,
	))
}

// formatClock renders seconds as MM:SS.
func formatClock(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
