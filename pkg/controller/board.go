package controller

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) getBoardGrid() *tview.Grid {
	c.headerView = tview.NewTextView().SetDynamicColors(true)
	c.headerView.SetScrollable(false)

	shortcuts := c.getShortcutTable()

	c.planView = tview.NewTextView().SetDynamicColors(true)
	c.planView.SetScrollable(false)

	c.boardTable = c.getTable()

	grid := tview.NewGrid().SetBorders(true).SetRows(1, 4, 4, 0)

	grid.AddItem(c.headerView, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(shortcuts, 1, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.planView, 2, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.boardTable, 3, 0, 1, 1, 0, 0, true)

	return grid
}

// getShortcutTable lists the keyboard shortcuts in three sorted columns:
// task and session actions, "Move to <status>" actions, and plan actions.
func (c *Controller) getShortcutTable() *tview.Table {
	table := tview.NewTable().SetBorders(false).SetSelectable(false, false)

	shortcuts := map[int][]string{
		0: {},
		1: {},
		2: {},
	}

	for key, event := range c.events {
		text := fmt.Sprintf("[orange]<%s>[white] %s", tcell.KeyNames[key], event.Description)

		switch {
		case strings.HasPrefix(event.Description, "Move"):
			shortcuts[1] = append(shortcuts[1], text)
		case strings.HasSuffix(event.Description, "Plan"):
			shortcuts[2] = append(shortcuts[2], text)
		default:
			shortcuts[0] = append(shortcuts[0], text)
		}
	}

	for col := 0; col < 3; col++ {
		sort.Strings(shortcuts[col])
	}

	for row := 0; row < len(shortcuts[0]) || row < len(shortcuts[1]) || row < len(shortcuts[2]); row++ {
		for col := 0; col < 3; col++ {
			if row < len(shortcuts[col]) {
				table.SetCell(row, col, tview.NewTableCell(shortcuts[col][row]).SetExpansion(1))
			}
		}
	}

	return table
}

func (c *Controller) getTable() *tview.Table {
	table := tview.NewTable().SetBorders(false)

	table.SetContent(&TaskContent{tasks: c.tasks})

	table.SetSelectable(true, false)
	table.SetSelectionChangedFunc(c.setCurrentRow)

	return table
}

// when the row selection changes, update the selected task.
func (c *Controller) setCurrentRow(row, col int) {
	c.selected = c.tasks.TaskAt(row - 1)
}

func (c *Controller) showBoard() {
	c.app.SetInputCapture(c.handleKeys)
	c.renderBoard()
	c.pages.SwitchToPage(boardPage)
}

func (c *Controller) renderBoard() {
	c.renderHeader()
	c.renderPlan()

	if c.tasks.Len() == 0 {
		c.selected = nil

		return
	}

	// keep the selection on a real row after the collection changed size
	row, _ := c.boardTable.GetSelection()
	if row < 1 {
		row = 1
	}

	if row > c.tasks.Len() {
		row = c.tasks.Len()
	}

	c.boardTable.Select(row, 0).SetFixed(1, 0)
	c.selected = c.tasks.TaskAt(row - 1)
}

func (c *Controller) renderHeader() {
	username := ""
	if user := c.session.User(); user != nil {
		username = user.Username
	}

	text := fmt.Sprintf("[yellow]SprintSync[white] signed in as [green]%s", username)
	if c.notice != "" {
		text += fmt.Sprintf("  [red]%s", c.notice)
	}

	c.headerView.SetText(text)
}

func (c *Controller) renderPlan() {
	if c.planner.Loading() {
		c.planView.SetText("[yellow]asking for a daily plan...")

		return
	}

	suggestion := c.planner.Current()
	if suggestion == nil {
		c.planView.SetText("")

		return
	}

	c.planView.SetText(fmt.Sprintf("[yellow]Daily plan (about %.1f hours)[white]\n%s",
		suggestion.EstimatedHours, suggestion.Plan))
}

func (c *Controller) refreshTasks() {
	if err := c.tasks.Refresh(c.ctx); err != nil {
		log.Err(err).Msg("error refreshing tasks")

		c.notice = "refresh failed; see log"
	}
}
