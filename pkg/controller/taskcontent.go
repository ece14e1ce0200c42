package controller

import (
	"strconv"

	"sprintsync/pkg/api"
	"sprintsync/pkg/state"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

// TaskContent implements tview.TableContent, which tview.Table uses to
// update data. Reading straight from the store means the table always shows
// the current collection without copying it around.
type TaskContent struct {
	tview.TableContentReadOnly
	tasks *state.Store
}

func statusColor(status string) tcell.Color {
	switch status {
	case api.StatusToDo:
		return tcell.ColorWhite
	case api.StatusInProgress:
		return tcell.ColorYellow
	case api.StatusDone:
		return tcell.ColorGreen
	}

	return tcell.ColorRed
}

// GetCell returns the cell at the given position or nil if no cell.
func (t *TaskContent) GetCell(row, col int) *tview.TableCell {
	if row == 0 {
		switch col {
		case 0:
			return tview.NewTableCell("title").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 1:
			return tview.NewTableCell("description").SetExpansion(descTitleRatio).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 2:
			return tview.NewTableCell("status").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		case 3:
			return tview.NewTableCell("minutes").SetExpansion(1).
				SetTextColor(tcell.ColorYellow).SetSelectable(false)
		}
	}

	if t.tasks.Len() == 0 {
		if row == 1 && col == 0 {
			return tview.NewTableCell("no tasks yet").SetSelectable(false)
		}

		return nil
	}

	task := t.tasks.TaskAt(row - 1)
	if task == nil {
		return nil
	}

	switch col {
	case 0:
		return tview.NewTableCell(task.Title).SetExpansion(1).SetReference(task)
	case 1:
		return tview.NewTableCell(task.Description).SetExpansion(descTitleRatio)
	case 2:
		return tview.NewTableCell(task.Status).SetExpansion(1).
			SetTextColor(statusColor(task.Status))
	case 3:
		return tview.NewTableCell(strconv.Itoa(task.TotalMinutes)).SetExpansion(1).
			SetAlign(tview.AlignRight)
	}

	return nil
}

// GetRowCount returns the number of rows in the table.
func (t *TaskContent) GetRowCount() int {
	if t.tasks.Len() == 0 {
		// header plus the empty-state row
		return 2
	}

	return t.tasks.Len() + 1
}

// GetColumnCount returns the number of columns in the table.
func (t *TaskContent) GetColumnCount() int {
	return 4
}
