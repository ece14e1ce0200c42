package controller

import (
	"fmt"
	"strconv"
	"strings"

	"sprintsync/pkg/api"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) getFormGrid() *tview.Grid {
	c.initTaskForm()

	c.formHeader = tview.NewTextView().SetDynamicColors(true)
	c.formHeader.SetScrollable(false)

	grid := tview.NewGrid().SetBorders(true).SetRows(2, 0)

	grid.AddItem(c.formHeader, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.taskForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) initTaskForm() {
	titleMax := 80
	descriptionMax := 500
	minutesMax := 6

	c.taskForm = tview.NewForm().
		AddInputField("Title", "", titleMax, nil, nil).
		AddInputField("Description", "", descriptionMax, nil, nil).
		AddDropDown("Status", api.Statuses(), 0, nil).
		AddInputField("Minutes", "", minutesMax, digitsOnly, nil)

	c.titleField, _ = c.taskForm.GetFormItemByLabel("Title").(*tview.InputField)
	c.descField, _ = c.taskForm.GetFormItemByLabel("Description").(*tview.InputField)
	c.statusDrop, _ = c.taskForm.GetFormItemByLabel("Status").(*tview.DropDown)
	c.minutesField, _ = c.taskForm.GetFormItemByLabel("Minutes").(*tview.InputField)

	c.taskForm.AddButton("Save", c.saveTask)
	c.taskForm.AddButton("Cancel", func() {
		c.closeForm()
	})
}

// digitsOnly keeps the minutes field numeric, so the coercion in saveTask
// can only see digits or an empty field.
func digitsOnly(text string, lastChar rune) bool {
	return lastChar >= '0' && lastChar <= '9'
}

func (c *Controller) saveTask() {
	title := strings.TrimSpace(c.titleField.GetText())
	if title == "" {
		// the title is the one required field; stay on it until filled
		c.taskForm.SetFocus(0)

		return
	}

	_, status := c.statusDrop.GetCurrentOption()
	minutes, _ := strconv.Atoi(c.minutesField.GetText())

	draft := api.TaskDraft{
		Title:        title,
		Description:  c.descField.GetText(),
		Status:       status,
		TotalMinutes: minutes,
	}

	log.Debug().Str("title", draft.Title).Bool("editing", c.editing != nil).Msg("saving task")

	// the form closes whether or not the save worked
	ok := true
	if c.editing == nil {
		ok = c.tasks.Create(c.ctx, draft)
	} else {
		ok = c.tasks.Update(c.ctx, c.editing.ID, draft)
	}

	if !ok {
		c.setNotice("save failed; see log")
	}

	c.closeForm()
}

// switchToForm opens the task form. A nil task means create mode; anything
// else pre-fills the fields from that task and saves over it.
func (c *Controller) switchToForm(task *api.Task) {
	c.editing = task

	title := "New Task"
	if task != nil {
		title = "Edit Task"
	}

	c.formHeader.SetText(fmt.Sprintf("[yellow]%s[white]\n[orange]<Esc>[white] Cancel", title))

	if task == nil {
		c.titleField.SetText("")
		c.descField.SetText("")
		c.statusDrop.SetCurrentOption(0)
		c.minutesField.SetText("")
	} else {
		c.titleField.SetText(task.Title)
		c.descField.SetText(task.Description)
		c.statusDrop.SetCurrentOption(statusIndex(task.Status))
		c.minutesField.SetText(strconv.Itoa(task.TotalMinutes))
	}

	c.taskForm.SetFocus(0)

	c.pages.SwitchToPage(formPage)
	c.app.SetInputCapture(c.handleFormKeys)
}

func statusIndex(status string) int {
	for i, s := range api.Statuses() {
		if s == status {
			return i
		}
	}

	return 0
}

// closeForm discards the edit buffer and returns to the board.
func (c *Controller) closeForm() {
	c.editing = nil
	c.showBoard()
}

// confirmDelete asks before issuing the delete; declining issues no request.
func (c *Controller) confirmDelete(task api.Task) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Delete task '%s'?", task.Title)).
		AddButtons([]string{"Delete", "Cancel"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			if buttonLabel == "Delete" {
				if ok := c.tasks.Delete(c.ctx, task.ID); !ok {
					c.setNotice("delete failed; see log")
				}
			}

			c.pages.RemovePage(confirmPage)
			c.showBoard()
		})

	// the modal owns the keyboard while it is up
	c.app.SetInputCapture(nil)
	c.pages.AddPage(confirmPage, modal, true, true)
}
