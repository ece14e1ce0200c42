package controller

import (
	"fmt"
	"os"

	"sprintsync/pkg/api"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog/log"
)

func (c *Controller) initEvents() {
	c.events = map[tcell.Key]KeyEvent{}
	c.formEvents = map[tcell.Key]KeyEvent{}

	c.initTaskEvents(c.events)
	c.initMoveEvents(c.events)
	c.initPlanEvents(c.events)
	c.initExitEvent(c.events)

	c.formEvents[tcell.KeyEscape] = KeyEvent{
		Description: "Cancel",
		Action:      c.getCancelFormAction(),
	}
}

func (c *Controller) initTaskEvents(events map[tcell.Key]KeyEvent) {
	events[KeyN] = KeyEvent{
		Description: "New Task",
		Action:      c.getNewAction(),
	}

	events[KeyE] = KeyEvent{
		Description: "Edit Task",
		Action:      c.getEditAction(),
	}

	events[KeyX] = KeyEvent{
		Description: "Delete Task",
		Action:      c.getDeleteAction(),
	}

	events[KeyR] = KeyEvent{
		Description: "Refresh",
		Action:      c.getRefreshAction(),
	}

	events[KeyShiftL] = KeyEvent{
		Description: "Logout",
		Action:      c.getLogoutAction(),
	}
}

func (c *Controller) initMoveEvents(events map[tcell.Key]KeyEvent) {
	events[KeyT] = KeyEvent{
		Description: "Move to To Do",
		Action:      c.getMoveAction(api.StatusToDo),
	}

	events[KeyI] = KeyEvent{
		Description: "Move to In Progress",
		Action:      c.getMoveAction(api.StatusInProgress),
	}

	events[KeyD] = KeyEvent{
		Description: "Move to Done",
		Action:      c.getMoveAction(api.StatusDone),
	}
}

func (c *Controller) initPlanEvents(events map[tcell.Key]KeyEvent) {
	events[KeyP] = KeyEvent{
		Description: "Request Plan",
		Action:      c.getPlanAction(),
	}

	events[KeyC] = KeyEvent{
		Description: "Dismiss Plan",
		Action:      c.getDismissPlanAction(),
	}
}

func (c *Controller) initExitEvent(events map[tcell.Key]KeyEvent) {
	events[KeyQ] = KeyEvent{
		Description: "Exit",
		Action:      c.getExitAction(),
	}
}

func (c *Controller) getExitAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.app.Stop()

		log.Info().Msg("terminating application")

		os.Exit(0)

		return key
	}
}

func (c *Controller) getNewAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.switchToForm(nil)

		return nil
	}
}

func (c *Controller) getEditAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selected == nil {
			return nil
		}

		c.switchToForm(c.selected)

		return nil
	}
}

func (c *Controller) getDeleteAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selected == nil {
			return nil
		}

		c.confirmDelete(*c.selected)

		return nil
	}
}

func (c *Controller) getRefreshAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.refreshTasks()
		c.renderBoard()

		return nil
	}
}

func (c *Controller) getLogoutAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.session.Logout()
		c.tasks.Clear()
		c.planner.Dismiss()
		c.notice = ""
		c.selected = nil

		c.showLogin()

		return nil
	}
}

func (c *Controller) getMoveAction(status string) func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.selected == nil {
			return nil
		}

		if ok := c.tasks.ChangeStatus(c.ctx, c.selected.ID, status); !ok {
			c.setNotice(fmt.Sprintf("status change to %s failed; see log", status))
		}

		c.renderBoard()

		return nil
	}
}

func (c *Controller) getPlanAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		if c.planner.Loading() {
			return nil
		}

		c.planView.SetText("[yellow]asking for a daily plan...")

		// the request can be slow, so it runs off the event goroutine and
		// redraws when it settles
		go func() {
			c.planner.Request(c.ctx)
			c.app.QueueUpdateDraw(c.renderPlan)
		}()

		return nil
	}
}

func (c *Controller) getDismissPlanAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.planner.Dismiss()
		c.renderPlan()

		return nil
	}
}

func (c *Controller) getCancelFormAction() func(key *tcell.EventKey) *tcell.EventKey {
	return func(key *tcell.EventKey) *tcell.EventKey {
		c.closeForm()

		return nil
	}
}
