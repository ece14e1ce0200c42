package controller

import (
	"context"

	"sprintsync/pkg/api"
	"sprintsync/pkg/session"
	"sprintsync/pkg/state"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	descTitleRatio = 2

	loginPage   = "login"
	boardPage   = "board"
	formPage    = "form"
	confirmPage = "confirm"
)

// Controller mediates between the application state and the view. Which
// top-level page shows is a function of the session: no session means the
// login page is the only one reachable.
type Controller struct {
	ctx context.Context
	app *tview.Application

	session *session.Session
	tasks   *state.Store
	planner *state.Planner

	pages *tview.Pages

	events     map[tcell.Key]KeyEvent
	formEvents map[tcell.Key]KeyEvent

	selected *api.Task
	notice   string

	headerView *tview.TextView
	planView   *tview.TextView
	boardTable *tview.Table

	loginForm     *tview.Form
	usernameField *tview.InputField
	passwordField *tview.InputField

	taskForm     *tview.Form
	formHeader   *tview.TextView
	titleField   *tview.InputField
	descField    *tview.InputField
	statusDrop   *tview.DropDown
	minutesField *tview.InputField
	editing      *api.Task
}

// KeyEvent defines an event associated with a keypress.
type KeyEvent struct {
	Description string
	Action      func(*tcell.EventKey) *tcell.EventKey
}

// NewController creates a new Controller to run the app.
func NewController(ctx context.Context, sess *session.Session, tasks *state.Store,
	planner *state.Planner,
) (*Controller, error) {
	c := Controller{
		ctx:     ctx,
		app:     tview.NewApplication(),
		pages:   tview.NewPages(),
		session: sess,
		tasks:   tasks,
		planner: planner,
	}

	initKeys()
	c.initEvents()

	return &c, nil
}

// Go starts the app.
func (c *Controller) Go() {
	c.pages.AddPage(loginPage, c.getLoginGrid(), true, false)
	c.pages.AddPage(boardPage, c.getBoardGrid(), true, false)
	c.pages.AddPage(formPage, c.getFormGrid(), true, false)

	if c.session.Active() {
		c.refreshTasks()
		c.showBoard()
	} else {
		c.showLogin()
	}

	if err := c.app.SetRoot(c.pages, true).SetFocus(c.pages).Run(); err != nil {
		panic(err)
	}
}

func (c *Controller) handleKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if event, ok := c.events[key]; ok {
		return event.Action(evt)
	}

	return evt
}

func (c *Controller) handleFormKeys(evt *tcell.EventKey) *tcell.EventKey {
	key := AsKey(evt)
	if event, ok := c.formEvents[key]; ok {
		return event.Action(evt)
	}

	return evt
}

func (c *Controller) setNotice(notice string) {
	c.notice = notice
	c.renderHeader()
}
