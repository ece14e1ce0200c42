package controller

import (
	"fmt"

	"github.com/rivo/tview"
	"github.com/rs/zerolog/log"
)

func (c *Controller) getLoginGrid() *tview.Grid {
	c.initLoginForm()

	header := tview.NewTextView().SetDynamicColors(true)
	header.SetScrollable(false)
	header.SetText("[yellow]SprintSync[white]\nSign in to see your board")

	grid := tview.NewGrid().SetBorders(true).SetRows(3, 0)

	grid.AddItem(header, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(c.loginForm, 1, 0, 1, 1, 0, 0, true)

	return grid
}

func (c *Controller) initLoginForm() {
	fieldMax := 50

	c.loginForm = tview.NewForm().
		AddInputField("Username", "", fieldMax, nil, nil).
		AddPasswordField("Password", "", fieldMax, '*', nil)

	c.usernameField, _ = c.loginForm.GetFormItemByLabel("Username").(*tview.InputField)
	c.passwordField, _ = c.loginForm.GetFormItemByLabel("Password").(*tview.InputField)

	c.loginForm.AddButton("Sign In", func() {
		username := c.usernameField.GetText()

		if err := c.session.Login(c.ctx, username, c.passwordField.GetText()); err != nil {
			log.Err(err).Str("username", username).Msg("login failed")
			c.showLoginError(err)

			return
		}

		c.passwordField.SetText("")

		c.refreshTasks()
		c.showBoard()
	})
}

// showLoginError is the one place a request failure blocks the UI, matching
// the blocking alert the product shows on bad credentials.
func (c *Controller) showLoginError(err error) {
	modal := tview.NewModal().
		SetText(fmt.Sprintf("Login failed: %s", err)).
		AddButtons([]string{"OK"}).
		SetDoneFunc(func(buttonIndex int, buttonLabel string) {
			c.pages.RemovePage(confirmPage)
			c.showLogin()
		})

	c.pages.AddPage(confirmPage, modal, true, true)
}

func (c *Controller) showLogin() {
	// no app-level capture here so every key reaches the form fields
	c.app.SetInputCapture(nil)

	c.usernameField.SetText("")
	c.passwordField.SetText("")
	c.loginForm.SetFocus(0)

	c.pages.SwitchToPage(loginPage)
}
