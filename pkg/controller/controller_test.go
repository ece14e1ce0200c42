package controller

import (
	"context"
	"testing"

	"sprintsync/pkg/api"
	"sprintsync/pkg/session"
	"sprintsync/pkg/state"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func getController(t *testing.T) *Controller {
	t.Helper()

	c, err := NewController(
		context.Background(),
		session.NewSession(nil, nil),
		state.NewStore(nil),
		state.NewPlanner(nil),
	)
	assert.New(t).Nil(err)

	return c
}

func TestAsKey(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(KeyN, AsKey(tcell.NewEventKey(tcell.KeyRune, 'n', tcell.ModNone)))
	assert.Equal(KeyShiftL, AsKey(tcell.NewEventKey(tcell.KeyRune, 'L', tcell.ModNone)))
	assert.Equal(tcell.KeyEscape, AsKey(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
}

func TestInitKeysNames(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	initKeys()

	assert.Equal("q", tcell.KeyNames[KeyQ])
	assert.Equal("n", tcell.KeyNames[KeyN])
	assert.Equal("Shift-L", tcell.KeyNames[KeyShiftL])
}

func TestEventTable(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c := getController(t)

	expected := map[tcell.Key]string{
		KeyN:      "New Task",
		KeyE:      "Edit Task",
		KeyX:      "Delete Task",
		KeyR:      "Refresh",
		KeyT:      "Move to To Do",
		KeyI:      "Move to In Progress",
		KeyD:      "Move to Done",
		KeyP:      "Request Plan",
		KeyC:      "Dismiss Plan",
		KeyShiftL: "Logout",
		KeyQ:      "Exit",
	}

	assert.Equal(len(expected), len(c.events))

	for key, description := range expected {
		event, ok := c.events[key]
		assert.True(ok, description)
		assert.Equal(description, event.Description)
		assert.NotNil(event.Action)
	}
}

func TestFormEventTable(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	c := getController(t)

	event, ok := c.formEvents[tcell.KeyEscape]
	assert.True(ok)
	assert.Equal("Cancel", event.Description)
}

func TestStatusIndex(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(0, statusIndex(api.StatusToDo))
	assert.Equal(1, statusIndex(api.StatusInProgress))
	assert.Equal(2, statusIndex(api.StatusDone))

	// anything unknown lands on the first option
	assert.Equal(0, statusIndex("NOT_A_STATUS"))
}

func TestDigitsOnly(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.True(digitsOnly("4", '4'))
	assert.True(digitsOnly("42", '2'))
	assert.False(digitsOnly("4a", 'a'))
	assert.False(digitsOnly("-", '-'))
	assert.False(digitsOnly(" ", ' '))
}

func TestStatusColor(t *testing.T) {
	t.Parallel()

	assert := assert.New(t)

	assert.Equal(tcell.ColorWhite, statusColor(api.StatusToDo))
	assert.Equal(tcell.ColorYellow, statusColor(api.StatusInProgress))
	assert.Equal(tcell.ColorGreen, statusColor(api.StatusDone))
	assert.Equal(tcell.ColorRed, statusColor("NOT_A_STATUS"))
}
