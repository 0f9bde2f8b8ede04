package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionToggleHelp
	ActionRefresh
	ActionSideBySide
	ActionInline
	ActionUnified
	ActionCycleMode
	ActionToggleStaged
	ActionToggleWrap
	ActionMoveUp
	ActionMoveDown
	ActionGoToTop
	ActionGoToBottom
	ActionPageUpLeft
	ActionPageDownLeft
	ActionScrollLeft
	ActionScrollRight
	ActionScrollHome
	ActionPageDown
	ActionPageUp
	ActionHalfPageDown
	ActionHalfPageUp
	ActionLineDown
	ActionLineUp
	ActionAdjustLeftNarrower
	ActionAdjustLeftWider
)

// KeyHandler turns key presses into actions. Digits typed before a movement key form its repeat count.
type KeyHandler struct {
	keyBuffer string
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key message and returns the action with its count (at least 1).
func (k *KeyHandler) Handle(msg tea.KeyMsg) (KeyAction, int) {
	key := msg.String()
	if isNumericKey(key) {
		k.keyBuffer += key
		return ActionNone, 0
	}
	count := 1
	if n, err := strconv.Atoi(k.keyBuffer); err == nil && n > 0 {
		count = n
	}
	k.keyBuffer = ""
	return keyToAction(key), count
}

// KeyBuffer returns the pending digits.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

// ClearBuffer drops the pending digits.
func (k *KeyHandler) ClearBuffer() {
	k.keyBuffer = ""
}

func keyToAction(key string) KeyAction {
	switch key {
	case "ctrl+c", "q":
		return ActionQuit
	case "h":
		return ActionToggleHelp
	case "r":
		return ActionRefresh
	case "s":
		return ActionSideBySide
	case "i":
		return ActionInline
	case "u":
		return ActionUnified
	case "v":
		return ActionCycleMode
	case "t":
		return ActionToggleStaged
	case "w":
		return ActionToggleWrap
	case "j", "down":
		return ActionMoveDown
	case "k", "up":
		return ActionMoveUp
	case "g":
		return ActionGoToTop
	case "G":
		return ActionGoToBottom
	case "[":
		return ActionPageUpLeft
	case "]":
		return ActionPageDownLeft
	case "left", "{":
		return ActionScrollLeft
	case "right", "}":
		return ActionScrollRight
	case "home":
		return ActionScrollHome
	case "pgdown":
		return ActionPageDown
	case "pgup":
		return ActionPageUp
	case "J", "ctrl+d":
		return ActionHalfPageDown
	case "K", "ctrl+u":
		return ActionHalfPageUp
	case "ctrl+e":
		return ActionLineDown
	case "ctrl+y":
		return ActionLineUp
	case "<", "H":
		return ActionAdjustLeftNarrower
	case ">", "L":
		return ActionAdjustLeftWider
	}
	return ActionNone
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key[0] >= '0' && key[0] <= '9'
}
