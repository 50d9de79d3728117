// Package selection tracks which catalog items are currently selected.
// It is the single source of truth all UI surfaces subscribe to.
package selection

import "sync"

// State describes the controller's position in its lifecycle
type State string

const (
	// StateIdle means nothing is selected
	StateIdle State = "idle"
	// StateSingle means exactly one item is selected (preview/edit)
	StateSingle State = "single"
	// StateMulti means two or more items are selected (batch operations)
	StateMulti State = "multi"
)

// Controller implements the selection state machine. In single-select mode,
// selecting an unselected item replaces the current selection; in multi-select
// mode it is added. Selecting an already-selected item removes it. Confirming
// or cancelling a batch action, and navigating to a different folder, all
// return the controller to idle.
type Controller struct {
	mu       sync.Mutex
	multiple bool
	order    []string
	selected map[string]struct{}
	folder   string
}

// NewController creates a controller. multiple enables multi-select mode.
func NewController(multiple bool) *Controller {
	return &Controller{
		multiple: multiple,
		selected: make(map[string]struct{}),
	}
}

// Select toggles the item: an unselected id becomes selected (replacing the
// prior selection in single mode), a selected id is deselected.
func (c *Controller) Select(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.selected[id]; ok {
		c.removeLocked(id)
		return
	}

	if !c.multiple {
		c.clearLocked()
	}
	c.selected[id] = struct{}{}
	c.order = append(c.order, id)
}

// IsSelected reports whether the id is part of the current selection
func (c *Controller) IsSelected(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.selected[id]
	return ok
}

// Snapshot returns the selected ids in selection order
func (c *Controller) Snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return append([]string(nil), c.order...)
}

// Len returns the number of selected items
func (c *Controller) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.order)
}

// State derives the current lifecycle state from the selection size
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch len(c.order) {
	case 0:
		return StateIdle
	case 1:
		return StateSingle
	default:
		return StateMulti
	}
}

// Confirm ends a batch action and resets to idle
func (c *Controller) Confirm() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

// Cancel abandons the current selection and resets to idle
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

// EnterFolder records folder navigation. Selection never crosses folder
// boundaries, so any prior selection is dropped.
func (c *Controller) EnterFolder(folderID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.folder != folderID {
		c.clearLocked()
	}
	c.folder = folderID
}

// Folder returns the folder the selection is scoped to
func (c *Controller) Folder() string {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.folder
}

func (c *Controller) removeLocked(id string) {
	delete(c.selected, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Controller) clearLocked() {
	c.order = c.order[:0]
	for id := range c.selected {
		delete(c.selected, id)
	}
}
