// Package cart holds the pre-submission cart state: configured menu
// items with quantities and customization selections. A cart is plain
// data owned by the caller; nothing here performs I/O.
package cart

import (
	"fmt"
	"sort"
	"strings"

	"resto/internal/models"
	"resto/internal/pricing"
)

// Line is one configured menu item held in a cart. UnitPrice is
// resolved at add time from the menu's base price plus selection deltas.
type Line struct {
	Key        string
	MenuID     string
	MenuName   string
	Quantity   int
	UnitPrice  int64
	Selections models.Selections
}

// Cart is an ordered collection of lines.
type Cart struct {
	Lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// lineKey fingerprints a menu id plus its selections. Two lines for the
// same menu merge only when the fingerprint matches; differing
// selections stay separate so each keeps its own unit price.
func lineKey(menuID string, selections models.Selections) string {
	optionIDs := make([]string, 0, len(selections))
	for optionID, choices := range selections {
		if len(choices) == 0 {
			continue
		}
		optionIDs = append(optionIDs, optionID)
	}
	sort.Strings(optionIDs)

	var b strings.Builder
	b.WriteString(menuID)
	for _, optionID := range optionIDs {
		choices := append([]string(nil), selections[optionID]...)
		sort.Strings(choices)
		fmt.Fprintf(&b, "|%s=%s", optionID, strings.Join(choices, ","))
	}
	return b.String()
}

// validateSelections checks required options and single-choice
// cardinality against the menu's option definitions.
func validateSelections(menu models.Menu, selections models.Selections) error {
	for _, opt := range menu.Options {
		selected := selections[opt.ID]
		if opt.Required && len(selected) == 0 {
			return &ValidationError{
				Field:   fmt.Sprintf("selections.%s", opt.ID),
				Message: fmt.Sprintf("option %q is required", opt.Name),
			}
		}
		if opt.Kind == models.SelectionSingle && len(selected) > 1 {
			return &ValidationError{
				Field:   fmt.Sprintf("selections.%s", opt.ID),
				Message: fmt.Sprintf("option %q allows a single choice", opt.Name),
			}
		}
	}
	return nil
}

// AddLine validates and appends a configured menu item. A line for the
// same menu with identical selections merges by quantity instead of
// duplicating. Returns the key of the affected line.
func (c *Cart) AddLine(menu models.Menu, quantity int, selections models.Selections) (string, error) {
	if quantity < 1 {
		return "", &ValidationError{Field: "quantity", Message: "quantity must be at least 1"}
	}
	if menu.Status != models.MenuAvailable {
		return "", &ValidationError{Field: "menu_id", Message: fmt.Sprintf("menu %q is out of stock", menu.Name)}
	}
	if err := validateSelections(menu, selections); err != nil {
		return "", err
	}

	key := lineKey(menu.ID, selections)
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines[i].Quantity += quantity
			return key, nil
		}
	}

	c.Lines = append(c.Lines, Line{
		Key:        key,
		MenuID:     menu.ID,
		MenuName:   menu.Name,
		Quantity:   quantity,
		UnitPrice:  pricing.UnitPrice(menu, selections),
		Selections: selections,
	})
	return key, nil
}

// ChangeQuantity sets the quantity of an existing line. Quantities
// below 1 are rejected; callers remove the line instead.
func (c *Cart) ChangeQuantity(key string, quantity int) error {
	if quantity < 1 {
		return &ValidationError{Field: "quantity", Message: "quantity must be at least 1; remove the line instead"}
	}
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines[i].Quantity = quantity
			return nil
		}
	}
	return &ValidationError{Field: "line", Message: "line not found in cart"}
}

// RemoveLine deletes a line from the cart. Removing an absent line is
// a no-op.
func (c *Cart) RemoveLine(key string) {
	for i := range c.Lines {
		if c.Lines[i].Key == key {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// TotalPrice sums unit price times quantity over all lines.
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.UnitPrice * int64(line.Quantity)
	}
	return total
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Snapshot produces the immutable structure submitted to order
// creation. Item prices are the resolved unit prices captured when the
// lines were added, never re-read from the menu.
func (c *Cart) Snapshot() models.OrderSnapshot {
	items := make([]models.OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		items = append(items, models.OrderItem{
			MenuID:   line.MenuID,
			Name:     line.MenuName,
			Quantity: line.Quantity,
			Price:    line.UnitPrice,
		})
	}
	return models.OrderSnapshot{
		Items:      items,
		TotalPrice: c.TotalPrice(),
	}
}
