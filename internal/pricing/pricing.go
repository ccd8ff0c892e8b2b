// Package pricing computes the price contribution of customization
// selections for a menu item. All functions are pure over the menu's
// current option definitions and the caller's selection map.
package pricing

import "resto/internal/models"

// OptionDelta returns the price delta contributed by the selected
// choice ids for one customization option.
//
// Selected ids that do not exist on the option are ignored rather than
// rejected; the selection map may be stale relative to the menu. For a
// single-kind option only one choice counts: the first known selection
// in the option's declared choice order wins.
func OptionDelta(opt models.CustomizationOption, selected []string) int64 {
	if len(selected) == 0 {
		return 0
	}

	chosen := make(map[string]bool, len(selected))
	for _, id := range selected {
		chosen[id] = true
	}

	var delta int64
	for _, choice := range opt.Choices {
		if !chosen[choice.ID] {
			continue
		}
		if opt.Kind == models.SelectionSingle {
			return choice.PriceDelta
		}
		delta += choice.PriceDelta
	}
	return delta
}

// TotalExtra sums OptionDelta across all of the menu's customization
// options. Selections referencing unknown option ids are ignored.
func TotalExtra(menu models.Menu, selections models.Selections) int64 {
	if len(selections) == 0 {
		return 0
	}

	var total int64
	for _, opt := range menu.Options {
		total += OptionDelta(opt, selections[opt.ID])
	}
	return total
}

// UnitPrice resolves the effective unit price of a menu item with the
// given selections applied.
func UnitPrice(menu models.Menu, selections models.Selections) int64 {
	return menu.Price + TotalExtra(menu, selections)
}
