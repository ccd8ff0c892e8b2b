package models

// MenuStatus represents the availability of a menu item.
type MenuStatus string

const (
	MenuAvailable  MenuStatus = "available"
	MenuOutOfStock MenuStatus = "out_of_stock"
)

// SelectionKind distinguishes single-choice from multi-choice options.
type SelectionKind string

const (
	SelectionSingle SelectionKind = "single"
	SelectionMulti  SelectionKind = "multi"
)

// Choice is one selectable value of a customization option. PriceDelta
// may be negative or zero.
type Choice struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PriceDelta int64  `json:"price_delta"`
}

// CustomizationOption is a configurable attribute of a menu item, such
// as spice level or extra toppings. IDs are unique within one menu.
type CustomizationOption struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Kind     SelectionKind `json:"kind"`
	Required bool          `json:"required"`
	Choices  []Choice      `json:"choices"`
}

// Menu is a sellable item. Prices are integer rupiah.
type Menu struct {
	ID       string                `json:"id"`
	Name     string                `json:"name"`
	Price    int64                 `json:"price"`
	Category string                `json:"category"`
	Status   MenuStatus            `json:"status"`
	Options  []CustomizationOption `json:"customization_options"`
}

// Selections maps a customization option id to the selected choice ids.
// For a single-kind option at most one choice id is expected.
type Selections map[string][]string
