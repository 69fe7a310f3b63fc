package shared

import "fmt"

// FuelGoodSymbol is the trade good carried in cargo that can be converted
// to tank fuel away from a marketplace.
const FuelGoodSymbol = "FUEL"

// CargoItem represents an individual cargo item in ship's hold
type CargoItem struct {
	Symbol      string
	Name        string
	Description string
	Units       int
}

// NewCargoItem creates a new cargo item with validation
func NewCargoItem(symbol, name, description string, units int) (*CargoItem, error) {
	if units < 0 {
		return nil, fmt.Errorf("cargo units cannot be negative")
	}
	if symbol == "" {
		return nil, fmt.Errorf("cargo symbol cannot be empty")
	}

	return &CargoItem{
		Symbol:      symbol,
		Name:        name,
		Description: description,
		Units:       units,
	}, nil
}

// Cargo represents a ship's cargo manifest with detailed inventory
type Cargo struct {
	Capacity  int
	Units     int
	Inventory []*CargoItem
}

// NewCargo creates a new cargo manifest with validation
func NewCargo(capacity, units int, inventory []*CargoItem) (*Cargo, error) {
	if units < 0 {
		return nil, fmt.Errorf("cargo units cannot be negative")
	}
	if capacity < 0 {
		return nil, fmt.Errorf("cargo capacity cannot be negative")
	}
	if units > capacity {
		return nil, fmt.Errorf("cargo units %d exceed capacity %d", units, capacity)
	}

	inventorySum := 0
	for _, item := range inventory {
		inventorySum += item.Units
	}
	if inventorySum != units {
		return nil, fmt.Errorf("inventory sum %d != total units %d", inventorySum, units)
	}

	return &Cargo{
		Capacity:  capacity,
		Units:     units,
		Inventory: inventory,
	}, nil
}

// GetItemUnits gets units of a specific trade good in cargo (0 if not present)
func (c *Cargo) GetItemUnits(symbol string) int {
	for _, item := range c.Inventory {
		if item.Symbol == symbol {
			return item.Units
		}
	}
	return 0
}

// FuelUnits returns the units of the fuel good held in cargo
func (c *Cargo) FuelUnits() int {
	return c.GetItemUnits(FuelGoodSymbol)
}

// WithItemAdded returns a new Cargo with units of the good merged in
func (c *Cargo) WithItemAdded(symbol string, units int) (*Cargo, error) {
	if units <= 0 {
		return c, nil
	}
	if c.Units+units > c.Capacity {
		return nil, fmt.Errorf("insufficient cargo space: need %d, have %d available",
			units, c.AvailableCapacity())
	}

	newInventory := make([]*CargoItem, 0, len(c.Inventory)+1)
	found := false
	for _, existing := range c.Inventory {
		if existing.Symbol == symbol {
			newInventory = append(newInventory, &CargoItem{
				Symbol:      existing.Symbol,
				Name:        existing.Name,
				Description: existing.Description,
				Units:       existing.Units + units,
			})
			found = true
		} else {
			newInventory = append(newInventory, existing)
		}
	}
	if !found {
		newInventory = append(newInventory, &CargoItem{Symbol: symbol, Units: units})
	}

	return NewCargo(c.Capacity, c.Units+units, newInventory)
}

// WithItemRemoved returns a new Cargo with units of the good removed
func (c *Cargo) WithItemRemoved(symbol string, units int) (*Cargo, error) {
	if units <= 0 {
		return c, nil
	}
	held := c.GetItemUnits(symbol)
	if held < units {
		return nil, fmt.Errorf("insufficient cargo: have %d units of %s, need %d",
			held, symbol, units)
	}

	newInventory := make([]*CargoItem, 0, len(c.Inventory))
	for _, item := range c.Inventory {
		if item.Symbol == symbol {
			remaining := item.Units - units
			if remaining > 0 {
				newInventory = append(newInventory, &CargoItem{
					Symbol:      item.Symbol,
					Name:        item.Name,
					Description: item.Description,
					Units:       remaining,
				})
			}
		} else {
			newInventory = append(newInventory, item)
		}
	}

	return NewCargo(c.Capacity, c.Units-units, newInventory)
}

// AvailableCapacity calculates available cargo space
func (c *Cargo) AvailableCapacity() int {
	return c.Capacity - c.Units
}

// IsEmpty checks if cargo hold is empty
func (c *Cargo) IsEmpty() bool {
	return c.Units == 0
}

func (c *Cargo) String() string {
	return fmt.Sprintf("Cargo(%d/%d)", c.Units, c.Capacity)
}
