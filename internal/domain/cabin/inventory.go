package cabin

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed inventory.yaml
var defaultInventory []byte

// Inventory is the ordered, read-only cabin table.
type Inventory struct {
	cabins []Cabin
	index  map[string]int
}

type inventoryFile struct {
	Cabins []Cabin `yaml:"cabins"`
}

// ParseInventory decodes and validates a YAML cabin table.
func ParseInventory(data []byte) (*Inventory, error) {
	var file inventoryFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse cabin inventory: %w", err)
	}
	if len(file.Cabins) == 0 {
		return nil, fmt.Errorf("cabin inventory is empty")
	}

	inv := &Inventory{
		cabins: make([]Cabin, 0, len(file.Cabins)),
		index:  make(map[string]int, len(file.Cabins)),
	}
	for i, c := range file.Cabins {
		c.Number = strings.TrimSpace(c.Number)
		if c.Number == "" {
			return nil, fmt.Errorf("cabin inventory entry %d has no number", i)
		}
		if _, dup := inv.index[c.Number]; dup {
			return nil, fmt.Errorf("cabin %s listed twice in inventory", c.Number)
		}
		if c.Capacity < 1 {
			return nil, fmt.Errorf("cabin %s: capacity must be at least 1", c.Number)
		}
		if c.Name == "" {
			c.Name = c.Number
		}
		if c.Deck == "" {
			c.Deck = DeckForNumber(c.Number)
		}
		inv.index[c.Number] = len(inv.cabins)
		inv.cabins = append(inv.cabins, c)
	}

	return inv, nil
}

// DefaultInventory returns the inventory compiled into the binary.
func DefaultInventory() *Inventory {
	inv, err := ParseInventory(defaultInventory)
	if err != nil {
		panic(err)
	}
	return inv
}

// LoadInventory reads the inventory from path, or the built-in one when
// path is empty.
func LoadInventory(path string) (*Inventory, error) {
	if path == "" {
		return ParseInventory(defaultInventory)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cabin inventory %s: %w", path, err)
	}
	return ParseInventory(data)
}

func (i *Inventory) Lookup(number string) (Cabin, bool) {
	idx, ok := i.index[strings.TrimSpace(number)]
	if !ok {
		return Cabin{}, false
	}
	return i.cabins[idx], true
}

// All returns a copy of the cabins in inventory order.
func (i *Inventory) All() []Cabin {
	out := make([]Cabin, len(i.cabins))
	copy(out, i.cabins)
	return out
}

func (i *Inventory) Len() int {
	return len(i.cabins)
}
