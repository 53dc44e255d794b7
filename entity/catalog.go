package entity

import (
	"encoding/json"
	"fmt"
	"sort"
)

// ExtrasKey is the reserved top level key holding the extras table in the
// catalog wire format. Every other top level key is a ticket type.
const ExtrasKey = "extras"

type Catalog struct {
	TicketTypes map[string]TicketCategory
	Extras      map[string]ExtraItem
}

type TicketCategory struct {
	Description  string           `json:"description" yaml:"description"`
	PriceInCents map[string]Cents `json:"price_in_cents" yaml:"price_in_cents"`
}

type ExtraItem struct {
	Description  string           `json:"description" yaml:"description"`
	PriceInCents map[string]Cents `json:"price_in_cents" yaml:"price_in_cents"`
}

// itemWire also accepts the camel case priceInCents key used by older catalog
// exports. price_in_cents wins when both are present.
type itemWire struct {
	Description        string           `json:"description" yaml:"description"`
	PriceInCents       map[string]Cents `json:"price_in_cents" yaml:"price_in_cents"`
	LegacyPriceInCents map[string]Cents `json:"priceInCents" yaml:"priceInCents"`
}

func (w itemWire) prices() map[string]Cents {
	if w.PriceInCents != nil {
		return w.PriceInCents
	}
	return w.LegacyPriceInCents
}

func (c *TicketCategory) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*c = TicketCategory{Description: w.Description, PriceInCents: w.prices()}
	return nil
}

func (c *TicketCategory) UnmarshalYAML(unmarshal func(any) error) error {
	var w itemWire
	if err := unmarshal(&w); err != nil {
		return err
	}
	*c = TicketCategory{Description: w.Description, PriceInCents: w.prices()}
	return nil
}

func (e *ExtraItem) UnmarshalJSON(data []byte) error {
	var w itemWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*e = ExtraItem{Description: w.Description, PriceInCents: w.prices()}
	return nil
}

func (e *ExtraItem) UnmarshalYAML(unmarshal func(any) error) error {
	var w itemWire
	if err := unmarshal(&w); err != nil {
		return err
	}
	*e = ExtraItem{Description: w.Description, PriceInCents: w.prices()}
	return nil
}

func (c Catalog) TicketTypeNames() []string {
	names := make([]string, 0, len(c.TicketTypes))
	for name := range c.TicketTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (c Catalog) ExtraNames() []string {
	names := make([]string, 0, len(c.Extras))
	for name := range c.Extras {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the catalog before it is stored. Entrant types are not
// cross checked between categories: a missing price is reported when a
// request hits it.
func (c Catalog) Validate() error {
	if len(c.TicketTypes) == 0 {
		return fmt.Errorf("%w: at least one ticket type is required", ErrInvalidCatalog)
	}

	for name, category := range c.TicketTypes {
		if name == "" || name == ExtrasKey {
			return fmt.Errorf("%w: ticket type name %q is not allowed", ErrInvalidCatalog, name)
		}
		if err := validateItem("ticket type", name, category.Description, category.PriceInCents); err != nil {
			return err
		}
	}

	for name, extra := range c.Extras {
		if name == "" {
			return fmt.Errorf("%w: extra name can't be empty", ErrInvalidCatalog)
		}
		if err := validateItem("extra", name, extra.Description, extra.PriceInCents); err != nil {
			return err
		}
	}

	return nil
}

func validateItem(kind, name, description string, prices map[string]Cents) error {
	if description == "" {
		return fmt.Errorf("%w: %s %q has no description", ErrInvalidCatalog, kind, name)
	}
	if len(prices) == 0 {
		return fmt.Errorf("%w: %s %q has no prices", ErrInvalidCatalog, kind, name)
	}
	for entrantType, price := range prices {
		if entrantType == "" {
			return fmt.Errorf("%w: %s %q has a price for an empty entrant type", ErrInvalidCatalog, kind, name)
		}
		if price < 0 {
			return fmt.Errorf("%w: %s %q has a negative price for %q", ErrInvalidCatalog, kind, name, entrantType)
		}
		if price > MaxPrice {
			return fmt.Errorf("%w: %s %q price for %q is above %d", ErrInvalidCatalog, kind, name, entrantType, MaxPrice)
		}
	}
	return nil
}

func (c Catalog) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(c.TicketTypes)+1)
	for name, category := range c.TicketTypes {
		flat[name] = category
	}

	extras := c.Extras
	if extras == nil {
		extras = map[string]ExtraItem{}
	}
	flat[ExtrasKey] = extras

	return json.Marshal(flat)
}

func (c *Catalog) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	catalog := Catalog{
		TicketTypes: make(map[string]TicketCategory, len(flat)),
		Extras:      map[string]ExtraItem{},
	}

	for name, raw := range flat {
		if name == ExtrasKey {
			if err := json.Unmarshal(raw, &catalog.Extras); err != nil {
				return fmt.Errorf("could not unmarshal extras: %w", err)
			}
			continue
		}

		var category TicketCategory
		if err := json.Unmarshal(raw, &category); err != nil {
			return fmt.Errorf("could not unmarshal ticket type %q: %w", name, err)
		}
		catalog.TicketTypes[name] = category
	}

	*c = catalog
	return nil
}
