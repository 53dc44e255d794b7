// Package pricing resolves the admission price of a single ticket request
// against a catalog.
package pricing

import (
	"fmt"
	"math"

	"museum/entity"
)

// CalculateTicketPrice returns the price of the ticket with all requested
// extras. Validation stops at the first problem: ticket type, then entrant
// type, then each extra in request order. Lookup failures are
// *entity.ValidationError. A catalog that was never validated can hold prices
// whose sum does not fit in Cents, which is reported as entity.ErrPriceOverflow.
func CalculateTicketPrice(catalog entity.Catalog, request entity.TicketRequest) (entity.Cents, error) {
	category, ok := catalog.TicketTypes[request.TicketType]
	if !ok {
		return 0, entity.NewTicketTypeNotFound(request.TicketType)
	}

	if request.EntrantType == "" {
		return 0, entity.NewEntrantTypeNotFound(request.EntrantType)
	}

	total, ok := category.PriceInCents[request.EntrantType]
	if !ok {
		return 0, entity.NewEntrantTypeNotFound(request.EntrantType)
	}

	for _, name := range request.Extras {
		extra, ok := catalog.Extras[name]
		if !ok {
			return 0, entity.NewExtraTypeNotFound(name)
		}

		price, ok := extra.PriceInCents[request.EntrantType]
		if !ok {
			return 0, entity.NewEntrantTypeNotFound(request.EntrantType)
		}

		if price > 0 && total > math.MaxInt64-price {
			return 0, fmt.Errorf("%w: %s for %s with extra %s", entity.ErrPriceOverflow, request.TicketType, request.EntrantType, name)
		}
		total += price
	}

	return total, nil
}
