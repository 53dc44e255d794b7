package entity

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrPriceOverflow  = errors.New("price overflows")

	ErrTicketTypeNotFound  = errors.New("ticket type not found")
	ErrEntrantTypeNotFound = errors.New("entrant type not found")
	ErrExtraTypeNotFound   = errors.New("extra type not found")
)

type ValidationKind string

const (
	ValidationKindTicketType  ValidationKind = "ticket_type"
	ValidationKindEntrantType ValidationKind = "entrant_type"
	ValidationKindExtraType   ValidationKind = "extra_type"
)

// ValidationError is returned when a ticket request references something the
// catalog doesn't have. Error() is the customer facing message.
type ValidationError struct {
	Kind  ValidationKind
	Value string
}

func NewTicketTypeNotFound(ticketType string) *ValidationError {
	return &ValidationError{Kind: ValidationKindTicketType, Value: ticketType}
}

func NewEntrantTypeNotFound(entrantType string) *ValidationError {
	return &ValidationError{Kind: ValidationKindEntrantType, Value: entrantType}
}

func NewExtraTypeNotFound(extra string) *ValidationError {
	return &ValidationError{Kind: ValidationKindExtraType, Value: extra}
}

func (e *ValidationError) Error() string {
	switch e.Kind {
	case ValidationKindTicketType:
		return fmt.Sprintf("Ticket type '%s' cannot be found.", e.Value)
	case ValidationKindEntrantType:
		return fmt.Sprintf("Entrant type '%s' cannot be found.", e.Value)
	case ValidationKindExtraType:
		return fmt.Sprintf("Extra type '%s' cannot be found.", e.Value)
	default:
		return fmt.Sprintf("%s '%s' cannot be found.", e.Kind, e.Value)
	}
}

func (e *ValidationError) Unwrap() error {
	switch e.Kind {
	case ValidationKindTicketType:
		return ErrTicketTypeNotFound
	case ValidationKindEntrantType:
		return ErrEntrantTypeNotFound
	case ValidationKindExtraType:
		return ErrExtraTypeNotFound
	default:
		return nil
	}
}
