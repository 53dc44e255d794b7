package entity

import (
	"time"

	"github.com/google/uuid"
)

type EventHeader struct {
	ID             string    `json:"id"`
	PublishedAt    time.Time `json:"published_at"`
	IdempotencyKey string    `json:"idempotency_key"`
}

func NewEventHeader() EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: uuid.NewString(),
	}
}

func NewEventHeaderWithIdempotencyKey(idempotencyKey string) EventHeader {
	return EventHeader{
		ID:             uuid.NewString(),
		PublishedAt:    time.Now().UTC(),
		IdempotencyKey: idempotencyKey,
	}
}

type CatalogUpdated struct {
	Header      EventHeader `json:"header"`
	TicketTypes []string    `json:"ticket_types"`
	Extras      []string    `json:"extras"`
}

type TicketsPurchased struct {
	Header  EventHeader       `json:"header"`
	Tickets []PurchasedTicket `json:"tickets"`
	Total   Cents             `json:"total"`
}

type PurchasedTicket struct {
	TicketType  string   `json:"ticket_type"`
	EntrantType string   `json:"entrant_type"`
	Extras      []string `json:"extras"`
	Price       Cents    `json:"price"`
}
