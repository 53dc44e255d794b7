package event

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/ThreeDotsLabs/watermill/components/cqrs"
	"github.com/sirupsen/logrus"

	"museum/entity"
	"museum/metrics"
)

type CatalogCache interface {
	Invalidate(ctx context.Context) error
}

type Handler struct {
	catalogCache CatalogCache
}

func NewHandler(catalogCache CatalogCache) Handler {
	if catalogCache == nil {
		panic("missing catalogCache")
	}

	return Handler{catalogCache: catalogCache}
}

func (h Handler) Handlers() []cqrs.EventHandler {
	return []cqrs.EventHandler{
		h.InvalidateCatalogCacheHandler(),
		h.RecordSalesHandler(),
	}
}

func (h Handler) InvalidateCatalogCacheHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"InvalidateCatalogCacheHandler",
		func(ctx context.Context, event *entity.CatalogUpdated) error {
			log.FromContext(ctx).WithFields(logrus.Fields{
				"ticket_types": event.TicketTypes,
				"extras":       event.Extras,
			}).Info("Invalidating catalog cache")

			if err := h.catalogCache.Invalidate(ctx); err != nil {
				return fmt.Errorf("failed to invalidate catalog cache: %w", err)
			}

			return nil
		},
	)
}

func (h Handler) RecordSalesHandler() cqrs.EventHandler {
	return cqrs.NewEventHandler(
		"RecordSalesHandler",
		func(ctx context.Context, event *entity.TicketsPurchased) error {
			RecordSales(event)
			return nil
		},
	)
}

// RecordSales is not idempotent: a redelivered event is counted again.
func RecordSales(event *entity.TicketsPurchased) {
	for _, ticket := range event.Tickets {
		metrics.TicketsSold.WithLabelValues(ticket.TicketType, ticket.EntrantType).Inc()
		metrics.RevenueCents.WithLabelValues(ticket.TicketType, ticket.EntrantType).Add(float64(ticket.Price))
	}
}
