package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/ThreeDotsLabs/go-event-driven/common/log"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"museum/entity"
	"museum/metrics"
	"museum/pricing"
	"museum/receipt"
)

type ticketPriceResponse struct {
	PriceInCents entity.Cents `json:"price_in_cents"`
	Price        string       `json:"price"`
}

type errorResponse struct {
	Message string `json:"message"`
}

type postPurchasesRequest struct {
	Purchases []entity.TicketRequest `json:"purchases"`
}

func (s *Server) PostTicketPrice(c echo.Context) error {
	var request entity.TicketRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	ctx := c.Request().Context()

	catalog, err := s.currentCatalog(ctx)
	if err != nil {
		return err
	}

	price, err := pricing.CalculateTicketPrice(catalog, request)
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		logValidationFailure(c, validationErr)
		return c.JSON(http.StatusBadRequest, errorResponse{Message: validationErr.Error()})
	}
	if err != nil {
		return err
	}

	metrics.PricesCalculated.Inc()

	return c.JSON(http.StatusOK, ticketPriceResponse{
		PriceInCents: price,
		Price:        price.Dollars(),
	})
}

// PostPurchases responds with the plain text receipt. A purchase that
// can't be priced rejects the whole request with the validation message.
func (s *Server) PostPurchases(c echo.Context) error {
	var request postPurchasesRequest
	if err := c.Bind(&request); err != nil {
		return err
	}

	ctx := c.Request().Context()

	catalog, err := s.currentCatalog(ctx)
	if err != nil {
		return err
	}

	r, err := receipt.Build(catalog, request.Purchases)
	var validationErr *entity.ValidationError
	if errors.As(err, &validationErr) {
		logValidationFailure(c, validationErr)
		return c.String(http.StatusBadRequest, validationErr.Error())
	}
	if err != nil {
		return err
	}

	err = s.eventBus.Publish(ctx, entity.TicketsPurchased{
		Header:  entity.NewEventHeader(),
		Tickets: purchasedTickets(request.Purchases, r),
		Total:   r.Total,
	})
	if err != nil {
		return fmt.Errorf("failed to publish TicketsPurchased event: %w", err)
	}

	metrics.ReceiptsIssued.Inc()

	return c.String(http.StatusOK, receipt.Format(r))
}

func purchasedTickets(purchases []entity.TicketRequest, r entity.Receipt) []entity.PurchasedTicket {
	tickets := make([]entity.PurchasedTicket, 0, len(purchases))
	for i, purchase := range purchases {
		tickets = append(tickets, entity.PurchasedTicket{
			TicketType:  purchase.TicketType,
			EntrantType: purchase.EntrantType,
			Extras:      purchase.Extras,
			Price:       r.Lines[i].Price,
		})
	}
	return tickets
}

func logValidationFailure(c echo.Context, err *entity.ValidationError) {
	metrics.ValidationFailures.WithLabelValues(string(err.Kind)).Inc()

	log.FromContext(c.Request().Context()).WithFields(logrus.Fields{
		"kind":  err.Kind,
		"value": err.Value,
	}).Info("Rejected ticket request")
}
