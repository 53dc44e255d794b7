// Package receipt turns a list of ticket purchases into the customer receipt.
package receipt

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"

	"museum/entity"
	"museum/pricing"
)

const (
	header    = "Thank you for visiting the Dinosaur Museum!"
	separator = "-------------------------------------------"
)

// Build prices every purchase in order. The first invalid purchase aborts the
// whole receipt and its validation error is returned.
func Build(catalog entity.Catalog, purchases []entity.TicketRequest) (entity.Receipt, error) {
	receipt := entity.Receipt{
		Lines: make([]entity.ReceiptLine, 0, len(purchases)),
	}

	for _, purchase := range purchases {
		price, err := pricing.CalculateTicketPrice(catalog, purchase)
		if err != nil {
			return entity.Receipt{}, err
		}

		receipt.Total += price
		receipt.Lines = append(receipt.Lines, entity.ReceiptLine{
			EntrantType: purchase.EntrantType,
			Description: catalog.TicketTypes[purchase.TicketType].Description,
			Price:       price,
			Extras: lo.Map(purchase.Extras, func(name string, _ int) string {
				return catalog.Extras[name].Description
			}),
		})
	}

	return receipt, nil
}

// PurchaseTickets builds the receipt and renders it as text.
func PurchaseTickets(catalog entity.Catalog, purchases []entity.TicketRequest) (string, error) {
	receipt, err := Build(catalog, purchases)
	if err != nil {
		return "", err
	}

	return Format(receipt), nil
}

// Format renders the receipt text: a header, one line per purchase between
// two separators, and the total. Lines are joined with "\n" and there is no
// trailing newline.
func Format(receipt entity.Receipt) string {
	lines := make([]string, 0, len(receipt.Lines)+4)
	lines = append(lines, header, separator)

	for _, line := range receipt.Lines {
		lines = append(lines, formatLine(line))
	}

	lines = append(lines, separator, "TOTAL: $"+receipt.Total.Dollars())

	return strings.Join(lines, "\n")
}

func formatLine(line entity.ReceiptLine) string {
	var sb strings.Builder

	sb.WriteString(capitalize(line.EntrantType))
	sb.WriteString(" ")
	sb.WriteString(line.Description)
	sb.WriteString(": $")
	sb.WriteString(line.Price.Dollars())

	if len(line.Extras) > 0 {
		sb.WriteString(" (")
		sb.WriteString(strings.Join(line.Extras, ", "))
		sb.WriteString(")")
	}

	return sb.String()
}

// capitalize upper-cases the first rune only; "senior citizen" becomes
// "Senior citizen".
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}
