package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"museum/catalog"
	"museum/entity"
)

func defaultCatalog(t *testing.T) entity.Catalog {
	t.Helper()

	c, err := catalog.Default()
	require.NoError(t, err)
	return c
}

func TestPurchaseTickets(t *testing.T) {
	purchases := []entity.TicketRequest{
		{TicketType: "general", EntrantType: "adult", Extras: []string{"movie", "terrace"}},
		{TicketType: "general", EntrantType: "senior", Extras: []string{"terrace"}},
		{TicketType: "general", EntrantType: "child", Extras: []string{"education", "movie", "terrace"}},
		{TicketType: "general", EntrantType: "child", Extras: []string{"education", "movie", "terrace"}},
	}

	expected := "Thank you for visiting the Dinosaur Museum!\n" +
		"-------------------------------------------\n" +
		"Adult General Admission: $50.00 (Movie Access, Terrace Access)\n" +
		"Senior General Admission: $35.00 (Terrace Access)\n" +
		"Child General Admission: $45.00 (Education Access, Movie Access, Terrace Access)\n" +
		"Child General Admission: $45.00 (Education Access, Movie Access, Terrace Access)\n" +
		"-------------------------------------------\n" +
		"TOTAL: $175.00"

	text, err := PurchaseTickets(defaultCatalog(t), purchases)
	require.NoError(t, err)
	assert.Equal(t, expected, text)
}

func TestPurchaseTickets_without_extras(t *testing.T) {
	text, err := PurchaseTickets(defaultCatalog(t), []entity.TicketRequest{
		{TicketType: "membership", EntrantType: "adult"},
		{TicketType: "membership", EntrantType: "child", Extras: []string{}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Thank you for visiting the Dinosaur Museum!\n"+
		"-------------------------------------------\n"+
		"Adult Membership Admission: $28.00\n"+
		"Child Membership Admission: $15.00\n"+
		"-------------------------------------------\n"+
		"TOTAL: $43.00", text)
}

func TestPurchaseTickets_empty(t *testing.T) {
	text, err := PurchaseTickets(defaultCatalog(t), nil)
	require.NoError(t, err)

	assert.Equal(t, "Thank you for visiting the Dinosaur Museum!\n"+
		"-------------------------------------------\n"+
		"-------------------------------------------\n"+
		"TOTAL: $0.00", text)
}

func TestPurchaseTickets_invalid_purchase(t *testing.T) {
	valid := entity.TicketRequest{TicketType: "general", EntrantType: "adult", Extras: []string{"movie"}}

	testCases := []struct {
		name            string
		purchases       []entity.TicketRequest
		expectedMessage string
	}{
		{
			name: "single invalid ticket type",
			purchases: []entity.TicketRequest{
				{TicketType: "discount", EntrantType: "adult", Extras: []string{"movie", "terrace"}},
			},
			expectedMessage: "Ticket type 'discount' cannot be found.",
		},
		{
			name: "invalid purchase first",
			purchases: []entity.TicketRequest{
				{TicketType: "general", EntrantType: "kid"},
				valid,
				valid,
			},
			expectedMessage: "Entrant type 'kid' cannot be found.",
		},
		{
			name: "invalid purchase in the middle",
			purchases: []entity.TicketRequest{
				valid,
				{TicketType: "general", EntrantType: "adult", Extras: []string{"spa"}},
				valid,
			},
			expectedMessage: "Extra type 'spa' cannot be found.",
		},
		{
			name: "first of several invalid purchases wins",
			purchases: []entity.TicketRequest{
				valid,
				{TicketType: "vip", EntrantType: "adult"},
				{TicketType: "general", EntrantType: "kid"},
			},
			expectedMessage: "Ticket type 'vip' cannot be found.",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			text, err := PurchaseTickets(defaultCatalog(t), tc.purchases)
			assert.EqualError(t, err, tc.expectedMessage)
			assert.Empty(t, text)
		})
	}
}

func TestBuild(t *testing.T) {
	r, err := Build(defaultCatalog(t), []entity.TicketRequest{
		{TicketType: "general", EntrantType: "adult", Extras: []string{"terrace", "movie"}},
		{TicketType: "membership", EntrantType: "senior"},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.Cents(7300), r.Total)
	require.Len(t, r.Lines, 2)
	assert.Equal(t, entity.ReceiptLine{
		EntrantType: "adult",
		Description: "General Admission",
		Price:       5000,
		Extras:      []string{"Terrace Access", "Movie Access"},
	}, r.Lines[0])
	assert.Empty(t, r.Lines[1].Extras)
}

func TestCapitalize(t *testing.T) {
	testCases := map[string]string{
		"adult":          "Adult",
		"Adult":          "Adult",
		"sENIOR":         "SENIOR",
		"senior citizen": "Senior citizen",
		"élève":          "Élève",
		"":               "",
	}

	for in, expected := range testCases {
		assert.Equal(t, expected, capitalize(in), in)
	}
}
