package entity

type TicketRequest struct {
	TicketType  string   `json:"ticket_type"`
	EntrantType string   `json:"entrant_type"`
	Extras      []string `json:"extras"`
}

type ReceiptLine struct {
	EntrantType string
	Description string
	Price       Cents
	Extras      []string
}

type Receipt struct {
	Lines []ReceiptLine
	Total Cents
}
