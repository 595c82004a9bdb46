package session

// Session represents one in-progress hosted card-entry attempt, keyed by its order ID.
// The security token proves the authenticity of subsequent calls referencing the session.
// Card data is filled in on the first successful retrieval from the gateway and never
// invalidated afterwards; the transaction ID is set at most once.
type Session struct {
	OrderID       string
	SessionID     string
	SecurityToken string
	CardData      *CardData
	TransactionID *string
	Expires       int64
}

// CardData represents the masked card data cached on a session
type CardData struct {
	Bin            string
	LastFourDigits string
	ExpiryDate     string
	Circuit        string
}
