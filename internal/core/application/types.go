package application

// BalanceInfo contains info about the wallet balance.
type BalanceInfo struct {
	// Total balance in smallest units.
	TotalBalance uint64
	// Total balance expressed in whole coins, for display purposes.
	FormattedBalance string
	// Number of unspents backing the balance.
	NumUnspents int
}

// OperationInfo is a read-only view of a continuation slot.
type OperationInfo struct {
	Kind       string
	StatusCode int
	Amount     uint64
	TxID       string
	HasProof   bool
	HasPayload bool
	// Target is the identity a recorded top-up payload will pay to, empty
	// until the payload is recorded and for registrations.
	Target string
}
