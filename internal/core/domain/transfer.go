package domain

// TransferStatus is the observable state of a transfer request as it moves
// through the gate.
type TransferStatus string

const (
	// TransferStatusAwaitingCode means validation passed and the gate is
	// waiting for a one-time code before executing.
	TransferStatusAwaitingCode TransferStatus = "AWAITING_CODE"
	// TransferStatusCompleted means the executor accepted the transfer.
	TransferStatusCompleted TransferStatus = "COMPLETED"
)

// TransferOutcome is what the gate returns to the caller. Rejections are
// reported as errors, not outcomes.
type TransferOutcome struct {
	Status TransferStatus `json:"status"`
	TxID   string         `json:"txid,omitempty"` // set when Completed
}
