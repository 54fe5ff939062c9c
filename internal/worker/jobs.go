package worker

import "warungpos/internal/model"

// Queue keys. Each queue has a dead-letter sibling where jobs land after the
// retry budget is spent.
const (
	QueueReceipts = "warungpos:queue:receipts"
	QueueAudit    = "warungpos:queue:audit"
	DLQSuffix     = ":dead"
)

// maxAttempts bounds retries per job before it moves to the dead-letter
// queue.
const maxAttempts = 3

// ReceiptJob asks for a receipt PDF to be rendered and emailed for a
// committed transaction.
type ReceiptJob struct {
	TransactionID string `json:"transaction_id"`
	Email         string `json:"email"`
	Attempts      int    `json:"attempts"`
}

// AuditJob carries one activity-log row to be inserted.
type AuditJob struct {
	Entry    model.Log `json:"entry"`
	Attempts int       `json:"attempts"`
}
