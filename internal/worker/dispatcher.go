package worker

import (
	"context"
	"encoding/json"

	"warungpos/internal/model"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Dispatcher enqueues background jobs. It satisfies the service layer's
// AuditSink and ReceiptSink interfaces.
type Dispatcher struct {
	rdb *redis.Client
	log zerolog.Logger
}

func NewDispatcher(rdb *redis.Client, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		rdb: rdb,
		log: log.With().Str("component", "dispatcher").Logger(),
	}
}

func (d *Dispatcher) push(ctx context.Context, queue string, job interface{}) error {
	payload, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if err := d.rdb.LPush(ctx, queue, payload).Err(); err != nil {
		d.log.Error().Err(err).Str("queue", queue).Msg("job enqueue failed")
		return err
	}
	return nil
}

func (d *Dispatcher) EnqueueReceipt(ctx context.Context, transactionID, email string) error {
	return d.push(ctx, QueueReceipts, ReceiptJob{TransactionID: transactionID, Email: email})
}

func (d *Dispatcher) EnqueueAudit(ctx context.Context, entry model.Log) error {
	return d.push(ctx, QueueAudit, AuditJob{Entry: entry})
}
