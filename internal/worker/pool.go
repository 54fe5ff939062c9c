package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"warungpos/internal/config"
	"warungpos/internal/infra"
	"warungpos/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Pool runs N workers that block on the job queues and process entries as
// they arrive. Failed jobs are retried up to maxAttempts, then parked on the
// queue's dead-letter sibling for manual inspection.
type Pool struct {
	rdb          *redis.Client
	size         int
	transactions repository.TransactionRepository
	products     repository.ProductRepository
	logs         repository.LogRepository
	mailer       *infra.Mailer
	storeName    string
	pdfPath      string
	log          zerolog.Logger

	wg sync.WaitGroup
}

func NewPool(
	rdb *redis.Client,
	cfg *config.Config,
	transactions repository.TransactionRepository,
	products repository.ProductRepository,
	logs repository.LogRepository,
	mailer *infra.Mailer,
	log zerolog.Logger,
) *Pool {
	size := cfg.WorkerPoolSize
	if size <= 0 {
		size = 1
	}
	return &Pool{
		rdb:          rdb,
		size:         size,
		transactions: transactions,
		products:     products,
		logs:         logs,
		mailer:       mailer,
		storeName:    cfg.StoreName,
		pdfPath:      cfg.PDFStoragePath,
		log:          log.With().Str("component", "worker").Logger(),
	}
}

// Start launches the workers; they exit when ctx is cancelled.
func (p *Pool) Start(ctx context.Context) {
	for i := 0; i < p.size; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
	p.log.Info().Int("workers", p.size).Msg("worker pool started")
}

// Wait blocks until every worker has drained out after cancellation.
func (p *Pool) Wait() { p.wg.Wait() }

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.With().Int("worker", id).Logger()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		// BRPOP across both queues; the timeout keeps the ctx check live.
		res, err := p.rdb.BRPop(ctx, 5*time.Second, QueueReceipts, QueueAudit).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) || errors.Is(err, context.Canceled) {
				continue
			}
			log.Error().Err(err).Msg("queue pop failed")
			time.Sleep(time.Second)
			continue
		}
		if len(res) != 2 {
			continue
		}
		queue, payload := res[0], res[1]

		if err := p.handle(ctx, queue, payload); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("job failed")
			p.retryOrPark(ctx, queue, payload, log)
		}
	}
}

func (p *Pool) handle(ctx context.Context, queue, payload string) error {
	switch queue {
	case QueueReceipts:
		var job ReceiptJob
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			return fmt.Errorf("worker: decode receipt job: %w", err)
		}
		return p.handleReceipt(ctx, job)
	case QueueAudit:
		var job AuditJob
		if err := json.Unmarshal([]byte(payload), &job); err != nil {
			return fmt.Errorf("worker: decode audit job: %w", err)
		}
		return p.logs.Create(ctx, &job.Entry)
	default:
		return fmt.Errorf("worker: unknown queue %s", queue)
	}
}

func (p *Pool) handleReceipt(ctx context.Context, job ReceiptJob) error {
	txn, err := p.transactions.FindByID(ctx, job.TransactionID)
	if err != nil {
		return fmt.Errorf("worker: load transaction %s: %w", job.TransactionID, err)
	}

	names := make(map[string]string, len(txn.Details))
	for _, d := range txn.Details {
		if _, ok := names[d.SKU]; ok {
			continue
		}
		if prod, err := p.products.FindBySKU(ctx, d.SKU); err == nil {
			names[d.SKU] = prod.ProductName
		}
	}

	pdfPath, err := infra.GenerateReceiptPDF(txn, names, p.storeName, p.pdfPath)
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("%s — receipt %s", p.storeName, txn.TransactionID)
	body := fmt.Sprintf("Thank you for your purchase. Your receipt %s is attached.", txn.TransactionID)
	if err := p.mailer.SendReceipt(job.Email, subject, body, pdfPath); err != nil {
		return fmt.Errorf("worker: send receipt %s: %w", txn.TransactionID, err)
	}
	p.log.Info().Str("transaction_id", txn.TransactionID).Str("email", job.Email).Msg("receipt delivered")
	return nil
}

// retryOrPark re-enqueues the job with its attempt counter bumped, or moves
// it to the dead-letter queue once the budget is spent.
func (p *Pool) retryOrPark(ctx context.Context, queue, payload string, log zerolog.Logger) {
	attempts, updated := bumpAttempts(queue, payload)
	if attempts >= maxAttempts {
		if err := p.rdb.LPush(ctx, queue+DLQSuffix, updated).Err(); err != nil {
			log.Error().Err(err).Str("queue", queue).Msg("dead-letter push failed")
		} else {
			log.Warn().Str("queue", queue).Int("attempts", attempts).Msg("job parked on dead-letter queue")
		}
		return
	}
	if err := p.rdb.LPush(ctx, queue, updated).Err(); err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("job requeue failed")
	}
}

// bumpAttempts increments the attempt counter inside the job payload and
// returns the new count plus the updated payload.
func bumpAttempts(queue, payload string) (int, string) {
	switch queue {
	case QueueReceipts:
		var job ReceiptJob
		if json.Unmarshal([]byte(payload), &job) != nil {
			return maxAttempts, payload
		}
		job.Attempts++
		b, _ := json.Marshal(job)
		return job.Attempts, string(b)
	case QueueAudit:
		var job AuditJob
		if json.Unmarshal([]byte(payload), &job) != nil {
			return maxAttempts, payload
		}
		job.Attempts++
		b, _ := json.Marshal(job)
		return job.Attempts, string(b)
	default:
		return maxAttempts, payload
	}
}
