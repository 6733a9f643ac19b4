package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Jobs that spend their retry budget land on a per-queue dead-letter list
// ("dlq:jobs:email"). Entries keep the full payload plus the recipient, so an
// operator can re-send a lost password reset or meeting invite by hand.

const DLQPrefix = "dlq:"

type DLQEntry struct {
	OriginalQueue string          `json:"original_queue"`
	JobType       string          `json:"job_type"`
	Recipient     string          `json:"recipient,omitempty"`
	Payload       json.RawMessage `json:"payload"`
	Reason        string          `json:"reason"`
	FailedAt      time.Time       `json:"failed_at"`
	Attempts      int             `json:"attempts"`
}

// newDLQEntry snapshots a dead job. For email jobs the recipient address is
// lifted out of the payload so failed mail can be searched per address.
func newDLQEntry(queue string, job Job, reason string) DLQEntry {
	entry := DLQEntry{
		OriginalQueue: queue,
		JobType:       job.Type,
		Payload:       job.Payload,
		Reason:        reason,
		FailedAt:      time.Now().UTC(),
		Attempts:      job.Attempts,
	}
	if job.Type == "email" {
		var p EmailJobPayload
		if err := json.Unmarshal(job.Payload, &p); err == nil {
			entry.Recipient = p.ToEmail
		}
	}
	return entry
}

// SendToDLQ parks an exhausted job. Best effort: if the push itself fails the
// job is logged and lost, matching the queue's at-most-once contract.
func SendToDLQ(ctx context.Context, rdb *redis.Client, queue string, job Job, reason string) {
	entry := newDLQEntry(queue, job, reason)

	data, err := json.Marshal(entry)
	if err != nil {
		log.Error().Err(err).Str("queue", queue).Msg("dlq: failed to marshal entry")
		return
	}

	dlqKey := DLQPrefix + queue
	if err := rdb.LPush(ctx, dlqKey, data).Err(); err != nil {
		log.Error().Err(err).Str("dlq_key", dlqKey).Msg("dlq: failed to push entry")
		return
	}

	log.Warn().
		Str("queue", queue).
		Str("job_type", entry.JobType).
		Str("recipient", entry.Recipient).
		Str("reason", reason).
		Int("attempts", entry.Attempts).
		Msg("dlq: job moved to dead letter queue")
}

// DLQLength reports the depth of a queue's dead-letter list; the health
// endpoint exposes it so stuck mail is visible before anyone complains.
func DLQLength(ctx context.Context, rdb *redis.Client, queue string) (int64, error) {
	return rdb.LLen(ctx, DLQPrefix+queue).Result()
}
