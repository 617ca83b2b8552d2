package jobs

import (
	"context"
	"log"
)

// CardExpirer is the slice of the library service the expiry job needs.
type CardExpirer interface {
	ExpireOverdue(ctx context.Context) (int64, error)
}

type CardExpiryJob struct {
	cards    CardExpirer
	schedule string
}

func NewCardExpiryJob(cards CardExpirer, schedule string) *CardExpiryJob {
	return &CardExpiryJob{
		cards:    cards,
		schedule: schedule,
	}
}

func (j *CardExpiryJob) Name() string     { return "card-expiry" }
func (j *CardExpiryJob) Schedule() string { return j.schedule }

func (j *CardExpiryJob) Run(ctx context.Context) error {
	n, err := j.cards.ExpireOverdue(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		log.Printf("📚 Marked %d library cards as expired", n)
	}
	return nil
}
