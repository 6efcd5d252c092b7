package memory

import (
	"context"
	"sort"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// OutboxRepository implements ports.OutboxRepository over a Store. Relays are
// serialized by the store's write slot, so no two of them see the same message.
type OutboxRepository struct {
	uow *UnitOfWork
}

func (r *OutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}
	if err := alive(ctx, "add outbox messages"); err != nil {
		return err
	}

	return r.uow.write(ctx, func(c *changes) error {
		c.outbox = append(c.outbox, messages...)
		return nil
	})
}

func (r *OutboxRepository) FetchUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	if err := alive(ctx, "fetch outbox messages"); err != nil {
		return nil, err
	}

	staged := r.uow.stagedChanges()

	r.uow.store.mu.RLock()
	candidates := make([]ports.OutboxMessage, 0, len(r.uow.store.outbox)+len(staged.outbox))
	candidates = append(candidates, r.uow.store.outbox...)
	r.uow.store.mu.RUnlock()
	candidates = append(candidates, staged.outbox...)

	unpublished := candidates[:0]
	for _, m := range candidates {
		if _, marked := staged.published[m.ID]; m.PublishedAt == nil && !marked {
			unpublished = append(unpublished, m)
		}
	}

	sort.Slice(unpublished, func(i, j int) bool {
		a, b := unpublished[i], unpublished[j]
		if !a.OccurredAt.Equal(b.OccurredAt) {
			return a.OccurredAt.Before(b.OccurredAt)
		}
		return idLess(a.ID, b.ID)
	})
	if limit >= 0 && len(unpublished) > limit {
		unpublished = unpublished[:limit]
	}
	return unpublished, nil
}

func (r *OutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}
	if err := alive(ctx, "mark outbox messages published"); err != nil {
		return err
	}

	return r.uow.write(ctx, func(c *changes) error {
		for _, id := range ids {
			c.published[id] = at.UTC()
		}
		return nil
	})
}
