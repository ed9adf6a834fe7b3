package repo

import (
	"context"
	"fmt"

	"github.com/SergeyBogomolovv/shared-payment-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
)

// RecordWebhookEvent stores a received callback once per payload fingerprint.
// It reports false for a replay of an already recorded payload.
func (r *postgresRepo) RecordWebhookEvent(ctx context.Context, rec entities.WebhookRecord) (bool, error) {
	query, args := r.qb.Insert("webhook_events").
		Columns("fingerprint", "gateway", "reference", "status", "signature_valid", "payload", "result", "received_at").
		Values(rec.Fingerprint, rec.Gateway, rec.Reference, rec.Status, rec.SignatureValid, []byte(rec.Payload), nullString(rec.Result), rec.ReceivedAt).
		Suffix("ON CONFLICT (fingerprint) DO NOTHING").
		MustSql()

	ok, err := r.execAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to record webhook event: %w", err)
	}
	return ok, nil
}

func (r *postgresRepo) MarkWebhookProcessed(ctx context.Context, fingerprint, result string) error {
	query, args := r.qb.Update("webhook_events").
		Set("result", result).
		Set("processed_at", sq.Expr("now()")).
		Where(sq.Eq{"fingerprint": fingerprint}).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to mark webhook event processed: %w", err)
	}
	return nil
}
