// Roommatch - Roommate Compatibility Matching Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/roommatch

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/roommatch/internal/models"
)

const maxUpsertRetries = 3

// ViewedTarget is one target shown to a viewer with the score it was shown at.
type ViewedTarget struct {
	TargetID   int64
	MatchScore int
}

// acquireViewerLock acquires the per-viewer write lock
func (db *DB) acquireViewerLock(viewerID int64) *sync.Mutex {
	muInterface, _ := db.viewerLocks.LoadOrStore(viewerID, &sync.Mutex{})
	mu, ok := muInterface.(*sync.Mutex)
	if !ok {
		mu = &sync.Mutex{}
		db.viewerLocks.Store(viewerID, mu)
	}
	mu.Lock()
	return mu
}

// UpsertInteractions records that viewerID was shown targets. A new pair is
// created unclicked; an existing pair gets the new score and a fresh
// timestamp while its clicked flag is left as is.
func (db *DB) UpsertInteractions(ctx context.Context, viewerID int64, targets []ViewedTarget) (err error) {
	if len(targets) == 0 {
		return nil
	}

	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("upsert", "interactions", start, err) }()

	targets = dedupeTargets(targets)

	mu := db.acquireViewerLock(viewerID)
	defer mu.Unlock()

	for attempt := 0; attempt < maxUpsertRetries; attempt++ {
		err = db.doUpsertInteractions(ctx, viewerID, targets)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return fmt.Errorf("operation timed out or canceled: %w", ctx.Err())
		}
		if !isTransactionConflict(err) || attempt == maxUpsertRetries-1 {
			break
		}

		backoff := time.Millisecond * time.Duration(1<<uint(attempt)) // 1ms, 2ms
		select {
		case <-time.After(backoff):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (db *DB) doUpsertInteractions(ctx context.Context, viewerID int64, targets []ViewedTarget) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO interactions (viewer_id, target_id, match_score, whatsapp_clicked, last_updated)
		VALUES (?, ?, ?, false, ?)
		ON CONFLICT (viewer_id, target_id) DO UPDATE SET
			match_score = EXCLUDED.match_score,
			last_updated = EXCLUDED.last_updated`)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer closeQuietly(stmt)

	now := time.Now().UTC()
	for _, t := range targets {
		if _, err := stmt.ExecContext(ctx, viewerID, t.TargetID, t.MatchScore, now); err != nil {
			return fmt.Errorf("failed to upsert interaction %d->%d: %w", viewerID, t.TargetID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit interactions: %w", err)
	}
	return nil
}

// dedupeTargets keeps the last score for each target, in first-seen order.
func dedupeTargets(targets []ViewedTarget) []ViewedTarget {
	index := make(map[int64]int, len(targets))
	out := make([]ViewedTarget, 0, len(targets))
	for _, t := range targets {
		if i, ok := index[t.TargetID]; ok {
			out[i].MatchScore = t.MatchScore
			continue
		}
		index[t.TargetID] = len(out)
		out = append(out, t)
	}
	return out
}

// MarkClicked sets the clicked flag on an existing interaction. It reports
// false without error when the viewer was never shown the target.
func (db *DB) MarkClicked(ctx context.Context, viewerID, targetID int64) (found bool, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("mark_clicked", "interactions", start, err) }()

	mu := db.acquireViewerLock(viewerID)
	defer mu.Unlock()

	result, err := db.conn.ExecContext(ctx, `
		UPDATE interactions
		SET whatsapp_clicked = true, last_updated = ?
		WHERE viewer_id = ? AND target_id = ?`,
		time.Now().UTC(), viewerID, targetID)
	if err != nil {
		return false, fmt.Errorf("failed to mark click %d->%d: %w", viewerID, targetID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}

// GetInteraction returns the interaction for a pair, or ErrNotFound.
func (db *DB) GetInteraction(ctx context.Context, viewerID, targetID int64) (in *models.Interaction, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("get_interaction", "interactions", start, err) }()

	in = &models.Interaction{}
	err = db.conn.QueryRowContext(ctx, `
		SELECT viewer_id, target_id, match_score, whatsapp_clicked, last_updated
		FROM interactions
		WHERE viewer_id = ? AND target_id = ?`, viewerID, targetID,
	).Scan(&in.ViewerID, &in.TargetID, &in.MatchScore, &in.WhatsAppClicked, &in.LastUpdated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get interaction: %w", err)
	}
	return in, nil
}

// InteractionTotals aggregates the interaction table in one query.
func (db *DB) InteractionTotals(ctx context.Context) (totals models.InteractionTotals, err error) {
	ctx, cancel := ensureContext(ctx)
	defer cancel()
	start := time.Now()
	defer func() { observe("totals", "interactions", start, err) }()

	err = db.conn.QueryRowContext(ctx, `
		WITH per_viewer AS (
			SELECT viewer_id, MAX(match_score) AS top_score
			FROM interactions
			GROUP BY viewer_id
		)
		SELECT
			(SELECT COUNT(*) FROM interactions),
			(SELECT COUNT(*) FROM interactions WHERE whatsapp_clicked),
			(SELECT COUNT(*) FROM per_viewer),
			(SELECT COALESCE(SUM(top_score), 0)::DOUBLE FROM per_viewer)`,
	).Scan(&totals.Total, &totals.Clicked, &totals.Viewers, &totals.TopScoreSum)
	if err != nil {
		return models.InteractionTotals{}, fmt.Errorf("failed to aggregate interactions: %w", err)
	}
	return totals, nil
}
