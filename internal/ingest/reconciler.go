package ingest

import (
	"errors"
	"time"

	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Reconciler compares each newly written row against the player's most
// recent prior snapshot to detect name and alliance transitions, then
// infers realm departures for players missing from the upload. It runs
// after the writer has committed every row: its events are best-effort
// enrichment, never part of the ledger's correctness contract, so
// per-player failures are logged and skipped.
type Reconciler struct {
	db         *gorm.DB
	cutoff     time.Duration
	powerFloor decimal.Decimal
}

func NewReconciler(db *gorm.DB, cutoff time.Duration, powerFloor decimal.Decimal) *Reconciler {
	return &Reconciler{
		db:         db,
		cutoff:     cutoff,
		powerFloor: powerFloor,
	}
}

// ReconcileStats summarizes one reconciliation pass.
type ReconcileStats struct {
	NameChanges     int
	AllianceChanges int
	Departures      int
	Warnings        int
}

// Reconcile detects identity changes for every ingested row and then
// runs departure inference once. It never returns an error: the ledger
// is already committed when it runs.
func (r *Reconciler) Reconcile(snapshot *models.Snapshot, rows []PlayerRow) ReconcileStats {
	var stats ReconcileStats

	for _, row := range rows {
		prior, err := r.priorSnapshot(row.LordID, snapshot.Timestamp)
		if err != nil {
			logger.Warn("Reconciliation lookup failed, skipping player",
				"lord_id", row.LordID, "error", err)
			stats.Warnings++
			continue
		}
		if prior == nil {
			// First appearance is not a change
			continue
		}

		if nc := diffName(prior, row, snapshot); nc != nil {
			if err := r.db.Create(nc).Error; err != nil {
				logger.Warn("Failed to record name change",
					"lord_id", row.LordID, "error", err)
				stats.Warnings++
			} else {
				stats.NameChanges++
			}
		}

		if ac := diffAlliance(prior, row, snapshot); ac != nil {
			if err := r.db.Create(ac).Error; err != nil {
				logger.Warn("Failed to record alliance change",
					"lord_id", row.LordID, "error", err)
				stats.Warnings++
			} else {
				stats.AllianceChanges++
			}
		}
	}

	r.inferDepartures(snapshot, rows, &stats)
	return stats
}

// priorSnapshot returns the player's most recent fact row from a
// strictly earlier snapshot, or nil on first appearance.
func (r *Reconciler) priorSnapshot(lordID string, before time.Time) (*models.PlayerSnapshot, error) {
	var prior models.PlayerSnapshot
	err := r.db.
		Joins("JOIN snapshots ON snapshots.id = player_snapshots.snapshot_id").
		Where("player_snapshots.player_id = ? AND snapshots.timestamp < ?", lordID, before).
		Order("snapshots.timestamp DESC").
		First(&prior).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &prior, nil
}

// latestSnapshot returns the player's most recent fact row regardless
// of snapshot, or nil if the player has none.
func (r *Reconciler) latestSnapshot(lordID string) (*models.PlayerSnapshot, error) {
	var last models.PlayerSnapshot
	err := r.db.
		Joins("JOIN snapshots ON snapshots.id = player_snapshots.snapshot_id").
		Where("player_snapshots.player_id = ?", lordID).
		Order("snapshots.timestamp DESC").
		First(&last).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &last, nil
}

// inferDepartures flags players absent from this upload for longer than
// the cutoff, provided their last known power clears the floor. Low
// power players routinely fall below the export tool's inclusion
// threshold without actually leaving, so they are never flagged.
func (r *Reconciler) inferDepartures(snapshot *models.Snapshot, rows []PlayerRow, stats *ReconcileStats) {
	present := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		present[row.LordID] = struct{}{}
	}

	var candidates []models.Player
	err := r.db.
		Where("has_left_realm = ? AND last_seen_at IS NOT NULL", false).
		Find(&candidates).Error
	if err != nil {
		logger.Error("Departure candidate scan failed", "error", err)
		stats.Warnings++
		return
	}

	for i := range candidates {
		candidate := &candidates[i]
		if !IsDepartureCandidate(candidate, present, snapshot.Timestamp, r.cutoff) {
			continue
		}

		last, err := r.latestSnapshot(candidate.LordID)
		if err != nil {
			logger.Warn("Departure power lookup failed, skipping player",
				"lord_id", candidate.LordID, "error", err)
			stats.Warnings++
			continue
		}
		if last == nil || !MeetsPowerFloor(last.CurrentPower, r.powerFloor) {
			continue
		}

		ts := snapshot.Timestamp
		err = r.db.Model(&models.Player{}).
			Where("lord_id = ? AND has_left_realm = ?", candidate.LordID, false).
			Updates(map[string]interface{}{
				"has_left_realm": true,
				"left_realm_at":  ts,
			}).Error
		if err != nil {
			logger.Warn("Failed to mark player departed",
				"lord_id", candidate.LordID, "error", err)
			stats.Warnings++
			continue
		}

		stats.Departures++
	}
}

// diffName returns a NameChange when the row's name differs from the
// prior snapshot's, nil otherwise.
func diffName(prior *models.PlayerSnapshot, row PlayerRow, snapshot *models.Snapshot) *models.NameChange {
	if prior.Name == row.Name {
		return nil
	}
	return &models.NameChange{
		PlayerID:   row.LordID,
		SnapshotID: snapshot.ID,
		OldName:    prior.Name,
		NewName:    row.Name,
		DetectedAt: snapshot.Timestamp,
	}
}

// diffAlliance returns an AllianceChange when the alliance tag differs.
// An empty tag is "no alliance", a real state distinct from any tag, so
// joining from or leaving to alliance-less is a transition; staying
// alliance-less is not.
func diffAlliance(prior *models.PlayerSnapshot, row PlayerRow, snapshot *models.Snapshot) *models.AllianceChange {
	if prior.AllianceTag == row.AllianceTag {
		return nil
	}
	return &models.AllianceChange{
		PlayerID:      row.LordID,
		SnapshotID:    snapshot.ID,
		OldTag:        nilIfEmpty(prior.AllianceTag),
		NewTag:        nilIfEmpty(row.AllianceTag),
		OldAllianceID: nilIfEmpty(prior.AllianceID),
		NewAllianceID: nilIfEmpty(row.AllianceID),
		DetectedAt:    snapshot.Timestamp,
	}
}

// IsDepartureCandidate reports whether a player is eligible for
// departure marking as of the given instant: not in the current upload,
// not already flagged, and unseen for at least the cutoff.
func IsDepartureCandidate(p *models.Player, present map[string]struct{}, asOf time.Time, cutoff time.Duration) bool {
	if _, ok := present[p.LordID]; ok {
		return false
	}
	if p.HasLeftRealm || p.LastSeenAt == nil {
		return false
	}
	return p.LastSeenAt.Before(asOf.Add(-cutoff))
}

// MeetsPowerFloor compares a decimal-string power value against the
// floor without going through float64.
func MeetsPowerFloor(power string, floor decimal.Decimal) bool {
	d, err := decimal.NewFromString(power)
	if err != nil {
		return false
	}
	return d.GreaterThanOrEqual(floor)
}

func nilIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
