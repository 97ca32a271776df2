package services

import (
	"time"

	"github.com/kavehz/realmstats/internal/ingest"
	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/internal/repositories"
	"github.com/kavehz/realmstats/pkg/logger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DepartureService recomputes the realm-presence projection from the
// snapshot ledger. HasLeftRealm is derived state: lastSeenAt is the
// ground truth, so changing the cutoff or power floor only needs a
// sweep, not a backfill. The sweep runs on a cron schedule and can also
// be invoked manually.
type DepartureService struct {
	db         *gorm.DB
	snapshots  *repositories.SnapshotRepository
	cutoff     time.Duration
	powerFloor decimal.Decimal
}

func NewDepartureService(db *gorm.DB, snapshots *repositories.SnapshotRepository,
	cutoff time.Duration, powerFloor decimal.Decimal) *DepartureService {
	return &DepartureService{
		db:         db,
		snapshots:  snapshots,
		cutoff:     cutoff,
		powerFloor: powerFloor,
	}
}

// RecomputeAll sweeps every kingdom that has snapshots.
func (s *DepartureService) RecomputeAll() {
	kingdoms, err := s.snapshots.ListKingdoms()
	if err != nil {
		logger.Error("Departure sweep failed to list kingdoms", "error", err)
		return
	}

	for _, kingdom := range kingdoms {
		marked, cleared, err := s.Recompute(kingdom)
		if err != nil {
			logger.Error("Departure sweep failed", "kingdom", kingdom, "error", err)
			continue
		}
		if marked > 0 || cleared > 0 {
			logger.Info("Departure sweep finished",
				"kingdom", kingdom, "marked", marked, "cleared", cleared)
		}
	}
}

// Recompute re-derives departure flags for one kingdom as of its latest
// snapshot. Flags inconsistent with the current cutoff/floor constants
// are corrected in both directions.
func (s *DepartureService) Recompute(kingdom string) (marked, cleared int, err error) {
	latest, err := s.snapshots.GetLatest(kingdom)
	if err != nil {
		return 0, 0, err
	}

	var presentIDs []string
	err = s.db.Model(&models.PlayerSnapshot{}).
		Where("snapshot_id = ?", latest.ID).
		Pluck("player_id", &presentIDs).Error
	if err != nil {
		return 0, 0, err
	}

	present := make(map[string]struct{}, len(presentIDs))
	for _, id := range presentIDs {
		present[id] = struct{}{}
	}

	// Both scans are scoped to players with rows in this kingdom's
	// ledger. Each kingdom's latest snapshot is the reference instant
	// for its own players only; without the scope, a kingdom with a
	// stale latest snapshot would rewrite other kingdoms' flags.
	ledger := s.kingdomLedger(kingdom)

	// Clear flags that no longer hold: the player is in the latest
	// upload or their absence is shorter than the cutoff.
	var flagged []models.Player
	if err := s.db.Where("has_left_realm = ? AND lord_id IN (?)", true, ledger).Find(&flagged).Error; err != nil {
		return 0, 0, err
	}
	for i := range flagged {
		p := &flagged[i]
		_, isPresent := present[p.LordID]
		withinCutoff := p.LastSeenAt != nil && !p.LastSeenAt.Before(latest.Timestamp.Add(-s.cutoff))
		if !isPresent && !withinCutoff {
			continue
		}
		err := s.db.Model(&models.Player{}).
			Where("lord_id = ?", p.LordID).
			Updates(map[string]interface{}{
				"has_left_realm": false,
				"left_realm_at":  nil,
			}).Error
		if err != nil {
			logger.Warn("Failed to clear departure flag", "lord_id", p.LordID, "error", err)
			continue
		}
		cleared++
	}

	// Mark departures the per-upload inference may have missed, e.g.
	// after the cutoff was lowered.
	var candidates []models.Player
	err = s.db.Where("has_left_realm = ? AND last_seen_at IS NOT NULL AND lord_id IN (?)", false, s.kingdomLedger(kingdom)).
		Find(&candidates).Error
	if err != nil {
		return marked, cleared, err
	}

	for i := range candidates {
		candidate := &candidates[i]
		if !ingest.IsDepartureCandidate(candidate, present, latest.Timestamp, s.cutoff) {
			continue
		}

		var last models.PlayerSnapshot
		lookupErr := s.db.
			Joins("JOIN snapshots ON snapshots.id = player_snapshots.snapshot_id").
			Where("player_snapshots.player_id = ? AND snapshots.kingdom = ?", candidate.LordID, kingdom).
			Order("snapshots.timestamp DESC").
			First(&last).Error
		if lookupErr != nil {
			continue
		}
		if !ingest.MeetsPowerFloor(last.CurrentPower, s.powerFloor) {
			continue
		}

		updateErr := s.db.Model(&models.Player{}).
			Where("lord_id = ? AND has_left_realm = ?", candidate.LordID, false).
			Updates(map[string]interface{}{
				"has_left_realm": true,
				"left_realm_at":  latest.Timestamp,
			}).Error
		if updateErr != nil {
			logger.Warn("Failed to mark departure in sweep", "lord_id", candidate.LordID, "error", updateErr)
			continue
		}
		marked++
	}

	return marked, cleared, nil
}

// kingdomLedger returns a subquery selecting every player id that has
// at least one fact row in the given kingdom.
func (s *DepartureService) kingdomLedger(kingdom string) *gorm.DB {
	return s.db.Model(&models.PlayerSnapshot{}).
		Select("player_snapshots.player_id").
		Joins("JOIN snapshots ON snapshots.id = player_snapshots.snapshot_id").
		Where("snapshots.kingdom = ?", kingdom)
}
