package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Writer persists one upload: the Snapshot row, the Player identity
// upserts and the PlayerSnapshot fact rows. Rows are written in fixed
// batches, each in its own transaction, to bound lock time on large
// uploads. Batch order matters: the reconciler needs the whole snapshot
// visible before it runs.
type Writer struct {
	db           *gorm.DB
	batchSize    int
	batchTimeout time.Duration
}

func NewWriter(db *gorm.DB, batchSize int, batchTimeout time.Duration) *Writer {
	return &Writer{
		db:           db,
		batchSize:    batchSize,
		batchTimeout: batchTimeout,
	}
}

// Write creates the snapshot and writes all rows. A batch failure stops
// the upload; previously committed batches are not rolled back, so the
// caller must mark the upload failed.
func (w *Writer) Write(ctx context.Context, snapshot *models.Snapshot, rows []PlayerRow) error {
	if err := w.db.WithContext(ctx).Create(snapshot).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to create snapshot")
	}

	for start := 0; start < len(rows); start += w.batchSize {
		end := start + w.batchSize
		if end > len(rows) {
			end = len(rows)
		}

		if err := w.writeBatch(ctx, snapshot, rows[start:end]); err != nil {
			return errors.Wrap(err, errors.ErrCodeBatchWriteFailure,
				fmt.Sprintf("batch starting at row %d failed", start))
		}
	}

	snapshot.RowCount = len(rows)
	if err := w.db.WithContext(ctx).Model(snapshot).Update("row_count", len(rows)).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodeInternalError, "failed to record snapshot row count")
	}

	return nil
}

func (w *Writer) writeBatch(ctx context.Context, snapshot *models.Snapshot, batch []PlayerRow) error {
	bctx, cancel := context.WithTimeout(ctx, w.batchTimeout)
	defer cancel()

	return w.db.WithContext(bctx).Transaction(func(tx *gorm.DB) error {
		ts := snapshot.Timestamp

		players := make([]models.Player, len(batch))
		for i, row := range batch {
			players[i] = models.Player{
				LordID:       row.LordID,
				CurrentName:  row.Name,
				LastSeenAt:   &ts,
				HasLeftRealm: false,
				LeftRealmAt:  nil,
			}
		}

		// Idempotent under retry: a reappearing player un-departs.
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "lord_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"current_name", "last_seen_at", "has_left_realm", "left_realm_at", "updated_at",
			}),
		}).Create(&players).Error; err != nil {
			return err
		}

		facts := make([]models.PlayerSnapshot, len(batch))
		for i, row := range batch {
			facts[i] = toPlayerSnapshot(row, snapshot.ID)
		}

		return tx.Create(&facts).Error
	})
}

func toPlayerSnapshot(row PlayerRow, snapshotID uint) models.PlayerSnapshot {
	return models.PlayerSnapshot{
		PlayerID:   row.LordID,
		SnapshotID: snapshotID,

		Name:        row.Name,
		Division:    row.Division,
		AllianceID:  row.AllianceID,
		AllianceTag: row.AllianceTag,
		Faction:     row.Faction,
		CityLevel:   row.CityLevel,

		CurrentPower:  row.CurrentPower,
		HighestPower:  row.HighestPower,
		HeroPower:     row.HeroPower,
		LegionPower:   row.LegionPower,
		TechPower:     row.TechPower,
		BuildingPower: row.BuildingPower,

		UnitsKilled: row.UnitsKilled,
		UnitsDead:   row.UnitsDead,
		UnitsHealed: row.UnitsHealed,
		T1Kills:     row.T1Kills,
		T2Kills:     row.T2Kills,
		T3Kills:     row.T3Kills,
		T4Kills:     row.T4Kills,
		T5Kills:     row.T5Kills,

		Merits:     row.Merits,
		Victories:  row.Victories,
		Defeats:    row.Defeats,
		CitySieges: row.CitySieges,
		Scouted:    row.Scouted,
		HelpsGiven: row.HelpsGiven,

		Gold:      row.Gold,
		GoldSpent: row.GoldSpent,
		Wood:      row.Wood,
		WoodSpent: row.WoodSpent,
		Ore:       row.Ore,
		OreSpent:  row.OreSpent,
		Mana:      row.Mana,
		ManaSpent: row.ManaSpent,
		Gems:      row.Gems,
		GemsSpent: row.GemsSpent,

		ResourcesGiven:      row.ResourcesGiven,
		ResourcesGivenCount: row.ResourcesGivenCount,
	}
}
