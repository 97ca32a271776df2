package ingest

import (
	"context"
	"hash/fnv"
	"io"
	"time"

	"github.com/kavehz/realmstats/internal/config"
	"github.com/kavehz/realmstats/internal/models"
	"github.com/kavehz/realmstats/internal/repositories"
	"github.com/kavehz/realmstats/pkg/errors"
	"github.com/kavehz/realmstats/pkg/logger"
	"github.com/kavehz/realmstats/pkg/utils"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

// Notifier receives a best-effort digest after a successful ingestion.
type Notifier interface {
	IngestCompleted(result *Result)
}

// Result is what a completed ingestion reports back to the caller.
type Result struct {
	UploadID        string    `json:"upload_id"`
	SnapshotID      uint      `json:"snapshot_id"`
	Kingdom         string    `json:"kingdom"`
	Timestamp       time.Time `json:"timestamp"`
	RowCount        int       `json:"row_count"`
	NameChanges     int       `json:"name_changes"`
	AllianceChanges int       `json:"alliance_changes"`
	Departures      int       `json:"departures"`
}

// Service runs the full pipeline for one upload: parse filename, locate
// worksheet, normalize rows, write the snapshot, reconcile history.
// Uploads for the same kingdom are serialized with a session-level
// Postgres advisory lock; the writer and reconciler must not interleave
// with another in-flight upload.
type Service struct {
	db       *gorm.DB
	cfg      *config.Config
	uploads  *repositories.UploadRepository
	seasons  *repositories.SeasonRepository
	notifier Notifier
}

func NewService(db *gorm.DB, cfg *config.Config, uploads *repositories.UploadRepository,
	seasons *repositories.SeasonRepository, notifier Notifier) *Service {
	return &Service{
		db:       db,
		cfg:      cfg,
		uploads:  uploads,
		seasons:  seasons,
		notifier: notifier,
	}
}

// Ingest processes one uploaded workbook. Format errors surface before
// any snapshot rows are written; write failures mark the upload failed
// with the captured error.
func (s *Service) Ingest(ctx context.Context, filename string, content io.Reader, uploadedBy string) (*Result, error) {
	upload := &models.Upload{
		PublicID:   utils.GenerateRandomID(12),
		Filename:   filename,
		Status:     models.UploadStatusPending,
		UploadedBy: uploadedBy,
	}
	if err := s.uploads.Create(upload); err != nil {
		return nil, err
	}

	kingdom, ts, err := ParseFilename(filename)
	if err != nil {
		return nil, s.fail(upload, err)
	}
	upload.Kingdom = kingdom

	f, err := excelize.OpenReader(content)
	if err != nil {
		return nil, s.fail(upload, errors.Wrap(err, errors.ErrCodeValidationFailed, "file is not a readable workbook"))
	}
	defer f.Close()

	sheet, err := LocateWorksheet(f, kingdom)
	if err != nil {
		return nil, s.fail(upload, err)
	}

	rows, err := NormalizeRows(f, sheet)
	if err != nil {
		return nil, s.fail(upload, err)
	}

	upload.Status = models.UploadStatusProcessing
	if err := s.uploads.Update(upload); err != nil {
		return nil, s.fail(upload, err)
	}

	snapshot := &models.Snapshot{
		Timestamp: ts,
		Kingdom:   kingdom,
		Filename:  filename,
	}
	if season, err := s.seasons.FindByTimestamp(ts); err == nil && season != nil {
		snapshot.SeasonID = &season.ID
	}

	var stats ReconcileStats
	err = s.db.Connection(func(conn *gorm.DB) error {
		// Session-level advisory lock on one pinned connection; held
		// across every batch transaction of this upload.
		key := kingdomLockKey(kingdom)
		if err := conn.Exec("SELECT pg_advisory_lock(?)", key).Error; err != nil {
			return errors.Wrap(err, errors.ErrCodeInternalError, "failed to acquire ingest lock")
		}
		defer func() {
			if err := conn.Exec("SELECT pg_advisory_unlock(?)", key).Error; err != nil {
				logger.Error("Failed to release ingest lock", "kingdom", kingdom, "error", err)
			}
		}()

		writer := NewWriter(conn, s.cfg.IngestBatchSize, s.cfg.GetIngestBatchTimeout())
		if err := writer.Write(ctx, snapshot, rows); err != nil {
			return err
		}

		reconciler := NewReconciler(conn, s.cfg.GetDepartureCutoff(), s.cfg.GetDeparturePowerFloor())
		stats = reconciler.Reconcile(snapshot, rows)
		return nil
	})
	if err != nil {
		return nil, s.fail(upload, err)
	}

	upload.Status = models.UploadStatusCompleted
	upload.SnapshotID = &snapshot.ID
	upload.RowCount = len(rows)
	if err := s.uploads.Update(upload); err != nil {
		logger.Error("Failed to mark upload completed", "upload", upload.PublicID, "error", err)
	}

	result := &Result{
		UploadID:        upload.PublicID,
		SnapshotID:      snapshot.ID,
		Kingdom:         kingdom,
		Timestamp:       ts,
		RowCount:        len(rows),
		NameChanges:     stats.NameChanges,
		AllianceChanges: stats.AllianceChanges,
		Departures:      stats.Departures,
	}

	logger.Info("Upload ingested",
		"upload", upload.PublicID,
		"kingdom", kingdom,
		"timestamp", ts,
		"rows", len(rows),
		"name_changes", stats.NameChanges,
		"alliance_changes", stats.AllianceChanges,
		"departures", stats.Departures,
		"warnings", stats.Warnings,
	)

	if s.notifier != nil {
		s.notifier.IngestCompleted(result)
	}

	return result, nil
}

func (s *Service) fail(upload *models.Upload, cause error) error {
	upload.Status = models.UploadStatusFailed
	upload.Error = cause.Error()
	if err := s.uploads.Update(upload); err != nil {
		logger.Error("Failed to mark upload failed", "upload", upload.PublicID, "error", err)
	}
	logger.Error("Upload ingestion failed", "upload", upload.PublicID, "filename", upload.Filename, "error", cause)
	return cause
}

// kingdomLockKey maps a kingdom id onto a stable advisory lock key.
func kingdomLockKey(kingdom string) int64 {
	h := fnv.New64a()
	h.Write([]byte("ingest:" + kingdom))
	return int64(h.Sum64())
}
