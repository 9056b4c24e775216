package controller

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v5"

	"telemetry-sim/models"
	"telemetry-sim/services/archive"
	"telemetry-sim/utils"
	"telemetry-sim/views"
)

// rowAppender is the part of views.StreamWriter the recorder needs.
type rowAppender interface {
	Append(row []string) error
	Sync() error
	Close() error
}

// RecordingController is the last stage of a tick. It writes each sample to:
//   - the CSV record stream (authoritative; a failed append fails the tick)
//   - the SQLite archive, when enabled (best effort; failures are counted)
//
// Stream appends are retried with exponential backoff before giving up.
type RecordingController struct {
	stream  rowAppender
	archive *archive.Archive
	runID   string

	maxRetries int
	initial    time.Duration
	syncEvery  uint64 // 0 = leave flushing to the OS

	rowsWritten     uint64
	archiveFailures uint64
}

// NewRecordingController opens the record stream and, if configured, the archive.
func NewRecordingController(cfg *utils.SimulatorConfig, runID string) (*RecordingController, error) {
	stream, err := views.OpenStream(cfg.Stream.Path, models.TelemetrySample{}.CSVHeader())
	if err != nil {
		return nil, err
	}

	var arch *archive.Archive
	if cfg.Archive.Enabled {
		arch, err = archive.Open(cfg.Archive.Path)
		if err != nil {
			stream.Close()
			return nil, err
		}
		utils.L().Info("archive enabled  path=%s run=%s", cfg.Archive.Path, runID)
	}

	rc := newRecordingController(stream, arch, runID, cfg.Retry)
	rc.syncEvery = uint64(cfg.Stream.SyncEvery)
	utils.L().Info("recording controller ready  stream=%s", cfg.Stream.Path)
	return rc, nil
}

func newRecordingController(stream rowAppender, arch *archive.Archive, runID string, retry utils.RetryConfig) *RecordingController {
	return &RecordingController{
		stream:     stream,
		archive:    arch,
		runID:      runID,
		maxRetries: retry.MaxRetries,
		initial:    time.Duration(retry.InitialMs) * time.Millisecond,
	}
}

// Record appends one sample. It returns an error only when the record
// stream could not take the row; in that case nothing was written to it.
func (rc *RecordingController) Record(ctx context.Context, s *models.TelemetrySample) error {
	row := s.CSVRow()

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		return struct{}{}, rc.stream.Append(row)
	},
		backoff.WithBackOff(rc.newBackOff()),
		backoff.WithMaxTries(uint(rc.maxRetries)+1),
		backoff.WithNotify(func(err error, d time.Duration) {
			utils.L().Warn("record: packet %d append failed, retrying in %s: %v", s.PacketCount, d, err)
		}),
	)
	if err != nil {
		return fmt.Errorf("record packet %d: %w", s.PacketCount, err)
	}
	rows := atomic.AddUint64(&rc.rowsWritten, 1)

	// The row is already in the stream; a failed sync only widens the window
	// a crash can lose, so it does not fail the tick.
	if rc.syncEvery > 0 && rows%rc.syncEvery == 0 {
		if err := rc.stream.Sync(); err != nil {
			utils.L().Warn("record: sync after packet %d: %v", s.PacketCount, err)
		}
	}

	if rc.archive != nil {
		if err := rc.archive.Insert(ctx, rc.runID, s); err != nil {
			atomic.AddUint64(&rc.archiveFailures, 1)
			utils.L().Warn("record: archive: %v", err)
		}
	}
	return nil
}

func (rc *RecordingController) newBackOff() backoff.BackOff {
	if rc.initial <= 0 {
		return &backoff.ZeroBackOff{}
	}
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = rc.initial
	b.MaxInterval = 20 * rc.initial
	return b
}

// Stop closes the stream and the archive.
func (rc *RecordingController) Stop() {
	if err := rc.stream.Close(); err != nil {
		utils.L().Error("close stream: %v", err)
	}
	if rc.archive != nil {
		if err := rc.archive.Close(); err != nil {
			utils.L().Error("close archive: %v", err)
		}
	}
	utils.L().Info("recording controller stopped  (rows_written=%d, archive_failures=%d)",
		rc.RowsWritten(), rc.ArchiveFailures())
}

// RunID identifies this process's rows in the archive.
func (rc *RecordingController) RunID() string { return rc.runID }

// RowsWritten returns the number of samples appended to the stream.
func (rc *RecordingController) RowsWritten() uint64 {
	return atomic.LoadUint64(&rc.rowsWritten)
}

// ArchiveFailures returns the number of samples the archive rejected.
func (rc *RecordingController) ArchiveFailures() uint64 {
	return atomic.LoadUint64(&rc.archiveFailures)
}
