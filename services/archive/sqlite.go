package archive

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"telemetry-sim/models"
)

// ErrNotFound is returned when a run has no archived samples.
var ErrNotFound = errors.New("archive: no samples")

const schema = `CREATE TABLE IF NOT EXISTS telemetry (
	run_id       TEXT    NOT NULL,
	packet_count INTEGER NOT NULL,
	ts           TEXT    NOT NULL,
	team_id      TEXT    NOT NULL,
	altitude     REAL,
	pressure     REAL,
	temperature  REAL,
	voltage      REAL,
	gps_time     TEXT,
	gps_lat      REAL,
	gps_lon      REAL,
	gps_alt      REAL,
	gps_sats     INTEGER,
	a_x          REAL,
	a_y          REAL,
	a_z          REAL,
	gyro_x       REAL,
	gyro_y       REAL,
	gyro_z       REAL,
	fsw_state    TEXT,
	angle_x      REAL,
	angle_y      REAL,
	angle_z      REAL,
	PRIMARY KEY (run_id, packet_count)
)`

const columns = `packet_count, ts, team_id, altitude, pressure, temperature, voltage,
	gps_time, gps_lat, gps_lon, gps_alt, gps_sats,
	a_x, a_y, a_z, gyro_x, gyro_y, gyro_z,
	fsw_state, angle_x, angle_y, angle_z`

// Archive mirrors telemetry samples into a local SQLite database so past
// runs can be queried after the CSV stream has moved on.
type Archive struct {
	db *sql.DB
}

// NewRunID returns a fresh identifier for one simulator process.
func NewRunID() string {
	return uuid.NewString()
}

// Open opens (or creates) the archive database at path.
func Open(path string) (*Archive, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// One writer; avoids SQLITE_BUSY between pooled connections.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create table: %w", err)
	}
	return &Archive{db: db}, nil
}

// Insert stores one sample under runID.
func (a *Archive) Insert(ctx context.Context, runID string, s *models.TelemetrySample) error {
	_, err := a.db.ExecContext(ctx,
		`INSERT INTO telemetry (run_id, `+columns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, s.PacketCount, s.Timestamp.UTC().Format(time.RFC3339Nano), s.TeamID,
		s.Altitude, s.Environment.Pressure, s.Environment.Temperature, s.Voltage,
		s.GPS.Time.UTC().Format(time.RFC3339), s.GPS.Latitude, s.GPS.Longitude, s.GPS.Altitude, s.GPS.Sats,
		s.IMU.AccelX, s.IMU.AccelY, s.IMU.AccelZ, s.IMU.GyroX, s.IMU.GyroY, s.IMU.GyroZ,
		s.Phase.String(), s.Orientation.AngleX, s.Orientation.AngleY, s.Orientation.AngleZ,
	)
	if err != nil {
		return fmt.Errorf("insert packet %d: %w", s.PacketCount, err)
	}
	return nil
}

// Latest returns the sample with the highest packet count for runID.
func (a *Archive) Latest(ctx context.Context, runID string) (models.TelemetrySample, error) {
	row := a.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM telemetry WHERE run_id = ? ORDER BY packet_count DESC LIMIT 1`, runID)

	var (
		s           models.TelemetrySample
		ts, gpsTime string
		phase       string
	)
	err := row.Scan(
		&s.PacketCount, &ts, &s.TeamID, &s.Altitude, &s.Environment.Pressure, &s.Environment.Temperature, &s.Voltage,
		&gpsTime, &s.GPS.Latitude, &s.GPS.Longitude, &s.GPS.Altitude, &s.GPS.Sats,
		&s.IMU.AccelX, &s.IMU.AccelY, &s.IMU.AccelZ, &s.IMU.GyroX, &s.IMU.GyroY, &s.IMU.GyroZ,
		&phase, &s.Orientation.AngleX, &s.Orientation.AngleY, &s.Orientation.AngleZ,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return s, fmt.Errorf("run %s: %w", runID, ErrNotFound)
	}
	if err != nil {
		return s, fmt.Errorf("query latest: %w", err)
	}

	if s.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return s, fmt.Errorf("parse ts: %w", err)
	}
	if s.GPS.Time, err = time.Parse(time.RFC3339, gpsTime); err != nil {
		return s, fmt.Errorf("parse gps time: %w", err)
	}
	if s.Phase, err = models.ParsePhase(phase); err != nil {
		return s, err
	}
	return s, nil
}

// Count returns the number of samples archived for runID.
func (a *Archive) Count(ctx context.Context, runID string) (int, error) {
	var n int
	err := a.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM telemetry WHERE run_id = ?`, runID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count: %w", err)
	}
	return n, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}
