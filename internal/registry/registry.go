// Package registry persists validated sensor descriptors so an experiment's
// exact sensor configuration can be reproduced later. One row per sensor
// instance, keyed by a generated id, with the full descriptor as JSON.
package registry

import (
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/banshee-data/sensor-sim/internal/sensor"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// SensorRecord is one persisted descriptor.
type SensorRecord struct {
	SensorID   string          `json:"sensor_id"`
	Scene      string          `json:"scene"`
	Name       string          `json:"name"`
	SensorType string          `json:"sensor_type"`
	ParamsJSON json.RawMessage `json:"params_json"`
	CreatedAt  int64           `json:"created_at"`
}

// Registry is a SQLite-backed descriptor store.
type Registry struct {
	db *sql.DB
}

// Open opens (creating if necessary) the registry database at path and brings
// the schema up to date.
func Open(path string) (*Registry, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening registry database: %w", err)
	}
	r := &Registry{db: db}
	if err := r.migrateUp(); err != nil {
		db.Close()
		return nil, err
	}
	return r, nil
}

// Close closes the underlying database.
func (r *Registry) Close() error {
	return r.db.Close()
}

func (r *Registry) migrateUp() error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("loading embedded migrations: %w", err)
	}
	driver, err := migratesqlite.WithInstance(r.db, &migratesqlite.Config{})
	if err != nil {
		return fmt.Errorf("creating sqlite migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, "sqlite", driver)
	if err != nil {
		return fmt.Errorf("creating migrate instance: %w", err)
	}
	m.Log = &migrateLogger{}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration up failed: %w", err)
	}
	return nil
}

// migrateLogger implements migrate.Logger.
type migrateLogger struct{}

func (l *migrateLogger) Printf(format string, v ...interface{}) {
	log.Printf("[migrate] "+format, v...)
}

func (l *migrateLogger) Verbose() bool { return false }

// Record persists cfg under the given scene name and returns the stored row.
// The caller must have validated cfg first; the registry stores it verbatim.
func (r *Registry) Record(scene string, cfg sensor.Config) (*SensorRecord, error) {
	params, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding descriptor %q: %w", cfg.SensorName(), err)
	}

	rec := &SensorRecord{
		SensorID:   uuid.New().String(),
		Scene:      scene,
		Name:       cfg.SensorName(),
		SensorType: cfg.SensorType(),
		ParamsJSON: params,
		CreatedAt:  time.Now().UnixNano(),
	}

	err = retryOnBusy(func() error {
		_, err := r.db.Exec(`
			INSERT INTO sensors (
				sensor_id, scene, name, sensor_type, params_json, created_at
			) VALUES (?, ?, ?, ?, ?, ?)`,
			rec.SensorID, rec.Scene, rec.Name, rec.SensorType, string(rec.ParamsJSON), rec.CreatedAt,
		)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("inserting sensor %q: %w", rec.Name, err)
	}
	return rec, nil
}

// GetSensor returns the record with the given id, or sql.ErrNoRows.
func (r *Registry) GetSensor(sensorID string) (*SensorRecord, error) {
	row := r.db.QueryRow(`
		SELECT sensor_id, scene, name, sensor_type, params_json, created_at
		FROM sensors WHERE sensor_id = ?`, sensorID)
	return scanSensor(row)
}

// ListByScene returns every record for a scene, oldest first.
func (r *Registry) ListByScene(scene string) ([]*SensorRecord, error) {
	rows, err := r.db.Query(`
		SELECT sensor_id, scene, name, sensor_type, params_json, created_at
		FROM sensors WHERE scene = ? ORDER BY created_at`, scene)
	if err != nil {
		return nil, fmt.Errorf("listing sensors for scene %q: %w", scene, err)
	}
	defer rows.Close()

	var records []*SensorRecord
	for rows.Next() {
		rec, err := scanSensor(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSensor(row rowScanner) (*SensorRecord, error) {
	var rec SensorRecord
	var params string
	if err := row.Scan(&rec.SensorID, &rec.Scene, &rec.Name, &rec.SensorType, &params, &rec.CreatedAt); err != nil {
		return nil, err
	}
	rec.ParamsJSON = json.RawMessage(params)
	return &rec, nil
}

// retryOnBusy retries fn with backoff while SQLite reports the database as
// locked by a concurrent writer.
func retryOnBusy(fn func() error) error {
	const attempts = 5
	delay := 10 * time.Millisecond

	var err error
	for i := 0; i < attempts; i++ {
		err = fn()
		if err == nil || !isBusy(err) {
			return err
		}
		time.Sleep(delay)
		delay *= 2
	}
	return err
}

func isBusy(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "database is locked") || strings.Contains(msg, "SQLITE_BUSY")
}
