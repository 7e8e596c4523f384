package registry

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/backkem/wol/pkg/magic"
	"github.com/pion/logging"

	_ "modernc.org/sqlite"
)

//go:embed migrations.sql
var migrationsFS embed.FS

// defaultBusyTimeout is how long a writer waits on a locked database.
const defaultBusyTimeout = 5 * time.Second

// SQLiteStore is a Store backed by a SQLite database file.
type SQLiteStore struct {
	db     *sql.DB
	closed atomic.Bool
	log    logging.LeveledLogger
}

// OpenSQLite opens (creating if needed) the database at path and applies the
// schema. Parent directories are created.
func OpenSQLite(path string, loggerFactory logging.LoggerFactory) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("registry: sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("registry: creating directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("registry: opening %s: %w", path, err)
	}
	// SQLite serialises writers; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &SQLiteStore{db: db}
	if loggerFactory != nil {
		s.log = loggerFactory.NewLogger("registry")
	}

	_, _ = db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", defaultBusyTimeout.Milliseconds()))
	_, _ = db.Exec("PRAGMA journal_mode = WAL")
	_, _ = db.Exec("PRAGMA synchronous = NORMAL")

	if err := s.migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("registry: migrating %s: %w", path, err)
	}

	if s.log != nil {
		s.log.Debugf("opened %s", path)
	}
	return s, nil
}

func (s *SQLiteStore) migrate(ctx context.Context) error {
	b, err := migrationsFS.ReadFile("migrations.sql")
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, string(b))
	return err
}

// List returns all devices sorted by name.
func (s *SQLiteStore) List(ctx context.Context) ([]Device, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, mac FROM devices ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Device
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if result == nil {
		result = []Device{}
	}
	return result, nil
}

// Get returns the device with the given name.
func (s *SQLiteStore) Get(ctx context.Context, name string) (Device, error) {
	if s.closed.Load() {
		return Device{}, ErrClosed
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, mac FROM devices WHERE name = ?`, strings.TrimSpace(name))
	d, err := scanDevice(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Device{}, ErrNotFound
	}
	return d, err
}

// Add registers a new device.
func (s *SQLiteStore) Add(ctx context.Context, name, mac string) (Device, error) {
	if s.closed.Load() {
		return Device{}, ErrClosed
	}

	name, hw, err := normalize(name, mac)
	if err != nil {
		return Device{}, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO devices(name, mac) VALUES(?, ?) ON CONFLICT(name) DO NOTHING`,
		name, hw.String(),
	)
	if err != nil {
		return Device{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Device{}, err
	}
	if n == 0 {
		return Device{}, ErrDuplicateName
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Device{}, err
	}

	d := Device{ID: id, Name: name, MAC: hw}
	if s.log != nil {
		s.log.Debugf("added %s", d)
	}
	return d, nil
}

// Delete removes the device with the given ID.
func (s *SQLiteStore) Delete(ctx context.Context, id int64) error {
	if s.closed.Load() {
		return ErrClosed
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM devices WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}

	if s.log != nil {
		s.log.Debugf("removed device %d", id)
	}
	return nil
}

// Close closes the database. It is safe to call more than once.
func (s *SQLiteStore) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDevice(sc scanner) (Device, error) {
	var (
		d   Device
		mac string
	)
	if err := sc.Scan(&d.ID, &d.Name, &mac); err != nil {
		return Device{}, err
	}
	hw, err := magic.ParseMAC(mac)
	if err != nil {
		return Device{}, fmt.Errorf("registry: device %d has corrupt MAC %q: %w", d.ID, mac, err)
	}
	d.MAC = hw
	return d, nil
}
