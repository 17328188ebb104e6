package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrHubNotFound = errors.New("hub config not found")

// Link kinds for reaching the hub.
const (
	LinkTCP    = "tcp"
	LinkSerial = "serial"
)

// Hub represents the link configuration for one heating hub. Each
// profile carries at most one hub.
type Hub struct {
	ID                  int64
	ProfileID           int64
	Name                string
	Link                string
	Host                string
	Port                int
	SerialDevice        string
	BaudRate            int
	PollIntervalSeconds int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Address returns the hub's TCP endpoint (host:port).
func (h *Hub) Address() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// PollInterval returns the configured poll cadence.
func (h *Hub) PollInterval() time.Duration {
	return time.Duration(h.PollIntervalSeconds) * time.Second
}

// HubStore provides hub config CRUD operations.
type HubStore interface {
	Get(ctx context.Context, id int64) (*Hub, error)
	GetByProfile(ctx context.Context, profileID int64) (*Hub, error)
	Create(ctx context.Context, h *Hub) error
	Update(ctx context.Context, h *Hub) error
	Upsert(ctx context.Context, h *Hub) error
	Delete(ctx context.Context, profileID int64) error
}

// Hubs returns a HubStore for this database.
func (db *DB) Hubs() HubStore {
	return &hubStore{db: db}
}

type hubStore struct {
	db *DB
}

const hubColumns = `id, profile_id, name, link, host, port, serial_device, baud_rate, poll_interval_seconds, created_at, updated_at`

func scanHub(row rowScanner) (*Hub, error) {
	h := &Hub{}
	var createdAt, updatedAt string
	err := row.Scan(&h.ID, &h.ProfileID, &h.Name, &h.Link, &h.Host, &h.Port,
		&h.SerialDevice, &h.BaudRate, &h.PollIntervalSeconds, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrHubNotFound
	}
	if err != nil {
		return nil, err
	}
	h.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	h.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return h, nil
}

func (s *hubStore) Get(ctx context.Context, id int64) (*Hub, error) {
	return scanHub(s.db.QueryRowContext(ctx,
		`SELECT `+hubColumns+` FROM hubs WHERE id = ?`, id))
}

func (s *hubStore) GetByProfile(ctx context.Context, profileID int64) (*Hub, error) {
	return scanHub(s.db.QueryRowContext(ctx,
		`SELECT `+hubColumns+` FROM hubs WHERE profile_id = ?`, profileID))
}

func (s *hubStore) Create(ctx context.Context, h *Hub) error {
	applyHubDefaults(h)
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO hubs (profile_id, name, link, host, port, serial_device, baud_rate, poll_interval_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, h.ProfileID, h.Name, h.Link, h.Host, h.Port, h.SerialDevice, h.BaudRate, h.PollIntervalSeconds)
	if err != nil {
		return fmt.Errorf("failed to create hub config: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	h.ID = id
	return nil
}

func (s *hubStore) Update(ctx context.Context, h *Hub) error {
	applyHubDefaults(h)
	result, err := s.db.ExecContext(ctx, `
		UPDATE hubs SET name = ?, link = ?, host = ?, port = ?, serial_device = ?,
			baud_rate = ?, poll_interval_seconds = ?, updated_at = datetime('now')
		WHERE profile_id = ?
	`, h.Name, h.Link, h.Host, h.Port, h.SerialDevice, h.BaudRate, h.PollIntervalSeconds, h.ProfileID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrHubNotFound
	}
	return nil
}

// Upsert creates the profile's hub config or overwrites the existing one.
func (s *hubStore) Upsert(ctx context.Context, h *Hub) error {
	applyHubDefaults(h)
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO hubs (profile_id, name, link, host, port, serial_device, baud_rate, poll_interval_seconds)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET
			name = excluded.name,
			link = excluded.link,
			host = excluded.host,
			port = excluded.port,
			serial_device = excluded.serial_device,
			baud_rate = excluded.baud_rate,
			poll_interval_seconds = excluded.poll_interval_seconds,
			updated_at = datetime('now')
	`, h.ProfileID, h.Name, h.Link, h.Host, h.Port, h.SerialDevice, h.BaudRate, h.PollIntervalSeconds)
	if err != nil {
		return fmt.Errorf("failed to upsert hub config: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil && id > 0 {
		h.ID = id
	}
	return nil
}

func (s *hubStore) Delete(ctx context.Context, profileID int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM hubs WHERE profile_id = ?`, profileID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrHubNotFound
	}
	return nil
}

func applyHubDefaults(h *Hub) {
	if h.Name == "" {
		h.Name = "Termowifi"
	}
	if h.Link == "" {
		h.Link = LinkTCP
	}
	if h.Port == 0 {
		h.Port = 12345
	}
	if h.BaudRate == 0 {
		h.BaudRate = 9600
	}
	if h.PollIntervalSeconds == 0 {
		h.PollIntervalSeconds = 60
	}
}
