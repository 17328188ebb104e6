package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrRoomNameNotFound = errors.New("room name not found")

// RoomName is a persisted friendly name for one hub room. Room state is
// never stored; names are the only per-room data that survives restarts.
type RoomName struct {
	HubID     int64
	RoomID    int
	Name      string
	UpdatedAt time.Time
}

// RoomNameStore provides room name CRUD operations.
type RoomNameStore interface {
	Get(ctx context.Context, hubID int64, roomID int) (*RoomName, error)
	List(ctx context.Context, hubID int64) ([]*RoomName, error)
	Upsert(ctx context.Context, n *RoomName) error
	Delete(ctx context.Context, hubID int64, roomID int) error
}

// RoomNames returns a RoomNameStore for this database.
func (db *DB) RoomNames() RoomNameStore {
	return &roomNameStore{db: db}
}

type roomNameStore struct {
	db *DB
}

const roomNameColumns = `hub_id, room_id, name, updated_at`

func scanRoomName(row rowScanner) (*RoomName, error) {
	n := &RoomName{}
	var updatedAt string
	err := row.Scan(&n.HubID, &n.RoomID, &n.Name, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrRoomNameNotFound
	}
	if err != nil {
		return nil, err
	}
	n.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return n, nil
}

func (s *roomNameStore) Get(ctx context.Context, hubID int64, roomID int) (*RoomName, error) {
	return scanRoomName(s.db.QueryRowContext(ctx,
		`SELECT `+roomNameColumns+` FROM room_names WHERE hub_id = ? AND room_id = ?`,
		hubID, roomID))
}

func (s *roomNameStore) List(ctx context.Context, hubID int64) ([]*RoomName, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+roomNameColumns+` FROM room_names WHERE hub_id = ? ORDER BY room_id`, hubID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []*RoomName
	for rows.Next() {
		n, err := scanRoomName(rows)
		if err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

func (s *roomNameStore) Upsert(ctx context.Context, n *RoomName) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO room_names (hub_id, room_id, name)
		VALUES (?, ?, ?)
		ON CONFLICT(hub_id, room_id) DO UPDATE SET
			name = excluded.name,
			updated_at = datetime('now')
	`, n.HubID, n.RoomID, n.Name)
	if err != nil {
		return fmt.Errorf("failed to upsert room name: %w", err)
	}
	return nil
}

func (s *roomNameStore) Delete(ctx context.Context, hubID int64, roomID int) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM room_names WHERE hub_id = ? AND room_id = ?`,
		hubID, roomID)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrRoomNameNotFound
	}
	return nil
}
