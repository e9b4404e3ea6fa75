package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"patient_monitoring/internal/models"
)

type RoomSQLite struct {
	db *sql.DB
}

func NewRoomSQLite(db *sql.DB) *RoomSQLite { return &RoomSQLite{db: db} }

var _ Rooms = (*RoomSQLite)(nil)

const (
	insertRoomSQL = `
		INSERT INTO rooms (number, sector, floor, active, has_bathroom, equipment, patient_id, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	selectRoomSQL = `
		SELECT id, number, sector, floor, active, has_bathroom, equipment, patient_id, updated_at
		FROM rooms
	`

	updateRoomSQL = `
		UPDATE rooms SET number=?, sector=?, floor=?, has_bathroom=?, equipment=?, updated_at=?
		WHERE id=?
	`
)

// marshalEquipment converts the slice to a JSON string for storage.
func marshalEquipment(eq []string) (string, error) {
	if len(eq) == 0 {
		return "", nil
	}
	b, err := json.Marshal(eq)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func unmarshalEquipment(s string) ([]string, error) {
	if s == "" {
		return nil, nil
	}
	var eq []string
	if err := json.Unmarshal([]byte(s), &eq); err != nil {
		return nil, err
	}
	return eq, nil
}

func (r *RoomSQLite) Create(ctx context.Context, room models.Room) (int, error) {
	eq, err := marshalEquipment(room.Equipment)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx, insertRoomSQL,
		room.Number, room.Sector, room.Floor, room.Active, room.HasBathroom,
		eq, nullableID(room.PatientID), time.Now().UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert room %q: %w", room.Number, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for room %q: %w", room.Number, err)
	}
	return int(id), nil
}

func (r *RoomSQLite) GetByID(ctx context.Context, id int) (models.Room, error) {
	row := r.db.QueryRowContext(ctx, selectRoomSQL+` WHERE id=?`, id)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Room{}, fmt.Errorf("room %d: %w", id, ErrNotFound)
		}
		return models.Room{}, err
	}
	return room, nil
}

func (r *RoomSQLite) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomSQL+` ORDER BY sector ASC, number ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Room, 0, 32)
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, room)
	}
	return out, rows.Err()
}

func (r *RoomSQLite) Update(ctx context.Context, room models.Room) error {
	eq, err := marshalEquipment(room.Equipment)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, updateRoomSQL,
		room.Number, room.Sector, room.Floor, room.HasBathroom, eq,
		time.Now().UTC(), room.ID,
	)
	if err != nil {
		return fmt.Errorf("update room %d: %w", room.ID, err)
	}
	return requireRowAffected(res, room.ID)
}

// Assign binds the patient to the room. Occupancy lives only on
// rooms.patient_id; any previous assignment of the same patient is
// cleared in the same transaction.
func (r *RoomSQLite) Assign(ctx context.Context, roomID, patientID int) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	if _, err := tx.ExecContext(ctx,
		`UPDATE rooms SET patient_id=NULL, updated_at=? WHERE patient_id=?`, now, patientID); err != nil {
		return fmt.Errorf("clear prior assignment of patient %d: %w", patientID, err)
	}
	res, err := tx.ExecContext(ctx,
		`UPDATE rooms SET patient_id=?, updated_at=? WHERE id=?`, patientID, now, roomID)
	if err != nil {
		return fmt.Errorf("assign patient %d to room %d: %w", patientID, roomID, err)
	}
	if err := requireRowAffected(res, roomID); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *RoomSQLite) Release(ctx context.Context, roomID int) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET patient_id=NULL, updated_at=? WHERE id=?`, time.Now().UTC(), roomID)
	if err != nil {
		return fmt.Errorf("release room %d: %w", roomID, err)
	}
	return requireRowAffected(res, roomID)
}

func (r *RoomSQLite) SetActive(ctx context.Context, roomID int, active bool) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rooms SET active=?, updated_at=? WHERE id=?`, active, time.Now().UTC(), roomID)
	if err != nil {
		return fmt.Errorf("set active=%v for room %d: %w", active, roomID, err)
	}
	return requireRowAffected(res, roomID)
}

func (r *RoomSQLite) RoomByPatient(ctx context.Context, patientID int) (*models.Room, error) {
	row := r.db.QueryRowContext(ctx, selectRoomSQL+` WHERE patient_id=?`, patientID)
	room, err := scanRoom(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &room, nil
}

func scanRoom(row rowScanner) (models.Room, error) {
	var (
		room      models.Room
		equipment sql.NullString
		patientID sql.NullInt64
	)
	if err := row.Scan(&room.ID, &room.Number, &room.Sector, &room.Floor,
		&room.Active, &room.HasBathroom, &equipment, &patientID, &room.UpdatedAt); err != nil {
		return models.Room{}, err
	}
	eq, err := unmarshalEquipment(equipment.String)
	if err != nil {
		return models.Room{}, err
	}
	room.Equipment = eq
	if patientID.Valid {
		id := int(patientID.Int64)
		room.PatientID = &id
	}
	room.UpdatedAt = room.UpdatedAt.UTC()
	return room, nil
}

func nullableID(id *int) any {
	if id == nil {
		return nil
	}
	return *id
}
