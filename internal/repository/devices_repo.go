package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"patient_monitoring/internal/models"
)

type DeviceSQLite struct {
	db *sql.DB
}

func NewDeviceSQLite(db *sql.DB) *DeviceSQLite { return &DeviceSQLite{db: db} }

var _ Devices = (*DeviceSQLite)(nil)

const (
	insertDeviceSQL = `INSERT INTO devices (mac_address, name, room_id, updated_at) VALUES (?, ?, ?, ?)`
	selectDeviceSQL = `SELECT id, mac_address, name, room_id, updated_at FROM devices`
	updateDeviceSQL = `UPDATE devices SET mac_address=?, name=?, room_id=?, updated_at=? WHERE id=?`
	deleteDeviceSQL = `DELETE FROM devices WHERE id=?`
)

func (r *DeviceSQLite) Create(ctx context.Context, d models.Device) (int, error) {
	res, err := r.db.ExecContext(ctx, insertDeviceSQL,
		d.MacAddress, d.Name, nullableID(d.RoomID), time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("insert device %q: %w", d.MacAddress, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for device %q: %w", d.MacAddress, err)
	}
	return int(id), nil
}

func (r *DeviceSQLite) List(ctx context.Context) ([]models.Device, error) {
	rows, err := r.db.QueryContext(ctx, selectDeviceSQL+` ORDER BY mac_address ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]models.Device, 0, 16)
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *DeviceSQLite) Update(ctx context.Context, d models.Device) error {
	res, err := r.db.ExecContext(ctx, updateDeviceSQL,
		d.MacAddress, d.Name, nullableID(d.RoomID), time.Now().UTC(), d.ID)
	if err != nil {
		return fmt.Errorf("update device %d: %w", d.ID, err)
	}
	return requireRowAffected(res, d.ID)
}

func (r *DeviceSQLite) Delete(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, deleteDeviceSQL, id)
	if err != nil {
		return fmt.Errorf("delete device %d: %w", id, err)
	}
	return requireRowAffected(res, id)
}

func (r *DeviceSQLite) GetByMac(ctx context.Context, mac string) (*models.Device, error) {
	row := r.db.QueryRowContext(ctx, selectDeviceSQL+` WHERE mac_address=?`, mac)
	d, err := scanDevice(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &d, nil
}

func scanDevice(row rowScanner) (models.Device, error) {
	var (
		d      models.Device
		name   sql.NullString
		roomID sql.NullInt64
	)
	if err := row.Scan(&d.ID, &d.MacAddress, &name, &roomID, &d.UpdatedAt); err != nil {
		return models.Device{}, err
	}
	d.Name = name.String
	if roomID.Valid {
		id := int(roomID.Int64)
		d.RoomID = &id
	}
	d.UpdatedAt = d.UpdatedAt.UTC()
	return d, nil
}
