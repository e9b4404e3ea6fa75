package service

import (
	"context"
	"errors"
	"strings"

	"patient_monitoring/internal/models"
	"patient_monitoring/internal/repository"
)

var errMacRequired = errors.New("device mac address is required")

type DevicesService struct {
	devices repository.Devices
}

func NewDevicesService(devices repository.Devices) *DevicesService {
	return &DevicesService{devices: devices}
}

func (s *DevicesService) List(ctx context.Context) ([]models.Device, error) {
	return s.devices.List(ctx)
}

func (s *DevicesService) Create(ctx context.Context, in DeviceInput) (int, error) {
	mac := normalizeMac(in.MacAddress)
	if mac == "" {
		return 0, errMacRequired
	}
	return s.devices.Create(ctx, models.Device{
		MacAddress: mac,
		Name:       strings.TrimSpace(in.Name),
		RoomID:     in.RoomID,
	})
}

func (s *DevicesService) Update(ctx context.Context, id int, in DeviceInput) error {
	mac := normalizeMac(in.MacAddress)
	if mac == "" {
		return errMacRequired
	}
	return s.devices.Update(ctx, models.Device{
		ID:         id,
		MacAddress: mac,
		Name:       strings.TrimSpace(in.Name),
		RoomID:     in.RoomID,
	})
}

func (s *DevicesService) Delete(ctx context.Context, id int) error {
	return s.devices.Delete(ctx, id)
}

func normalizeMac(mac string) string {
	return strings.ToLower(strings.TrimSpace(mac))
}
