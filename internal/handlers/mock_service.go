package handlers

import (
	"context"
	"net/http"
	"time"

	"patient_monitoring/internal/models"
	"patient_monitoring/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockPatients struct {
	list     []models.Patient
	listErr  error
	patient  models.Patient
	getErr   error
	createID int
	err      error

	lastInput  service.PatientInput
	lastMin    float64
	lastMax    float64
	deletedIDs []int
}

func (m *mockPatients) List(ctx context.Context) ([]models.Patient, error) {
	return m.list, m.listErr
}
func (m *mockPatients) GetByID(ctx context.Context, id int) (models.Patient, error) {
	return m.patient, m.getErr
}
func (m *mockPatients) Create(ctx context.Context, in service.PatientInput) (int, error) {
	m.lastInput = in
	return m.createID, m.err
}
func (m *mockPatients) Update(ctx context.Context, id int, in service.PatientInput) error {
	m.lastInput = in
	return m.err
}
func (m *mockPatients) Delete(ctx context.Context, id int) error {
	m.deletedIDs = append(m.deletedIDs, id)
	return m.err
}
func (m *mockPatients) UpdateLimits(ctx context.Context, id int, min, max float64) error {
	m.lastMin, m.lastMax = min, max
	return m.err
}

type mockRooms struct {
	list    []models.Room
	listErr error
	room    models.Room
	getErr  error

	createID int
	err      error
	active   bool

	lastAssignRoom    int
	lastAssignPatient int
	releasedIDs       []int
}

func (m *mockRooms) List(ctx context.Context) ([]models.Room, error) {
	return m.list, m.listErr
}
func (m *mockRooms) GetByID(ctx context.Context, id int) (models.Room, error) {
	return m.room, m.getErr
}
func (m *mockRooms) Create(ctx context.Context, in service.RoomInput) (int, error) {
	return m.createID, m.err
}
func (m *mockRooms) Update(ctx context.Context, id int, in service.RoomInput) error {
	return m.err
}
func (m *mockRooms) Assign(ctx context.Context, roomID, patientID int) error {
	m.lastAssignRoom = roomID
	m.lastAssignPatient = patientID
	return m.err
}
func (m *mockRooms) Release(ctx context.Context, roomID int) error {
	m.releasedIDs = append(m.releasedIDs, roomID)
	return m.err
}
func (m *mockRooms) ToggleActive(ctx context.Context, roomID int) (bool, error) {
	return m.active, m.err
}

type mockDevices struct {
	list     []models.Device
	createID int
	err      error
}

func (m *mockDevices) List(ctx context.Context) ([]models.Device, error) {
	return m.list, m.err
}
func (m *mockDevices) Create(ctx context.Context, in service.DeviceInput) (int, error) {
	return m.createID, m.err
}
func (m *mockDevices) Update(ctx context.Context, id int, in service.DeviceInput) error {
	return m.err
}
func (m *mockDevices) Delete(ctx context.Context, id int) error {
	return m.err
}

type mockAlerts struct {
	resp     []models.Alert
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
	viewed   []string
}

func (m *mockAlerts) List(ctx context.Context, f service.AlertFilter) ([]models.Alert, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}
func (m *mockAlerts) MarkViewed(ctx context.Context, id string) error {
	m.viewed = append(m.viewed, id)
	return m.err
}

type mockMonitoring struct {
	rooms   []models.RoomStatus
	room    models.RoomStatus
	tracked bool
	updates chan models.RoomStatus
}

func (m *mockMonitoring) Rooms() []models.RoomStatus {
	return m.rooms
}
func (m *mockMonitoring) Room(roomID int) (models.RoomStatus, bool) {
	return m.room, m.tracked
}
func (m *mockMonitoring) Subscribe() (<-chan models.RoomStatus, func()) {
	if m.updates == nil {
		m.updates = make(chan models.RoomStatus, 16)
	}
	return m.updates, func() {}
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
