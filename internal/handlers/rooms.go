package handlers

import (
	"net/http"

	"patient_monitoring/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListRooms  = "failed to load rooms"
	errGetRoom    = "failed to load room"
	errDeleteRoom = "failed to delete room"
	errRoomNF     = "room not found"
)

// Request DTO for room create/update.
type roomRequest struct {
	Number      string   `json:"number" binding:"required"`
	Sector      string   `json:"sector,omitempty"`
	Floor       int      `json:"floor,omitempty"`
	HasBathroom bool     `json:"has_bathroom,omitempty"`
	Equipment   []string `json:"equipment,omitempty"`
}

// Request DTO for patient assignment.
type assignRequest struct {
	PatientID int `json:"patient_id" binding:"required"`
}

func (r roomRequest) toInput() service.RoomInput {
	return service.RoomInput{
		Number:      r.Number,
		Sector:      r.Sector,
		Floor:       r.Floor,
		HasBathroom: r.HasBathroom,
		Equipment:   r.Equipment,
	}
}

// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, rooms"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/rooms [get]
// @Security     BearerAuth
func (h *Handler) listRooms(c *gin.Context) {
	rooms, err := h.services.Rooms.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListRooms, "rooms_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count": len(rooms),
		"rooms": rooms,
	})
}

// @Summary      Get room
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/rooms/{id} [get]
// @Security     BearerAuth
func (h *Handler) getRoom(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	room, err := h.services.Rooms.GetByID(c.Request.Context(), id)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRoomNF})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetRoom, "rooms_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, room)
}

// @Summary      Create room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body      roomRequest  true  "Room payload"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/rooms [post]
// @Security     BearerAuth
func (h *Handler) createRoom(c *gin.Context) {
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id, err := h.services.Rooms.Create(c.Request.Context(), req.toInput())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("rooms_create_failed", "err", err, "number", req.Number)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Update room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id    path      int          true  "Room ID"
// @Param        body  body      roomRequest  true  "Room payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/rooms/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateRoom(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req roomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Rooms.Update(c.Request.Context(), id, req.toInput()); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRoomNF})
			return
		}
		if h.log != nil {
			h.log.Errorw("rooms_update_failed", "err", err, "id", id)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary      Assign patient to room
// @Description  Room must be active and vacant. A previous assignment of the patient is moved here.
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Room ID"
// @Param        body  body      assignRequest  true  "Assignment payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/rooms/{id}/assign [post]
// @Security     BearerAuth
func (h *Handler) assignRoom(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req assignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Rooms.Assign(c.Request.Context(), id, req.PatientID); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if h.log != nil {
			h.log.Errorw("rooms_assign_failed", "err", err, "room_id", id, "patient_id", req.PatientID)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "assigned"})
}

// @Summary      Release room
// @Description  Unassigns the current patient and stops any active alarm. No-op if already vacant.
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/rooms/{id}/release [post]
// @Security     BearerAuth
func (h *Handler) releaseRoom(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.services.Rooms.Release(c.Request.Context(), id); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRoomNF})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to release room", "rooms_release_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "released"})
}

// @Summary      Toggle room active flag
// @Description  Deactivating an occupied room releases its patient first.
// @Tags         rooms
// @Produce      json
// @Param        id   path      int  true  "Room ID"
// @Success      200  {object}  map[string]interface{}  "status, active"
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/rooms/{id}/toggle-active [post]
// @Security     BearerAuth
func (h *Handler) toggleRoomActive(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	active, err := h.services.Rooms.ToggleActive(c.Request.Context(), id)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errRoomNF})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, "failed to toggle room", "rooms_toggle_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "toggled", "active": active})
}
