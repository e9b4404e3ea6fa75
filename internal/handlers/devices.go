package handlers

import (
	"net/http"

	"patient_monitoring/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListDevices  = "failed to load devices"
	errDeleteDevice = "failed to delete device"
	errDeviceNF     = "device not found"
)

// Request DTO for device create/update.
type deviceRequest struct {
	MacAddress string `json:"mac_address" binding:"required"`
	Name       string `json:"name,omitempty"`
	RoomID     *int   `json:"room_id,omitempty"`
}

func (r deviceRequest) toInput() service.DeviceInput {
	return service.DeviceInput{
		MacAddress: r.MacAddress,
		Name:       r.Name,
		RoomID:     r.RoomID,
	}
}

// @Summary      List devices
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, devices"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/devices [get]
// @Security     BearerAuth
func (h *Handler) listDevices(c *gin.Context) {
	devices, err := h.services.Devices.List(c.Request.Context())
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListDevices, "devices_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(devices),
		"devices": devices,
	})
}

// @Summary      Register device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body      deviceRequest  true  "Device payload"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /api/v1/devices [post]
// @Security     BearerAuth
func (h *Handler) createDevice(c *gin.Context) {
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id, err := h.services.Devices.Create(c.Request.Context(), req.toInput())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("devices_create_failed", "err", err, "mac", req.MacAddress)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Update device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Device ID"
// @Param        body  body      deviceRequest  true  "Device payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/devices/{id} [put]
// @Security     BearerAuth
func (h *Handler) updateDevice(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req deviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Devices.Update(c.Request.Context(), id, req.toInput()); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errDeviceNF})
			return
		}
		if h.log != nil {
			h.log.Errorw("devices_update_failed", "err", err, "id", id)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary      Delete device
// @Tags         devices
// @Produce      json
// @Param        id   path      int  true  "Device ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/devices/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteDevice(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.services.Devices.Delete(c.Request.Context(), id); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errDeviceNF})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeleteDevice, "devices_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
