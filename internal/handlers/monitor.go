package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// @Summary      Live room grid snapshot
// @Description  Current display-ready status for every tracked room, ordered by room id.
// @Tags         monitor
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, rooms"
// @Failure      401  {object}  map[string]string
// @Router       /api/v1/monitor/rooms [get]
// @Security     BearerAuth
func (h *Handler) monitorRooms(c *gin.Context) {
	rooms := h.services.Monitoring.Rooms()
	c.JSON(http.StatusOK, gin.H{
		"count": len(rooms),
		"rooms": rooms,
	})
}

// @Summary      Live status for one room
// @Tags         monitor
// @Produce      json
// @Param        id   path      int  true  "Room ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/monitor/rooms/{id} [get]
// @Security     BearerAuth
func (h *Handler) monitorRoom(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	status, tracked := h.services.Monitoring.Room(id)
	if !tracked {
		c.JSON(http.StatusNotFound, gin.H{"error": "room not tracked"})
		return
	}
	c.JSON(http.StatusOK, status)
}
