package handlers

import (
	"net/http"

	"patient_monitoring/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errListPatients  = "failed to load patients"
	errGetPatient    = "failed to load patient"
	errCreatePatient = "failed to create patient"
	errUpdatePatient = "failed to update patient"
	errDeletePatient = "failed to delete patient"
	errPatientNF     = "patient not found"

	errInvalidBodyPref = "invalid body: "
)

// Request DTO for patient create/update.
type patientRequest struct {
	Name         string  `json:"name" binding:"required"`
	CPF          string  `json:"cpf,omitempty"`
	BirthDate    string  `json:"birth_date,omitempty"` // YYYY-MM-DD
	Age          int     `json:"age,omitempty"`
	Diagnosis    string  `json:"diagnosis,omitempty"`
	MinHeartRate float64 `json:"min_heart_rate,omitempty"`
	MaxHeartRate float64 `json:"max_heart_rate,omitempty"`
}

// Request DTO for the heart-rate limits dialog. Both bounds are required.
type limitsRequest struct {
	MinHeartRate float64 `json:"min_heart_rate" binding:"required"`
	MaxHeartRate float64 `json:"max_heart_rate" binding:"required"`
}

func (r patientRequest) toInput() service.PatientInput {
	return service.PatientInput{
		Name:         r.Name,
		CPF:          r.CPF,
		BirthDate:    r.BirthDate,
		Age:          r.Age,
		Diagnosis:    r.Diagnosis,
		MinHeartRate: r.MinHeartRate,
		MaxHeartRate: r.MaxHeartRate,
	}
}

// @Summary      List patients
// @Tags         patients
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, patients"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/patients [get]
// @Security     BearerAuth
func (h *Handler) listPatients(c *gin.Context) {
	ctx := c.Request.Context()
	patients, err := h.services.Patients.List(ctx)
	if err != nil {
		h.logAndJSONError(c, http.StatusInternalServerError, errListPatients, "patients_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":    len(patients),
		"patients": patients,
	})
}

// @Summary      Get patient
// @Tags         patients
// @Produce      json
// @Param        id   path      int  true  "Patient ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/patients/{id} [get]
// @Security     BearerAuth
func (h *Handler) getPatient(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	p, err := h.services.Patients.GetByID(c.Request.Context(), id)
	if err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errPatientNF})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errGetPatient, "patients_get_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary      Register patient
// @Description  Heart-rate bounds are optional; when omitted the monitor applies defaults (55/120).
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        body  body      patientRequest  true  "Patient payload"
// @Success      200   {object}  map[string]int
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/patients [post]
// @Security     BearerAuth
func (h *Handler) createPatient(c *gin.Context) {
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	id, err := h.services.Patients.Create(c.Request.Context(), req.toInput())
	if err != nil {
		if h.log != nil {
			h.log.Errorw("patients_create_failed", "err", err, "name", req.Name)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id})
}

// @Summary      Update patient
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        id    path      int             true  "Patient ID"
// @Param        body  body      patientRequest  true  "Patient payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/patients/{id} [put]
// @Security     BearerAuth
func (h *Handler) updatePatient(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req patientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Patients.Update(c.Request.Context(), id, req.toInput()); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errPatientNF})
			return
		}
		if h.log != nil {
			h.log.Errorw("patients_update_failed", "err", err, "id", id)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "updated"})
}

// @Summary      Set heart-rate limits
// @Description  Both bounds are required and must satisfy 0 < min < max.
// @Tags         patients
// @Accept       json
// @Produce      json
// @Param        id    path      int            true  "Patient ID"
// @Param        body  body      limitsRequest  true  "Limits payload"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/v1/patients/{id}/limits [put]
// @Security     BearerAuth
func (h *Handler) updatePatientLimits(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	var req limitsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": errInvalidBodyPref + err.Error()})
		return
	}
	if err := h.services.Patients.UpdateLimits(c.Request.Context(), id, req.MinHeartRate, req.MaxHeartRate); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errPatientNF})
			return
		}
		if h.log != nil {
			h.log.Errorw("patients_limits_failed", "err", err, "id", id)
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "limits_updated"})
}

// @Summary      Delete patient
// @Description  Unassigns the patient's room (if any) and stops its alarm.
// @Tags         patients
// @Produce      json
// @Param        id   path      int  true  "Patient ID"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/v1/patients/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deletePatient(c *gin.Context) {
	id, ok := h.parseIDParam(c)
	if !ok {
		return
	}
	if err := h.services.Patients.Delete(c.Request.Context(), id); err != nil {
		if notFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": errPatientNF})
			return
		}
		h.logAndJSONError(c, http.StatusInternalServerError, errDeletePatient, "patients_delete_failed", err, "id", id)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}
