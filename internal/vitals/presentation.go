package vitals

import "patient_monitoring/internal/models"

// Display affordances per tier, matching the product's original labels.
var tierLabels = map[models.Tier]string{
	models.TierEmpty:        "Vazio",
	models.TierNormal:       "Normal",
	models.TierWarning:      "Atenção",
	models.TierUrgent:       "Urgência",
	models.TierDisconnected: "Sensor desconectado",
	models.TierNoSignal:     ReasonNoSignal,
}

var tierColors = map[models.Tier]string{
	models.TierEmpty:        "gray",
	models.TierNormal:       "green",
	models.TierWarning:      "yellow",
	models.TierUrgent:       "red",
	models.TierDisconnected: "slate",
	models.TierNoSignal:     "red",
}

// Display maps a classification record to its display-ready room status.
// For connectivity tiers the record's reason is more specific than the
// generic label ("Perda de Conexão" vs "Sensor desconectado") and wins.
func Display(rec models.ClassificationRecord, alarmActive bool) models.RoomStatus {
	label := tierLabels[rec.Tier]
	if rec.Reason != "" && (rec.Tier == models.TierDisconnected || rec.Tier == models.TierNoSignal) {
		label = rec.Reason
	}
	return models.RoomStatus{
		RoomID:      rec.RoomID,
		Tier:        rec.Tier,
		DisplayBPM:  rec.HeartRate,
		Label:       label,
		Color:       tierColors[rec.Tier],
		AlarmActive: alarmActive,
	}
}
