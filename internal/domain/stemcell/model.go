// Package stemcell implements the guarded stem-cell-to-patient assignment:
// a stem cell moves Available → Reserved only when it exists, is Available,
// and has not expired, and the winning assignment appends a Treatment row in
// the same transaction. Concurrent attempts on the same cell are serialized
// by a row lock so exactly one caller wins.
package stemcell

import "time"

// Stem cell status values.
const (
	StatusAvailable = "Available"
	StatusReserved  = "Reserved"
	StatusExpired   = "Expired"
)

// Assignment is the outcome of a successful assignment.
type Assignment struct {
	StemCellID    int64     `json:"stemCellId"`
	PatientID     int64     `json:"patientId"`
	TreatmentID   int64     `json:"treatmentId"`
	TreatmentDate time.Time `json:"treatmentDate"`
}
