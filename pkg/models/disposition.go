package models

import (
	"fmt"
	"time"
)

// Disposition is the human-entered outcome of a single contact attempt.
type Disposition string

const (
	DispositionNoAnswer      Disposition = "NO_ANSWER"
	DispositionNotInterested Disposition = "NOT_INTERESTED"
	DispositionCallback      Disposition = "CALLBACK"
	DispositionSet           Disposition = "SET"
	DispositionSat           Disposition = "SAT"
	DispositionSale          Disposition = "SALE"
	DispositionDead          Disposition = "DEAD"
)

var Dispositions = []Disposition{
	DispositionNoAnswer,
	DispositionNotInterested,
	DispositionCallback,
	DispositionSet,
	DispositionSat,
	DispositionSale,
	DispositionDead,
}

func ParseDisposition(value string) (Disposition, error) {
	for _, d := range Dispositions {
		if string(d) == value {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown disposition %q", value)
}

// NextStatus maps a disposition outcome to the lead's next status. The
// mapping is total and independent of the lead's prior status.
func (d Disposition) NextStatus() LeadStatus {
	switch d {
	case DispositionNoAnswer:
		return LeadStatusContacted
	case DispositionNotInterested:
		return LeadStatusDead
	case DispositionCallback:
		return LeadStatusContacted
	case DispositionSet:
		return LeadStatusSet
	case DispositionSat:
		return LeadStatusSat
	case DispositionSale:
		return LeadStatusClosed
	case DispositionDead:
		return LeadStatusDead
	}
	// unreachable for parsed dispositions
	return LeadStatusContacted
}

// DispositionRequest is the payload for recording a contact outcome. The
// callback and appointment timestamps are only meaningful for CALLBACK and
// SET respectively; when omitted, no follow-up is scheduled.
type DispositionRequest struct {
	Disposition     string     `json:"disposition" validate:"required"`
	Notes           *string    `json:"notes,omitempty"`
	CallbackDate    *time.Time `json:"callbackDate,omitempty"`
	AppointmentDate *time.Time `json:"appointmentDate,omitempty"`
}
