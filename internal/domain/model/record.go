package model

// Position is the podium tier a certificate was awarded for. Only events
// with the positions layout carry it.
type Position string

const (
	PositionFirst  Position = "first"
	PositionSecond Position = "second"
	PositionThird  Position = "third"
)

// VerificationRecord is one entry of an event dataset (data.json).
type VerificationRecord struct {
	Code     string   `json:"code"`
	Holder   string   `json:"holder"`
	Position Position `json:"position,omitempty"`
}
