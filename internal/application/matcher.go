package application

import "github.com/cbitosc/verify25/internal/domain/model"

// MatchRecord returns the first record whose code equals code exactly.
// Comparison is case-sensitive and unnormalized; duplicate codes are not
// detected. An empty code never matches.
func MatchRecord(records []model.VerificationRecord, code string) (model.VerificationRecord, bool) {
	if code == "" {
		return model.VerificationRecord{}, false
	}
	for _, r := range records {
		if r.Code == code {
			return r, true
		}
	}
	return model.VerificationRecord{}, false
}
