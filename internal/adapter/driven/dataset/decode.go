// Package dataset implements the DatasetLoader and EventCatalog ports over
// static files, served either from a local directory or over HTTP.
package dataset

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/cbitosc/verify25/internal/domain/model"
)

// DataFileName is the conventional dataset resource inside an event directory.
const DataFileName = "data.json"

// DecodeRecords parses a JSON array of verification records.
// Anything else, including trailing data after the array, is a *model.ParseError.
func DecodeRecords(event, source string, r io.Reader) ([]model.VerificationRecord, error) {
	dec := json.NewDecoder(r)

	var records []model.VerificationRecord
	if err := dec.Decode(&records); err != nil {
		return nil, &model.ParseError{Event: event, Source: source, Err: err}
	}
	if records == nil {
		return nil, &model.ParseError{Event: event, Source: source, Err: errors.New("dataset is not an array")}
	}

	var extra json.RawMessage
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, &model.ParseError{Event: event, Source: source, Err: fmt.Errorf("unexpected data after records")}
	}

	return records, nil
}
