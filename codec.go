package sieve

import (
	"encoding/json"
	"errors"
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"
)

// EventToStruct converts e to a protobuf Struct with the same field
// normalization as EventToJSON: portable forms for severity, timestamp,
// and failure; no trace or caller.
func EventToStruct(e Event) (*structpb.Struct, error) {
	data, err := EventToJSON(e)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to decode event: %w", err)
	}
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, fmt.Errorf("failed to build struct: %w", err)
	}
	return s, nil
}

// EventFromStruct converts a protobuf Struct back to an event, reviving
// typed severity and timestamp values.
func EventFromStruct(s *structpb.Struct) (Event, error) {
	if s == nil {
		return nil, errors.New("nil struct")
	}
	return reviveEvent(s.AsMap()), nil
}
