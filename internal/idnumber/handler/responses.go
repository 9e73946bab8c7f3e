package handler

import (
	"idcheck/internal/idnumber"
	"idcheck/internal/idnumber/failure"
	"idcheck/internal/idnumber/service"
)

// OutcomeResponse is the verdict for one identifier.
type OutcomeResponse struct {
	Type    string           `json:"type"`
	Valid   bool             `json:"valid"`
	Empty   bool             `json:"empty,omitempty"`
	Value   string           `json:"value,omitempty"`
	Display string           `json:"display,omitempty"`
	Error   *FailureResponse `json:"error,omitempty"`
}

// FailureResponse describes why an identifier was rejected.
type FailureResponse struct {
	Class  string            `json:"class"`
	Kind   string            `json:"kind"`
	Params map[string]string `json:"params,omitempty"`
}

// BatchResponse is the HTTP response for POST /v1/identifiers/validate-batch.
type BatchResponse struct {
	Results []OutcomeResponse `json:"results"`
}

// TypeResponse describes one supported identifier type.
type TypeResponse struct {
	Type        string `json:"type"`
	Country     string `json:"country"`
	Name        string `json:"name"`
	MinLength   int    `json:"min_length"`
	MaxLength   int    `json:"max_length"`
	CheckDigits int    `json:"check_digits"`
	Algorithm   string `json:"algorithm,omitempty"`
}

// TypesResponse is the HTTP response for GET /v1/identifiers.
type TypesResponse struct {
	Types []TypeResponse `json:"types"`
}

// FromOutcome converts a service outcome to its HTTP shape.
func FromOutcome(o service.Outcome) OutcomeResponse {
	resp := OutcomeResponse{Type: o.Type.String()}
	if o.Failure != nil {
		resp.Error = &FailureResponse{
			Class:  failure.ClassName(o.Failure.Class),
			Kind:   string(o.Failure.Kind),
			Params: o.Failure.Params,
		}
		return resp
	}
	resp.Valid = true
	resp.Empty = o.Result.Empty
	resp.Value = o.Result.Value
	resp.Display = o.Result.Display
	return resp
}

// FromOutcomes converts batch outcomes, preserving order.
func FromOutcomes(outcomes []service.Outcome) *BatchResponse {
	results := make([]OutcomeResponse, len(outcomes))
	for i, o := range outcomes {
		results[i] = FromOutcome(o)
	}
	return &BatchResponse{Results: results}
}

// FromDefinitions converts registry definitions to the type listing.
func FromDefinitions(defs []idnumber.Definition) *TypesResponse {
	types := make([]TypeResponse, 0, len(defs))
	for _, d := range defs {
		sh := d.Shape()
		tr := TypeResponse{
			Type:        d.Type().String(),
			Country:     d.Country(),
			Name:        d.Name(),
			MinLength:   sh.MinLength(),
			MaxLength:   sh.MaxLength(),
			CheckDigits: sh.CheckDigits(),
		}
		if alg, ok := d.Algorithm(); ok {
			tr.Algorithm = alg.Name()
		}
		types = append(types, tr)
	}
	return &TypesResponse{Types: types}
}
