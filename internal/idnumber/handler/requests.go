package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"idcheck/internal/idnumber/service"
	dErrors "idcheck/pkg/domain-errors"
)

var requestValidator = validator.New(validator.WithRequiredStructEnabled())

// ValidateRequest is the HTTP request body for POST /v1/identifiers/{type}/validate.
type ValidateRequest struct {
	Value    string `json:"value" validate:"max=64"`
	Strict   *bool  `json:"strict,omitempty"`
	Required bool   `json:"required"`
}

// Validate implements httputil.Validatable.
func (r *ValidateRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return structError(requestValidator.Struct(r))
}

// ToService builds the service request for the routed type.
func (r *ValidateRequest) ToService(typ string) service.Request {
	return service.Request{
		Type:     typ,
		Value:    r.Value,
		Strict:   r.Strict,
		Required: r.Required,
	}
}

// BatchRequest is the HTTP request body for POST /v1/identifiers/validate-batch.
type BatchRequest struct {
	Items []BatchItem `json:"items" validate:"required,min=1,dive"`
}

// BatchItem is one entry of a batch request.
type BatchItem struct {
	Type     string `json:"type" validate:"required,max=32"`
	Value    string `json:"value" validate:"max=64"`
	Strict   *bool  `json:"strict,omitempty"`
	Required bool   `json:"required"`
}

// Normalize implements httputil.Normalizable.
func (r *BatchRequest) Normalize() {
	for i := range r.Items {
		r.Items[i].Type = strings.ToLower(strings.TrimSpace(r.Items[i].Type))
	}
}

// Validate implements httputil.Validatable.
func (r *BatchRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	return structError(requestValidator.Struct(r))
}

// ToService converts items to service requests, preserving order.
func (r *BatchRequest) ToService() []service.Request {
	reqs := make([]service.Request, len(r.Items))
	for i, item := range r.Items {
		reqs[i] = service.Request{
			Type:     item.Type,
			Value:    item.Value,
			Strict:   item.Strict,
			Required: item.Required,
		}
	}
	return reqs
}

// structError maps the first validator field error to a CodeValidation error
// naming the field in JSON terms.
func structError(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid request body")
	}
	fe := verrs[0]
	field := jsonPath(fe.Namespace())
	switch fe.Tag() {
	case "required":
		return dErrors.New(dErrors.CodeValidation, field+" is required")
	case "min":
		return dErrors.New(dErrors.CodeValidation, field+" must not be empty")
	case "max":
		return dErrors.New(dErrors.CodeValidation, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
	default:
		return dErrors.New(dErrors.CodeValidation, field+" is invalid")
	}
}

// jsonPath turns "BatchRequest.Items[2].Type" into "items[2].type".
func jsonPath(ns string) string {
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}
	return strings.ToLower(ns)
}
