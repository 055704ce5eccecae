package chi

import (
	"encoding/json"
	"fmt"

	"github.com/careatlas/orgconnect/internal/domain"
)

// Error codes returned in the JSON error body.
const (
	codeBadRequest              = "bad_request"
	codeValidationFailed        = "validation_failed"
	codeOrganizationNotFound    = "organization_not_found"
	codeDocumentEmpty           = "document_empty"
	codeSourceUnavailable       = "source_unavailable"
	codeCompletionProviderError = "completion_provider_error"
	codeInternalError           = "internal_error"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NearbyRequest is the body of POST /api/v1/organizations/nearby.
// Radius is optional; the service default applies when absent.
type NearbyRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Radius    *float64 `json:"radius"`
}

func (req *NearbyRequest) validate() error {
	if req.Latitude == nil || req.Longitude == nil {
		return fmt.Errorf("latitude and longitude are required")
	}
	if *req.Latitude < -90 || *req.Latitude > 90 {
		return fmt.Errorf("latitude must be between -90 and 90")
	}
	if *req.Longitude < -180 || *req.Longitude > 180 {
		return fmt.Errorf("longitude must be between -180 and 180")
	}
	if req.Radius != nil && *req.Radius < 0 {
		return fmt.Errorf("radius must not be negative")
	}
	return nil
}

// ChatResponse is the body of POST /api/v1/chat-with-pdf.
type ChatResponse struct {
	Answer string `json:"answer"`
	Status string `json:"status"`
}

// ListResponse is the body of GET /api/v1/organizations.
type ListResponse struct {
	Items []map[string]any `json:"items"`
	Total int              `json:"total"`
}

// organizationFromBody decodes an organization document. Reserved fields go
// into the typed struct, everything else is opaque passthrough.
func organizationFromBody(id string, body []byte) (domain.Organization, error) {
	var reserved struct {
		Name     string           `json:"name"`
		Location *domain.Location `json:"location"`
	}
	if err := json.Unmarshal(body, &reserved); err != nil {
		return domain.Organization{}, fmt.Errorf("invalid organization body: %w", err)
	}

	var all map[string]any
	if err := json.Unmarshal(body, &all); err != nil {
		return domain.Organization{}, fmt.Errorf("invalid organization body: %w", err)
	}
	delete(all, "id")
	delete(all, "name")
	delete(all, "location")

	return domain.Organization{
		ID:       id,
		Name:     reserved.Name,
		Location: reserved.Location,
		Extra:    all,
	}, nil
}

// organizationToJSON renders an organization with its passthrough fields.
func organizationToJSON(org *domain.Organization) map[string]any {
	m := make(map[string]any, len(org.Extra)+3)
	for k, v := range org.Extra {
		m[k] = v
	}
	m["id"] = org.ID
	m["name"] = org.DisplayName()
	if org.Location != nil {
		m["location"] = org.Location
	}
	return m
}

func rankedToJSON(r *domain.RankedOrganization) map[string]any {
	m := organizationToJSON(&r.Organization)
	m["distance"] = r.DistanceKm
	return m
}
