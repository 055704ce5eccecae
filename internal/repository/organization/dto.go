package organization

import (
	"encoding/json"
	"fmt"

	"github.com/careatlas/orgconnect/internal/domain"
)

// Reserved top-level fields interpreted by this service. Everything else is
// opaque passthrough data.
const (
	fieldID       = "id"
	fieldName     = "name"
	fieldLocation = "location"
)

// buildJSONDoc flattens a domain Organization into the stored document shape.
func buildJSONDoc(org *domain.Organization) map[string]any {
	m := make(map[string]any, len(org.Extra)+3)
	for k, v := range org.Extra {
		m[k] = v
	}
	m[fieldID] = org.ID
	if org.Name != "" {
		m[fieldName] = org.Name
	}
	if org.Location != nil {
		loc := map[string]any{}
		if org.Location.Latitude != nil {
			loc["latitude"] = *org.Location.Latitude
		}
		if org.Location.Longitude != nil {
			loc["longitude"] = *org.Location.Longitude
		}
		if org.Location.Address != "" {
			loc["address"] = org.Location.Address
		}
		m[fieldLocation] = loc
	}
	return m
}

// parseJSONGetResult unwraps a JSON.GET "$" result (a one-element array) into
// a domain Organization keyed by docID.
func parseJSONGetResult(docID string, raw []byte) (domain.Organization, error) {
	var docs []map[string]any
	if err := json.Unmarshal(raw, &docs); err != nil {
		// Not path-wrapped: some writers store the bare object.
		var m map[string]any
		if err2 := json.Unmarshal(raw, &m); err2 != nil {
			return domain.Organization{}, fmt.Errorf("unmarshal organization %s: %w", docID, err)
		}
		return parseDocMap(docID, m), nil
	}
	if len(docs) == 0 {
		return domain.Organization{}, domain.ErrOrganizationNotFound
	}
	return parseDocMap(docID, docs[0]), nil
}

// parseDocMap maps a stored document onto the domain Organization. The
// document key is the fallback identifier when the document carries no
// explicit id field. Malformed name or location values degrade to "absent",
// never to an error.
func parseDocMap(docID string, m map[string]any) domain.Organization {
	org := domain.Organization{
		ID:    docID,
		Extra: make(map[string]any),
	}

	for k, v := range m {
		switch k {
		case fieldID:
			if s, ok := v.(string); ok && s != "" {
				org.ID = s
			}
		case fieldName:
			if s, ok := v.(string); ok {
				org.Name = s
			}
		case fieldLocation:
			org.Location = parseLocation(v)
		default:
			org.Extra[k] = v
		}
	}
	return org
}

func parseLocation(v any) *domain.Location {
	m, ok := v.(map[string]any)
	if !ok {
		return nil
	}
	loc := &domain.Location{}
	if lat, ok := m["latitude"].(float64); ok {
		loc.Latitude = &lat
	}
	if lon, ok := m["longitude"].(float64); ok {
		loc.Longitude = &lon
	}
	if addr, ok := m["address"].(string); ok {
		loc.Address = addr
	}
	return loc
}
