package api

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/agrisure-console/internal/models"
)

// The legacy backend is not consistent about payload shape: some list
// endpoints wrap records in {data: [...]}, some in an entity-named key
// ({insurers: [...]}, {serviceProviders: [...]}), some return a bare array.
// pickList resolves the first populated candidate so callers never branch on
// shape themselves.
func pickList(body []byte, keys ...string) (json.RawMessage, *models.Pagination) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		return trimmed, nil
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, nil
	}

	pagination := extractPagination(doc)

	for _, key := range keys {
		raw, ok := doc[key]
		if !ok {
			continue
		}
		inner := bytes.TrimSpace(raw)
		if len(inner) == 0 || bytes.Equal(inner, []byte("null")) {
			continue
		}
		// data may itself wrap the entity-named key one level down.
		if inner[0] == '{' {
			if nested, nestedPg := pickList(inner, keys...); nested != nil {
				if nestedPg != nil {
					pagination = nestedPg
				}
				return nested, pagination
			}
			continue
		}
		return inner, pagination
	}

	return nil, pagination
}

func extractPagination(doc map[string]json.RawMessage) *models.Pagination {
	if raw, ok := doc["pagination"]; ok {
		var pg models.Pagination
		if err := json.Unmarshal(raw, &pg); err == nil && (pg.Page > 0 || pg.TotalCount > 0 || pg.TotalPages > 0) {
			return &pg
		}
	}

	// Older endpoints report page/totalPages at the top level.
	var flat struct {
		Page       int `json:"page"`
		Limit      int `json:"limit"`
		TotalPages int `json:"totalPages"`
		Total      int `json:"total"`
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil
	}
	if err := json.Unmarshal(payload, &flat); err != nil {
		return nil
	}
	if flat.Page == 0 && flat.TotalPages == 0 && flat.Total == 0 {
		return nil
	}
	return &models.Pagination{
		Page:       flat.Page,
		PageSize:   flat.Limit,
		TotalCount: flat.Total,
		TotalPages: flat.TotalPages,
	}
}

// canonicalID collapses the id/_id duality to one identifier. UUID-formatted
// values are normalised to their canonical text form; anything else passes
// through untouched.
func canonicalID(candidates ...string) string {
	for _, c := range candidates {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if u, err := uuid.Parse(c); err == nil {
			return u.String()
		}
		return c
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// parseTime tolerates the two timestamp formats the backend emits. Unparsable
// values degrade to the zero time, which renders as blank.
func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

func parseStatus(raw string) models.Status {
	return models.Status(strings.ToLower(strings.TrimSpace(raw)))
}
