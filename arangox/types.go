package arangox

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// LoggedQuery is a statement captured while the connection was pretending.
type LoggedQuery struct {
	Query    string         `json:"query"`
	Bindings map[string]any `json:"bindings"`
}

// IndexOptions are the residual index options understood by the driver.
// Options not listed here are ignored.
type IndexOptions struct {
	Name          string `json:"name,omitempty"`
	Sparse        bool   `json:"sparse,omitempty"`
	NoDeduplicate bool   `json:"noDeduplicate,omitempty"`
	InBackground  bool   `json:"inBackground,omitempty"`
	GeoJSON       bool   `json:"geoJson,omitempty"`
	MinLength     int    `json:"minLength,omitempty"`
	ExpireAfter   int    `json:"expireAfter,omitempty"`
}

func decodeIndexOptions(options map[string]any) (IndexOptions, error) {
	var out IndexOptions
	if len(options) == 0 {
		return out, nil
	}

	raw, err := json.Marshal(options)
	if err != nil {
		return out, errors.WithStack(err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, errors.WithStack(err)
	}

	return out, nil
}
