// Package entities binds the faculty and program types to the generic
// list/filter/edit page and registers them with the app shell.
package entities

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/JonMunkholm/universidad/internal/core"
	"github.com/mitchellh/mapstructure"
)

// checkboxTrue lists the values a browser or client may send for a ticked box.
var checkboxTrue = map[string]bool{"true": true, "on": true, "si": true, "sí": true, "1": true}

// flagValue normalizes a checkbox value to "true" or "false".
func flagValue(raw string) string {
	return strconv.FormatBool(checkboxTrue[strings.ToLower(strings.TrimSpace(raw))])
}

// formatFlag renders an optional flag as a form value. An absent flag
// renders as unticked.
func formatFlag(b *bool) string {
	return strconv.FormatBool(b != nil && *b)
}

// decodeRequest weakly decodes validated form values into a request DTO.
// Text inputs are trimmed and flag inputs normalized first.
func decodeRequest[R any](values core.Values, flags ...string) (R, error) {
	input := make(map[string]any, len(values))
	for k, v := range values {
		input[k] = strings.TrimSpace(v)
	}
	for _, f := range flags {
		input[f] = flagValue(values.Get(f))
	}

	var req R
	if err := mapstructure.WeakDecode(input, &req); err != nil {
		return req, fmt.Errorf("decode form: %w", err)
	}
	return req, nil
}

// statusFlags splits an optional flag into explicit active/inactive.
func statusFlags(b *bool) (active, inactive bool) {
	if b == nil {
		return false, false
	}
	return *b, !*b
}
