package postgres

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func optionalString(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// detailsJSON sorts map keys so equal details encode to equal JSONB text.
var detailsJSON = jsoniter.ConfigCompatibleWithStandardLibrary

// encodeDetails stores string maps as JSONB; nil maps become an empty object.
func encodeDetails(details map[string]string) ([]byte, error) {
	if len(details) == 0 {
		return []byte("{}"), nil
	}
	raw, err := detailsJSON.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("encode details: %w", err)
	}
	return raw, nil
}

func decodeDetails(raw []byte) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out map[string]string
	if err := detailsJSON.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode details: %w", err)
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out, nil
}
