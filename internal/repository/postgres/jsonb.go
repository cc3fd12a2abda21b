package postgres

import "encoding/json"

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// marshalJSONB encodes a value for a JSONB column, normalizing nil slices to
// empty arrays so rows never carry SQL NULLs for collection fields.
func marshalJSONB(v any) ([]byte, error) {
	if v == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(v)
}

// marshalObjectJSONB is marshalJSONB for object-shaped columns, defaulting
// to an empty object instead of an array.
func marshalObjectJSONB(v any) ([]byte, error) {
	if v == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(v)
}

// unmarshalJSONB decodes a JSONB column into dst, tolerating empty input.
func unmarshalJSONB(raw []byte, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, dst)
}
