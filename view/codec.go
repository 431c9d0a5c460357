package view

import (
	"encoding/json"

	"github.com/hvillega/padron/store"
)

// Records and store rows are converted through their JSON forms: the store
// speaks column-to-scalar maps, the typed record structs carry matching
// json tags.

func encodeFields(rec any) (store.Row, error) {
	data, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	var fields store.Row
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

func decodeRow[T any](row store.Row) (T, error) {
	var rec T
	data, err := json.Marshal(row)
	if err != nil {
		return rec, err
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, err
	}
	return rec, nil
}

func decodeRows[T any](rows []store.Row) ([]T, error) {
	recs := make([]T, 0, len(rows))
	for _, row := range rows {
		rec, err := decodeRow[T](row)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}
