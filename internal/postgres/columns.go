package postgres

import (
	"fmt"

	"github.com/hvillega/padron/store"
)

// tableColumns whitelists the collections and their fields, matching the
// DDL in migrate. Filter, sort and mutation fields are checked against it
// before any SQL is built.
var tableColumns = map[string]map[string]bool{
	"accounts":      columnSet("id", "name", "description", "opening_balance", "created_at"),
	"members":       columnSet("id", "document_number", "first_name", "last_name", "address", "district", "province", "department", "birth_date", "phone", "economic_status", "created_at"),
	"income_events": columnSet("id", "member_document", "amount", "kind", "description", "date", "account_id", "created_at"),
	"expenses":      columnSet("id", "description", "category", "amount", "date", "account_id", "created_at"),
	"collaborators": columnSet("id", "first_name", "last_name", "document_number", "role", "phone", "created_at"),
}

func columnSet(names ...string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

func columnsFor(collection string) (map[string]bool, error) {
	cols, ok := tableColumns[collection]
	if !ok {
		return nil, fmt.Errorf("%w: unknown collection %q", store.ErrInvalid, collection)
	}
	return cols, nil
}

func checkMutableFields(cols map[string]bool, fields store.Row) error {
	for k := range fields {
		if k == "id" || k == "created_at" {
			return fmt.Errorf("%w: field %q is server-assigned", store.ErrInvalid, k)
		}
		if !cols[k] {
			return fmt.Errorf("%w: unknown field %q", store.ErrInvalid, k)
		}
	}
	return nil
}
