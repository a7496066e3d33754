package repository

import (
	"encoding/json"
	"fmt"

	"profile-backend/internal/domains/profile/model"
)

// jsonColumns holds the encoded form of the profile fields that are stored as
// JSON documents in both engines.
type jsonColumns struct {
	Skills   []byte
	Projects []byte
	Work     []byte
	Links    []byte
}

func encodeColumns(p *model.Profile) (jsonColumns, error) {
	p.Normalize()

	var (
		cols jsonColumns
		err  error
	)
	if cols.Skills, err = json.Marshal(p.Skills); err != nil {
		return cols, fmt.Errorf("encode skills: %w", err)
	}
	if cols.Projects, err = json.Marshal(p.Projects); err != nil {
		return cols, fmt.Errorf("encode projects: %w", err)
	}
	if cols.Work, err = json.Marshal(p.Work); err != nil {
		return cols, fmt.Errorf("encode work: %w", err)
	}
	if cols.Links, err = json.Marshal(p.Links); err != nil {
		return cols, fmt.Errorf("encode links: %w", err)
	}
	return cols, nil
}

// decodeInto fills p from the stored JSON documents. Empty or null documents
// leave the field at its zero value; Normalize then turns nil slices empty.
func (cols jsonColumns) decodeInto(p *model.Profile) error {
	fields := []struct {
		name string
		data []byte
		dest interface{}
	}{
		{"skills", cols.Skills, &p.Skills},
		{"projects", cols.Projects, &p.Projects},
		{"work", cols.Work, &p.Work},
		{"links", cols.Links, &p.Links},
	}
	for _, f := range fields {
		if len(f.data) == 0 {
			continue
		}
		if err := json.Unmarshal(f.data, f.dest); err != nil {
			return fmt.Errorf("decode %s: %w", f.name, err)
		}
	}
	p.Normalize()
	return nil
}
