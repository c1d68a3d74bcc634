package schema

import (
	"encoding/json"
	"fmt"
)

// Wire shape shared with non-Go callers. Field names are part of the
// contract; unknown extra fields are ignored on decode.

type wireSchema struct {
	DatabaseInfo wireDatabaseInfo `json:"database_info"`
	Tables       []wireTable      `json:"tables"`
}

type wireDatabaseInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type wireTable struct {
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	RowCount *int64      `json:"row_count"`
	Fields   []wireField `json:"fields"`
}

type wireField struct {
	Name       string  `json:"name"`
	Type       string  `json:"type"`
	Nullable   bool    `json:"nullable"`
	PrimaryKey bool    `json:"primary_key,omitempty"`
	Default    *string `json:"default"`
}

// ParseUnified decodes the wire-shape JSON into a UnifiedSchema. A missing
// or empty tables list is ErrEmptySchema.
func ParseUnified(data []byte) (*UnifiedSchema, error) {
	var w wireSchema
	if err := json.Unmarshal(data, &w); err != nil {
		return nil, fmt.Errorf("failed to decode schema document: %w", err)
	}
	if len(w.Tables) == 0 {
		return nil, ErrEmptySchema
	}

	family, ok := ParseFamily(w.DatabaseInfo.Type)
	if !ok {
		return nil, fmt.Errorf("unknown database family %q", w.DatabaseInfo.Type)
	}

	us := &UnifiedSchema{
		DatabaseName: w.DatabaseInfo.Name,
		Family:       family,
		Tables:       make([]Table, 0, len(w.Tables)),
	}
	for _, wt := range w.Tables {
		t := Table{
			Name:     wt.Name,
			Kind:     tableKind(wt.Type),
			RowCount: wt.RowCount,
			Columns:  make([]Column, 0, len(wt.Fields)),
		}
		for _, f := range wt.Fields {
			t.Columns = append(t.Columns, Column{
				Name:       f.Name,
				RawType:    f.Type,
				Nullable:   f.Nullable,
				PrimaryKey: f.PrimaryKey,
			})
		}
		us.Tables = append(us.Tables, t)
	}
	return us, nil
}

// MarshalWire emits the same JSON shape ParseUnified reads.
func (s *UnifiedSchema) MarshalWire() ([]byte, error) {
	w := wireSchema{
		DatabaseInfo: wireDatabaseInfo{Name: s.DatabaseName, Type: string(s.Family)},
		Tables:       make([]wireTable, 0, len(s.Tables)),
	}
	for _, t := range s.Tables {
		wt := wireTable{
			Name:     t.Name,
			Type:     string(t.Kind),
			RowCount: t.RowCount,
			Fields:   make([]wireField, 0, len(t.Columns)),
		}
		for _, c := range t.Columns {
			wt.Fields = append(wt.Fields, wireField{
				Name:       c.Name,
				Type:       c.RawType,
				Nullable:   c.Nullable,
				PrimaryKey: c.PrimaryKey,
			})
		}
		w.Tables = append(w.Tables, wt)
	}
	return json.MarshalIndent(w, "", "  ")
}
