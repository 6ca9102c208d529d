package submission

import (
	"sort"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/elements"
	"github.com/goliatone/go-formbuilder/pkg/model"
)

// Record is one stored submission.
type Record struct {
	Values      Values
	SubmittedAt time.Time
}

// Column is one input element of the form.
type Column struct {
	ID    string            `json:"id"`
	Label string            `json:"label"`
	Type  model.ElementType `json:"type"`
}

// Row is one submission laid out against the table columns.
type Row struct {
	Values      Values    `json:"values"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// Table is the submissions view of a form.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// BuildTable derives one column per input element in layout order and one row
// per record, newest first.
func BuildTable(l model.Layout, registry *elements.Registry, records []Record) Table {
	if registry == nil {
		registry = elements.Default()
	}

	table := Table{Columns: []Column{}, Rows: make([]Row, 0, len(records))}
	for _, element := range l {
		if !registry.IsInput(element.Type) {
			continue
		}
		resolved, err := registry.Resolve(element)
		if err != nil {
			continue
		}
		table.Columns = append(table.Columns, Column{
			ID:    element.ID,
			Label: resolved.Attributes.String(model.AttrLabel),
			Type:  element.Type,
		})
	}

	for _, record := range records {
		values := make(Values, len(table.Columns))
		for _, col := range table.Columns {
			values[col.ID] = record.Values[col.ID]
		}
		table.Rows = append(table.Rows, Row{Values: values, SubmittedAt: record.SubmittedAt})
	}

	sort.SliceStable(table.Rows, func(i, j int) bool {
		return table.Rows[i].SubmittedAt.After(table.Rows[j].SubmittedAt)
	})
	return table
}
