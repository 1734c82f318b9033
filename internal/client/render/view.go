package render

import (
	"fmt"

	"github.com/dmitrijs2005/vsrclient/internal/client/models"
)

// Layout picks between the table and card presentations.
type Layout int

const (
	LayoutWide Layout = iota
	LayoutNarrow
)

func (l Layout) String() string {
	if l == LayoutNarrow {
		return "narrow"
	}
	return "wide"
}

// Verb is an action offered next to a record.
type Verb string

const (
	VerbEdit   Verb = "edit"
	VerbDelete Verb = "delete"
)

// Action is an edit or delete affordance bound to one record.
type Action struct {
	Kind models.Resource
	Verb Verb
	ID   string
}

// Command is the CLI invocation that performs the action, e.g. "post edit 3".
func (a Action) Command() string {
	return fmt.Sprintf("%s %s %s", a.Kind, a.Verb, a.ID)
}

// Field is one formatted name/value pair.
type Field struct {
	Name  string
	Value string
}

// Row is the display form of one record.
type Row struct {
	Kind    models.Resource
	ID      string
	Fields  []Field
	Actions []Action
}

// Value returns the formatted value of the named field.
func (r Row) Value(name string) (string, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

// View is the result of Build. A list payload fills Rows; anything else is
// kept as preformatted Text.
type View struct {
	Layout Layout
	Width  int
	IsList bool
	Rows   []Row
	Text   string
}

// Columns returns the union of field names across rows: id first, then the
// others in the order they first appear.
func (v View) Columns() []string {
	var cols []string
	seen := make(map[string]bool)
	for _, row := range v.Rows {
		for _, f := range row.Fields {
			if !seen[f.Name] {
				seen[f.Name] = true
				cols = append(cols, f.Name)
			}
		}
	}
	return cols
}

// HasActions reports whether any row carries an action.
func (v View) HasActions() bool {
	for _, row := range v.Rows {
		if len(row.Actions) > 0 {
			return true
		}
	}
	return false
}
