package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/vsrclient/internal/client/models"
)

// Defaults for Options.
const (
	DefaultNarrowWidth = 80
	DefaultTruncateAt  = 50
	Ellipsis           = "..."
	TimeLayout         = "Jan 2, 2006 3:04 PM"
)

const (
	fieldID      = "id"
	fieldPostID  = "post_id"
	fieldContent = "content"
	timeSuffix   = "_at"
)

// timestamp layouts tried, in order, on *_at fields.
var inputLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Options tune Build. The zero value is usable.
type Options struct {
	// Kind overrides record classification when non-empty.
	Kind models.Resource
	// NarrowWidth is the first width that counts as wide.
	NarrowWidth int
	// TruncateAt is the content length kept in the narrow layout.
	TruncateAt int
	// Location is used for parsing naive timestamps and for display.
	Location *time.Location
}

func (o Options) withDefaults() Options {
	if o.NarrowWidth <= 0 {
		o.NarrowWidth = DefaultNarrowWidth
	}
	if o.TruncateAt <= 0 {
		o.TruncateAt = DefaultTruncateAt
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

// LayoutFor returns the layout used at width.
func LayoutFor(width, narrowWidth int) Layout {
	if narrowWidth <= 0 {
		narrowWidth = DefaultNarrowWidth
	}
	if width > 0 && width < narrowWidth {
		return LayoutNarrow
	}
	return LayoutWide
}

// Build converts payload into a View for a terminal width columns wide.
// A width <= 0 means unknown and is treated as wide. payload is not
// modified.
func Build(payload any, width int, opts Options) View {
	opts = opts.withDefaults()
	v := View{Layout: LayoutFor(width, opts.NarrowWidth), Width: width}

	items, ok := payload.([]any)
	if !ok {
		v.Text = formatDocument(payload)
		return v
	}

	v.IsList = true
	v.Rows = make([]Row, 0, len(items))
	for _, item := range items {
		v.Rows = append(v.Rows, buildRow(item, v.Layout, opts))
	}
	return v
}

// Classify returns the record kind: comment when post_id is present,
// post otherwise.
func Classify(rec map[string]any) models.Resource {
	if _, ok := rec[fieldPostID]; ok {
		return models.ResourceComment
	}
	return models.ResourcePost
}

func buildRow(item any, layout Layout, opts Options) Row {
	rec, ok := item.(map[string]any)
	if !ok {
		return Row{Fields: []Field{{Name: "value", Value: formatValue(item)}}}
	}

	kind := opts.Kind
	if kind == "" {
		kind = Classify(rec)
	}
	row := Row{Kind: kind}

	for _, name := range orderedKeys(rec) {
		row.Fields = append(row.Fields, Field{
			Name:  name,
			Value: formatField(name, rec[name], layout, opts),
		})
	}

	if raw, ok := rec[fieldID]; ok && raw != nil {
		row.ID = formatValue(raw)
		row.Actions = []Action{
			{Kind: kind, Verb: VerbEdit, ID: row.ID},
			{Kind: kind, Verb: VerbDelete, ID: row.ID},
		}
	}
	return row
}

// orderedKeys puts id first and sorts the rest.
func orderedKeys(rec map[string]any) []string {
	keys := make([]string, 0, len(rec))
	for k := range rec {
		if k != fieldID {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	if _, ok := rec[fieldID]; ok {
		keys = append([]string{fieldID}, keys...)
	}
	return keys
}

func formatField(name string, value any, layout Layout, opts Options) string {
	if strings.HasSuffix(name, timeSuffix) {
		if s, ok := value.(string); ok {
			return formatTime(s, opts.Location)
		}
	}

	s := formatValue(value)
	if name == fieldContent && layout == LayoutNarrow {
		return truncate(s, opts.TruncateAt)
	}
	return s
}

// formatTime renders s in loc, or returns s unchanged if no layout fits.
func formatTime(s string, loc *time.Location) string {
	for _, layout := range inputLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return t.In(loc).Format(TimeLayout)
		}
	}
	return s
}

// truncate keeps the first n runes of s and appends Ellipsis when s is
// longer than n.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + Ellipsis
}

func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool, float64, int, int64:
		return fmt.Sprint(x)
	default:
		b, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(b)
	}
}

// formatDocument renders a non-list payload: text as is, anything else as
// indented JSON.
func formatDocument(payload any) string {
	if s, ok := payload.(string); ok {
		return s
	}
	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Sprint(payload)
	}
	return string(b)
}
