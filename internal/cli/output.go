package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/runoshun/twgate/internal/domain"
	"gopkg.in/yaml.v3"
)

// Output formats.
const (
	formatTable = "table"
	formatText  = "text"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = cellStyle.Foreground(lipgloss.Color("8"))
)

// shortUUID returns the first block of a uuid, as taskwarrior displays it.
func shortUUID(uuid string) string {
	if i := strings.IndexByte(uuid, '-'); i > 0 {
		return uuid[:i]
	}
	return uuid
}

// formatDate renders a timestamp attribute for tables.
func formatDate(t *domain.Task, field string) string {
	ts, ok := t.Time(field)
	if !ok {
		return ""
	}
	return ts.Local().Format("2006-01-02")
}

// renderTable writes tasks as a bordered table.
func renderTable(w io.Writer, tasks []*domain.Task) error {
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks.")
		return err
	}

	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		id := ""
		if t.ID() > 0 {
			id = strconv.Itoa(t.ID())
		}
		rows = append(rows, []string{
			id,
			shortUUID(t.UUID),
			t.Status().Display(),
			string(t.Priority()),
			t.Project(),
			strings.Join(t.Tags(), " "),
			formatDate(t, domain.FieldDue),
			t.Description(),
		})
	}

	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "UUID", "STATUS", "PRI", "PROJECT", "TAGS", "DUE", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case col == 1:
				return mutedStyle
			default:
				return cellStyle
			}
		})

	_, err := fmt.Fprintln(w, tbl.Render())
	return err
}

// writeJSON writes v as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// writeYAML writes v in taskwarrior's export schema as YAML.
// The JSON form is re-read as a YAML node so key order survives.
func writeYAML(w io.Writer, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return err
	}
	clearStyle(&node)
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return err
	}
	return enc.Close()
}

// clearStyle drops the flow style JSON input carries, so output is block YAML.
func clearStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle
	if n.Kind == yaml.ScalarNode && n.Style&yaml.DoubleQuotedStyle != 0 && n.Tag == "!!str" {
		n.Style &^= yaml.DoubleQuotedStyle
	}
	for _, c := range n.Content {
		clearStyle(c)
	}
}

// writeText writes a task as aligned "name  value" lines in property order.
func writeText(w io.Writer, t *domain.Task) error {
	type line struct{ name, value string }
	lines := []line{{domain.FieldUUID, t.UUID}}
	for _, name := range t.Props.Keys() {
		v, _ := t.Props.Get(name)
		lines = append(lines, line{name, textValue(v)})
	}

	width := 0
	for _, l := range lines {
		width = max(width, len(l.name))
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, l.name, l.value); err != nil {
			return err
		}
	}
	return nil
}

func textValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case domain.Status:
		return val.Display()
	case domain.Priority:
		return val.Display()
	case []string:
		return strings.Join(val, ", ")
	case []domain.Annotation:
		parts := make([]string, 0, len(val))
		for _, a := range val {
			parts = append(parts, domain.FormatStamp(a.Entry)+" "+a.Description)
		}
		return strings.Join(parts, "; ")
	case time.Time:
		return val.Local().Format("2006-01-02 15:04:05 MST")
	default:
		return fmt.Sprint(v)
	}
}

// writeTasks writes a task list in the requested format.
func writeTasks(w io.Writer, format string, tasks []*domain.Task) error {
	switch format {
	case formatTable, "":
		return renderTable(w, tasks)
	case formatJSON:
		return writeJSON(w, tasks)
	case formatYAML:
		return writeYAML(w, tasks)
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
	}
}
