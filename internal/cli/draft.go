package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/runoshun/twgate/internal/domain"
	"github.com/spf13/cobra"
)

// draftFlags holds the attribute flags shared by add, log, modify and search.
// Fields are ordered to minimize memory padding.
type draftFlags struct {
	Tags      []string
	Depends   []string
	Project   string
	Priority  string
	Status    string
	Recur     string
	Due       string
	Scheduled string
	Wait      string
	Until     string
	Start     string
	End       string
}

// register adds the attribute flags to cmd. Status is only offered where
// the caller may choose it.
func (f *draftFlags) register(cmd *cobra.Command, withStatus bool) {
	fs := cmd.Flags()
	fs.StringVarP(&f.Project, "project", "p", "", "Project name")
	fs.StringVar(&f.Priority, "priority", "", "Priority: L, M or H")
	fs.StringArrayVarP(&f.Tags, "tag", "t", nil, "Tag (can specify multiple)")
	fs.StringArrayVar(&f.Depends, "depends", nil, "UUID of a task this one depends on (can specify multiple)")
	fs.StringVar(&f.Recur, "recur", "", "Recurrence period, e.g. weekly")
	fs.StringVar(&f.Due, "due", "", "Due date")
	fs.StringVar(&f.Scheduled, "scheduled", "", "Scheduled date")
	fs.StringVar(&f.Wait, "wait", "", "Hide the task until this date")
	fs.StringVar(&f.Until, "until", "", "Expiry date")
	fs.StringVar(&f.Start, "start", "", "Start date")
	fs.StringVar(&f.End, "end", "", "End date")
	if withStatus {
		fs.StringVar(&f.Status, "status", "", "Status: pending, completed, deleted, waiting or recurring")
	}
}

// draft builds a TaskDraft from the flags and a description.
func (f *draftFlags) draft(description string) (domain.TaskDraft, error) {
	d := domain.TaskDraft{
		Description: description,
		Project:     f.Project,
		Priority:    f.Priority,
		Status:      f.Status,
		Recur:       f.Recur,
		Tags:        splitList(f.Tags),
		Depends:     splitList(f.Depends),
	}
	for _, t := range []struct {
		dst  **time.Time
		name string
		val  string
	}{
		{&d.Due, "due", f.Due},
		{&d.Scheduled, "scheduled", f.Scheduled},
		{&d.Wait, "wait", f.Wait},
		{&d.Until, "until", f.Until},
		{&d.Start, "start", f.Start},
		{&d.End, "end", f.End},
	} {
		if t.val == "" {
			continue
		}
		ts, err := parseTime(t.val)
		if err != nil {
			return domain.TaskDraft{}, fmt.Errorf("--%s: %w", t.name, err)
		}
		*t.dst = &ts
	}
	return d, nil
}

// splitList flattens repeated and comma-separated values.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// timeLayouts are tried in order by parseTime.
var timeLayouts = []string{
	domain.StampLayout,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseTime accepts a taskwarrior stamp, RFC 3339, or a plain date.
// Values without a zone are read as local time.
func parseTime(s string) (time.Time, error) {
	if t, err := domain.ParseStamp(s); err == nil {
		return t, nil
	}
	for _, layout := range timeLayouts[1:] {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse %q as a date (use YYYY-MM-DD, RFC 3339 or %s)", s, domain.StampLayout)
}
