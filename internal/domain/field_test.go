package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeField(t *testing.T) {
	due := time.Date(2024, 5, 1, 18, 0, 0, 250_000_000, time.UTC)
	tests := []struct {
		value  any
		name   string
		expect string
	}{
		{"Buy milk", FieldDescription, `description:"Buy milk"`},
		{`say "hi"`, FieldDescription, `description:"say \"hi\""`},
		{`C:\`, FieldDescription, `description:"C:\\"`},
		{`ends \"`, FieldDescription, `description:"ends \\\""`},
		{"Home", FieldProject, `project:"Home"`},
		{"weekly", FieldRecur, `recur:"weekly"`},
		{StatusWaiting, FieldStatus, `status:"waiting"`},
		{"pending", FieldStatus, `status:"pending"`},
		{PriorityHigh, FieldPriority, `priority:"H"`},
		{[]string{"errand", "home"}, FieldTags, `tags:"errand,home"`},
		{[]string{"a-1", "b-2"}, FieldDepends, `depends:"a-1,b-2"`},
		{due, FieldDue, `due:"20240501T180000Z"`},
		{due, FieldScheduled, `scheduled:"20240501T180000Z"`},
	}
	for _, tt := range tests {
		t.Run(tt.expect, func(t *testing.T) {
			got, err := EncodeField(tt.name, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expect, got)
		})
	}
}

func TestEncodeField_Excluded(t *testing.T) {
	for _, f := range ExcludedFromCLI {
		got, err := EncodeField(f, 1)
		require.NoError(t, err, f)
		assert.Empty(t, got, f)
	}
}

func TestEncodeField_ZeroTimeIsSkipped(t *testing.T) {
	got, err := EncodeField(FieldDue, time.Time{})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestEncodeField_Unsupported(t *testing.T) {
	tests := []struct {
		value any
		name  string
	}{
		{"x", "estimate"},
		{42, FieldDescription},
		{"20240501T180000Z", FieldDue},
		{"a,b", FieldTags},
		{1.5, FieldStatus},
		{time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC), FieldDue},
		{time.Date(-1, 1, 1, 0, 0, 0, 0, time.UTC), FieldWait},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EncodeField(tt.name, tt.value)
			var warn *UnsupportedFieldWarning
			require.ErrorAs(t, err, &warn)
			assert.Equal(t, tt.name, warn.Field)
			assert.True(t, errors.Is(err, ErrUnsupportedField))
		})
	}
}

func TestDecodeTask_Scenario(t *testing.T) {
	task, err := DecodeTask([]byte(`{"uuid":"abc-123","description":"Spam","entry":"20190824T205920Z","modified":"20190824T224845Z","status":"pending","id":3,"urgency":5.2}`))
	require.NoError(t, err)

	assert.Equal(t, "abc-123", task.UUID)
	assert.False(t, task.Props.Has(FieldUUID))
	assert.Equal(t, "Spam", task.Description())
	assert.Equal(t, StatusPending, task.Status())
	assert.Equal(t, 3, task.ID())
	assert.InDelta(t, 5.2, task.Urgency(), 1e-9)

	entry, ok := task.Time(FieldEntry)
	require.True(t, ok)
	assert.True(t, entry.Equal(time.Date(2019, 8, 24, 20, 59, 20, 0, time.UTC)))
	modified, ok := task.Time(FieldModified)
	require.True(t, ok)
	assert.True(t, modified.Equal(time.Date(2019, 8, 24, 22, 48, 45, 0, time.UTC)))

	assert.Equal(t, []string{"description", "entry", "modified", "status", "id", "urgency"}, task.Props.Keys())
}

func TestDecodeTask_TypedFields(t *testing.T) {
	task, err := DecodeTask([]byte(`{
		"uuid": "f45a05b3-c12e-42e5-9c9c-333333333333",
		"description": "Buy milk",
		"status": "pending",
		"priority": "H",
		"due": "20230101T120000Z",
		"project": "Groceries",
		"tags": ["buy", "food"],
		"depends": ["aaa", "bbb"],
		"annotations": [
			{"entry": "20230101T120500Z", "description": "Don't forget almond milk"}
		],
		"mask": "--X",
		"imask": 2,
		"est": "PT1H",
		"custom": {"nested": [1, 2]}
	}`))
	require.NoError(t, err)

	assert.Equal(t, PriorityHigh, task.Priority())
	assert.Equal(t, "Groceries", task.Project())
	assert.Equal(t, []string{"buy", "food"}, task.Tags())
	assert.Equal(t, []string{"aaa", "bbb"}, task.Depends())
	assert.Equal(t, "--X", task.Mask())
	assert.InDelta(t, 2.0, task.IMask(), 1e-9)

	anns := task.Annotations()
	require.Len(t, anns, 1)
	assert.Equal(t, "Don't forget almond milk", anns[0].Description)
	assert.True(t, anns[0].Entry.Equal(time.Date(2023, 1, 1, 12, 5, 0, 0, time.UTC)))

	est, _ := task.Props.Get("est")
	assert.Equal(t, "PT1H", est)
	custom, _ := task.Props.Get("custom")
	assert.Equal(t, map[string]any{"nested": []any{1.0, 2.0}}, custom)
}

func TestDecodeTask_LegacyDependsString(t *testing.T) {
	task, err := DecodeTask([]byte(`{"uuid":"x","depends":"aaa,bbb"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"aaa", "bbb"}, task.Depends())
}

func TestDecodeTask_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
	}{
		{"bad due", `{"uuid":"x","due":"2019-08-24T20:59:20Z"}`, "due"},
		{"due not a string", `{"uuid":"x","due":20190824}`, "due"},
		{"bad annotation entry", `{"annotations":[{"entry":"yesterday","description":"x"}]}`, "annotations"},
		{"tags not a list", `{"tags":"a,b"}`, "tags"},
		{"id not a number", `{"id":"3"}`, "id"},
		{"uuid not a string", `{"uuid":3}`, "uuid"},
		{"not an object", `["a"]`, ""},
		{"truncated", `{"uuid":"x",`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeTask([]byte(tt.input))
			var fmtErr *FormatError
			require.ErrorAs(t, err, &fmtErr)
			assert.Equal(t, tt.field, fmtErr.Field)
		})
	}
}

func TestDecodeTask_BadStampNamesFieldAndValue(t *testing.T) {
	_, err := DecodeTask([]byte(`{"wait":"20190824T2059"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"wait"`)
	assert.Contains(t, err.Error(), "20190824T2059")
	assert.ErrorIs(t, err, ErrInvalidStamp)
}

func TestDecodeTasks(t *testing.T) {
	tasks, err := DecodeTasks([]byte("[\n{\"uuid\":\"a\",\"description\":\"one\"},\n{\"uuid\":\"b\",\"description\":\"two\"}\n]\n"))
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "a", tasks[0].UUID)
	assert.Equal(t, "two", tasks[1].Description())
}

func TestDecodeTasks_Empty(t *testing.T) {
	for _, in := range []string{"", "  \n", "[]", "[\n]\n"} {
		tasks, err := DecodeTasks([]byte(in))
		require.NoError(t, err)
		assert.NotNil(t, tasks)
		assert.Empty(t, tasks)
	}
}

func TestDecodeTasks_OneBadElementFailsBatch(t *testing.T) {
	tasks, err := DecodeTasks([]byte(`[{"uuid":"a"},{"uuid":"b","entry":"nope"}]`))
	assert.Nil(t, tasks)
	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Equal(t, "entry", fmtErr.Field)
}

func TestDecodeTasks_MalformedJSON(t *testing.T) {
	_, err := DecodeTasks([]byte(`Configuration override rc.verbose=nothing`))
	var fmtErr *FormatError
	require.ErrorAs(t, err, &fmtErr)
	assert.Empty(t, fmtErr.Field)
}
