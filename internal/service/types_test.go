package service

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTask_DecodeNumericID(t *testing.T) {
	var tasks []Task
	err := json.Unmarshal([]byte(`[{"id":1,"description":"buy milk","priority":"low","completed":false}]`), &tasks)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	require.Equal(t, TaskID("1"), tasks[0].ID)
	require.Equal(t, "buy milk", tasks[0].Description)
	require.Equal(t, PriorityLow, tasks[0].Priority)
	require.False(t, tasks[0].Completed)
}

func TestTask_DecodeStringID(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":"abc-1","description":"x","completed":true}`), &task))
	require.Equal(t, TaskID("abc-1"), task.ID)
	require.True(t, task.Completed)
}

func TestTask_MissingPriorityDefaultsToMedium(t *testing.T) {
	var task Task
	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"description":"x","completed":false}`), &task))
	require.Equal(t, PriorityMedium, task.Priority)
}

func TestTaskID_RejectsInvalid(t *testing.T) {
	var id TaskID
	require.Error(t, json.Unmarshal([]byte(`null`), &id))
	require.Error(t, json.Unmarshal([]byte(`{}`), &id))
}
