package entry

import (
	"encoding/json"
	"testing"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecDecode(t *testing.T) {
	tests := []struct {
		name     string
		taskType task.TaskType
		raw      string
		want     string
		wantErr  bool
	}{
		{name: "boolean accepts true", taskType: task.TypeBoolean, raw: `true`, want: `true`},
		{name: "boolean rejects number", taskType: task.TypeBoolean, raw: `1`, wantErr: true},
		{name: "number accepts decimal", taskType: task.TypeNumber, raw: `12.5`, want: `12.5`},
		{name: "number rejects negative", taskType: task.TypeNumber, raw: `-3`, wantErr: true},
		{name: "number rejects string", taskType: task.TypeNumber, raw: `"12"`, wantErr: true},
		{name: "minutes accepts whole number", taskType: task.TypeMinutes, raw: `45`, want: `45`},
		{name: "minutes rejects negative", taskType: task.TypeMinutes, raw: `-10`, wantErr: true},
		{name: "time accepts clock string", taskType: task.TypeTime, raw: `"07:30"`, want: `"07:30"`},
		{name: "time rejects hour out of range", taskType: task.TypeTime, raw: `"25:00"`, wantErr: true},
		{name: "time rejects bare number", taskType: task.TypeTime, raw: `730`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			codec, err := CodecFor(tt.taskType)
			require.NoError(t, err)

			got, err := codec.Decode(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntryValue)
				return
			}
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestCodecForUnknownType(t *testing.T) {
	_, err := CodecFor(task.TaskType("streak"))
	assert.ErrorIs(t, err, task.ErrInvalidTaskType)
}
