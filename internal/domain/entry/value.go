package entry

import (
	"encoding/json"
	"fmt"

	"github.com/Emmanuel-Ibekwe/trackr-backend/internal/domain/task"
	"gorm.io/datatypes"
)

// ValueCodec validates and normalizes the raw JSON value of an entry for one
// task type. All four task types share the entries table; the codec is the
// only part that differs between them.
type ValueCodec interface {
	// Decode checks that raw is a well-formed value for the type and returns
	// its canonical JSON encoding.
	Decode(raw json.RawMessage) (datatypes.JSON, error)
}

// CodecFor returns the codec for a task type.
func CodecFor(tt task.TaskType) (ValueCodec, error) {
	switch tt {
	case task.TypeBoolean:
		return boolCodec{}, nil
	case task.TypeNumber:
		return numberCodec{}, nil
	case task.TypeMinutes:
		return minutesCodec{}, nil
	case task.TypeTime:
		return clockCodec{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", task.ErrInvalidTaskType, tt)
	}
}

type boolCodec struct{}

func (boolCodec) Decode(raw json.RawMessage) (datatypes.JSON, error) {
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: expected a boolean", ErrInvalidEntryValue)
	}
	out, _ := json.Marshal(v)
	return datatypes.JSON(out), nil
}

type numberCodec struct{}

func (numberCodec) Decode(raw json.RawMessage) (datatypes.JSON, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: expected a number", ErrInvalidEntryValue)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: value must not be negative", ErrInvalidEntryValue)
	}
	out, _ := json.Marshal(v)
	return datatypes.JSON(out), nil
}

type minutesCodec struct{}

func (minutesCodec) Decode(raw json.RawMessage) (datatypes.JSON, error) {
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: expected a number of minutes", ErrInvalidEntryValue)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: minutes must not be negative", ErrInvalidEntryValue)
	}
	out, _ := json.Marshal(v)
	return datatypes.JSON(out), nil
}

type clockCodec struct{}

func (clockCodec) Decode(raw json.RawMessage) (datatypes.JSON, error) {
	var v string
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("%w: expected an HH:MM string", ErrInvalidEntryValue)
	}
	if !task.IsClockString(v) {
		return nil, fmt.Errorf("%w: %q is not a valid HH:MM time", ErrInvalidEntryValue, v)
	}
	out, _ := json.Marshal(v)
	return datatypes.JSON(out), nil
}
