package civil_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tesoreria/internal/civil"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want civil.Date
	}{
		{name: "DateOnly", in: `"2024-05-01"`, want: civil.NewDate(2024, time.May, 1)},
		{name: "RFC3339", in: `"2024-05-01T13:45:00-03:00"`, want: civil.NewDate(2024, time.May, 1)},
		{name: "Null", in: `null`, want: civil.Date{}},
		{name: "Empty", in: `""`, want: civil.Date{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got civil.Date
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.True(t, tt.want.Equal(got.Time), "got %s", got)
		})
	}
}

func TestDate_UnmarshalJSON_Invalid(t *testing.T) {
	var d civil.Date
	assert.Error(t, json.Unmarshal([]byte(`"01/05/2024"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20240501`), &d))
}

func TestDate_MarshalJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		A civil.Date `json:"a"`
		B civil.Date `json:"b"`
	}{A: civil.NewDate(2024, time.January, 9)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"2024-01-09","b":null}`, string(b))
}
