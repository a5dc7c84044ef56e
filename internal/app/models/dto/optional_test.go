package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionalTriState(t *testing.T) {
	type payload struct {
		Name    Optional[string] `json:"name"`
		EndDate Optional[time.Time] `json:"endDate"`
	}

	t.Run("absent fields stay absent", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{}`), &p))
		assert.False(t, p.Name.Present)
		assert.False(t, p.EndDate.Present)
	})

	t.Run("explicit null is present but nil", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"endDate": null}`), &p))
		assert.True(t, p.EndDate.Present)
		assert.Nil(t, p.EndDate.Value)
		assert.False(t, p.Name.Present)

		_, ok := p.EndDate.Get()
		assert.False(t, ok)
	})

	t.Run("value is present and set", func(t *testing.T) {
		var p payload
		require.NoError(t, json.Unmarshal([]byte(`{"name": "Ibuprofen"}`), &p))
		assert.True(t, p.Name.Present)

		name, ok := p.Name.Get()
		require.True(t, ok)
		assert.Equal(t, "Ibuprofen", name)
	})

	t.Run("invalid value fails", func(t *testing.T) {
		var p payload
		err := json.Unmarshal([]byte(`{"endDate": "not-a-date"}`), &p)
		assert.Error(t, err)
	})
}

func TestOptionalSliceNull(t *testing.T) {
	type payload struct {
		Allergies Optional[[]string] `json:"allergies"`
	}

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"allergies": null}`), &p))
	assert.True(t, p.Allergies.Present)
	assert.Nil(t, p.Allergies.Value)

	require.NoError(t, json.Unmarshal([]byte(`{"allergies": ["pollen"]}`), &p))
	list, ok := p.Allergies.Get()
	require.True(t, ok)
	assert.Equal(t, []string{"pollen"}, list)
}
