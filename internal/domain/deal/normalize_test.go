package deal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("flat payload", func(t *testing.T) {
		d, err := Parse([]byte(`{"id": 7, "project_name": "Riverside", "owners": [{"id": 1, "name": "Ramesh"}]}`))
		require.NoError(t, err)

		assert.Equal(t, int64(7), d.ID)
		assert.Equal(t, "Riverside", d.ProjectName)
		require.Len(t, d.Owners, 1)
		assert.NotNil(t, d.Buyers)
		assert.NotNil(t, d.Investors)
		assert.NotNil(t, d.Documents)
	})

	t.Run("wrapped payload prefers top-level collections", func(t *testing.T) {
		raw := `{
			"deal": {"id": 9, "project_name": "Hilltop", "owners": [{"id": 1}], "buyers": [{"id": 5}]},
			"owners": [{"id": 2}, {"id": 3}],
			"investors": [{"investor_id": 44, "investor_name": "Sita"}]
		}`
		d, err := Parse([]byte(raw))
		require.NoError(t, err)

		assert.Equal(t, int64(9), d.ID)
		assert.Len(t, d.Owners, 2)
		assert.Len(t, d.Buyers, 1, "nested buyers kept when no top-level list")
		require.Len(t, d.Investors, 1)
		assert.Equal(t, "Sita", d.Investors[0].DisplayName())
		assert.True(t, d.HasInvestor(44))
		assert.False(t, d.HasInvestor(45))
	})

	t.Run("null deal field is treated as flat", func(t *testing.T) {
		d, err := Parse([]byte(`{"deal": null, "id": 3}`))
		require.NoError(t, err)
		assert.Equal(t, int64(3), d.ID)
	})

	t.Run("non-object rejected", func(t *testing.T) {
		_, err := Parse([]byte(`[1,2]`))
		assert.Error(t, err)
	})
}

func TestNormalizeRejectsEmptyVariants(t *testing.T) {
	_, err := Normalize(&Payload{Kind: PayloadWrapped})
	assert.Error(t, err)

	_, err = Normalize(&Payload{Kind: PayloadFlat})
	assert.Error(t, err)

	_, err = Normalize(nil)
	assert.Error(t, err)
}
