package clientid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	seen := make(map[string]struct{})
	for range 100 {
		id, err := New()
		require.NoError(t, err)
		assert.Len(t, id, Length)
		for _, r := range id {
			assert.True(t, r >= '0' && r <= '9', "client id must be digits only: %q", id)
		}
		seen[id] = struct{}{}
	}
	// Коллизии на сотне номеров из 10^8 практически исключены.
	assert.Greater(t, len(seen), 95)
}
