package scout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIdentifier(t *testing.T) {
	t.Run("cas number", func(t *testing.T) {
		id := ParseIdentifier("106-38-7")
		assert.Equal(t, "106-38-7", id.CAS)
		assert.Empty(t, id.Name)
		assert.True(t, id.IsCAS())
		assert.Equal(t, "106-38-7", id.Value())
	})

	t.Run("long cas number", func(t *testing.T) {
		id := ParseIdentifier("1234567-89-5")
		assert.True(t, id.IsCAS())
	})

	t.Run("free-text name", func(t *testing.T) {
		id := ParseIdentifier("Benzene, 1-bromo-4-methyl-")
		assert.Empty(t, id.CAS)
		assert.Equal(t, "Benzene, 1-bromo-4-methyl-", id.Name)
		assert.False(t, id.IsCAS())
	})

	t.Run("whitespace is trimmed", func(t *testing.T) {
		id := ParseIdentifier("  toluene  ")
		assert.Equal(t, "toluene", id.Name)
	})

	t.Run("blank input is zero", func(t *testing.T) {
		assert.True(t, ParseIdentifier("").IsZero())
		assert.True(t, ParseIdentifier("   ").IsZero())
	})

	t.Run("malformed cas is treated as a name", func(t *testing.T) {
		id := ParseIdentifier("106-38-75")
		assert.False(t, id.IsCAS())
		assert.Equal(t, "106-38-75", id.Name)
	})
}

func TestIdentifierQuery(t *testing.T) {
	assert.Equal(t, "download msds of 106-38-7", ParseIdentifier("106-38-7").Query())
	assert.Equal(t, "download msds of toluene", ParseIdentifier("toluene").Query())
}
