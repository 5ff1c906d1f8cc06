package utils

import (
	"encoding/json"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediaHub.com/pkg/errno"
)

func TestParseID(t *testing.T) {
	id, err := ParseID(" 1234567890123 ", "videoId")
	require.NoError(t, err)
	assert.Equal(t, int64(1234567890123), id)

	for _, raw := range []string{"", "abc", "-5", "0", "12ab", "65f1c0e2a1b2c3d4e5f60718"} {
		_, err := ParseID(raw, "videoId")
		assert.True(t, errors.Is(err, errno.InvalidArgumentErr), raw)
	}

	id, err = ParseOptionalID("", "userId")
	require.NoError(t, err)
	assert.Zero(t, id)
}

func TestIDGenerator(t *testing.T) {
	g, err := NewIDGenerator(1)
	require.NoError(t, err)
	seen := make(map[int64]struct{})
	for i := 0; i < 1000; i++ {
		id := g.Next()
		_, dup := seen[id]
		require.False(t, dup)
		seen[id] = struct{}{}
		parsed, err := ParseID(FormatID(id), "id")
		require.NoError(t, err)
		require.Equal(t, id, parsed)
	}

	_, err = NewIDGenerator(5000)
	assert.Error(t, err)
}

func TestPassword(t *testing.T) {
	hash, err := Crypt("s3cret")
	require.NoError(t, err)
	assert.True(t, VerifyPassword("s3cret", hash))
	assert.False(t, VerifyPassword("wrong", hash))
}

func TestNormalizeIdentity(t *testing.T) {
	assert.Equal(t, "alice", NormalizeIdentity("  Alice "))
	assert.True(t, IsValidEmail("a.b@example.com"))
	assert.False(t, IsValidEmail("not-an-email"))
}

func TestTransfer(t *testing.T) {
	assert.Equal(t, int64(42), Transfer(float64(42)))
	assert.Equal(t, int64(42), Transfer("42"))
	assert.Equal(t, int64(42), Transfer(json.Number("42")))
	assert.Equal(t, int64(0), Transfer(nil))
}

func TestParseProbeDuration(t *testing.T) {
	d, err := parseProbeDuration(`{"format":{"duration":"12.480000"}}`)
	require.NoError(t, err)
	assert.InDelta(t, 12.48, d, 0.0001)

	_, err = parseProbeDuration(`{"format":{}}`)
	assert.Error(t, err)
}
