package paginate

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"MediaHub.com/pkg/errno"
)

func TestNew(t *testing.T) {
	p, err := New(0, 0, 10, 50)
	require.NoError(t, err)
	assert.Equal(t, Params{Page: 1, Limit: 10}, p)

	p, err = New(3, 500, 10, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(50), p.Limit)
	assert.Equal(t, int64(100), p.Offset())

	_, err = New(-1, 10, 10, 50)
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
	_, err = New(1, -10, 10, 50)
	assert.True(t, errors.Is(err, errno.InvalidArgumentErr))
}

func TestOffsetDoesNotOverflow(t *testing.T) {
	p, err := New(math.MaxInt64/10+2, 10, 10, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), p.Offset())

	p, err = New(math.MaxInt64, 50, 10, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), p.Offset())

	assert.Equal(t, int64(0), Params{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, int64(math.MaxInt64/10*10), Params{Page: math.MaxInt64/10 + 1, Limit: 10}.Offset())
}

func TestEmptyResultEncodesArray(t *testing.T) {
	r := NewResult[string](Params{Page: 1, Limit: 10}, 0, nil)
	b, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"items":[],"page":1,"limit":10,"totalItems":0,"totalPages":0}`, string(b))
}
