package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRedis_InvalidURL(t *testing.T) {
	rdb, err := NewRedis("not-a-redis-url")
	require.Error(t, err)
	assert.Nil(t, rdb)
	assert.Contains(t, err.Error(), "REDIS_URL")
}
