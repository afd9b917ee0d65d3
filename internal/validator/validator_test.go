package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleConfig struct {
	Endpoint string `mapstructure:"endpoint" validate:"required,url"`
	Token    string `mapstructure:"token" validate:"required"`
	Attempts int    `mapstructure:"attempts" validate:"min=1"`
}

// TestStruct tests struct validation and error formatting
func TestStruct(t *testing.T) {
	v := New()

	t.Run("valid struct", func(t *testing.T) {
		err := v.Struct(&sampleConfig{
			Endpoint: "https://ddns.example.com/api/update",
			Token:    "secret",
			Attempts: 3,
		})
		assert.NoError(t, err)
	})

	t.Run("errors use mapstructure names", func(t *testing.T) {
		err := v.Struct(&sampleConfig{Attempts: 0})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "endpoint is required")
		assert.Contains(t, err.Error(), "token is required")
		assert.Contains(t, err.Error(), "attempts must be at least 1")
	})

	t.Run("url tag", func(t *testing.T) {
		err := v.Struct(&sampleConfig{
			Endpoint: "not a url",
			Token:    "secret",
			Attempts: 1,
		})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "endpoint must be a valid URL")
	})
}
