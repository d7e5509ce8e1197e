package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/cvhub/internal/config"
	"github.com/khoahotran/cvhub/pkg/logger"
)

func TestInit_WithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Init(config.Config{}, logger.NewNopLogger(), "cvhub-test")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
