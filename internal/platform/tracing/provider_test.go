package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"enrolsight/internal/platform/config"
)

func TestSetup_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.Tracing{ServiceName: "enrolsight"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
