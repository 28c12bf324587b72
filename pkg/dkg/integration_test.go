package dkg

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkg-node/dkg-plugins/pkg/testutils"
)

// Runs against the node named by DKG_PLUGINS_DKG_ENDPOINT (environment or .env).
func TestNodePublishAndGet(t *testing.T) {
	endpoint := testutils.NodeEndpointOrSkip(t)

	client := NewHTTPClient(Config{
		Endpoint:     endpoint,
		Blockchain:   testutils.GetEnvOrDefault(testutils.ENV_NODE_BLOCKCHAIN, "otp:20430"),
		PollInterval: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	content := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Note",
		"text":     "integration " + time.Now().UTC().Format(time.RFC3339),
	}
	res, err := client.Asset().Create(ctx, content, CreateOptions{EpochsNum: 1})
	require.NoError(t, err)
	require.NotEmpty(t, res.UAL)

	asset, err := client.Asset().Get(ctx, res.UAL)
	require.NoError(t, err)
	_, ok := asset.Public()
	assert.True(t, ok)
}
