package guest

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TWDickson/ObsidianSyncWASM/wireformat"
)

func TestBuildMetadata(t *testing.T) {
	md, err := buildMetadata()
	require.NoError(t, err)

	assert.Equal(t, ModuleName, md.Name)
	assert.Equal(t, ModuleVersion, md.Version)
	assert.Equal(t, ABIVersion, md.ABIVersion)

	require.Len(t, md.Operations, 3)
	assert.Equal(t, "compute_hash", md.Operations[0].Name)
	assert.Equal(t, "u64", md.Operations[0].Returns)
	assert.Equal(t, "greet", md.Operations[1].Name)
	assert.Equal(t, "bytes", md.Operations[1].Returns)
	assert.Equal(t, "describe", md.Operations[2].Name)

	for _, key := range []string{"log_message", "panic_report", "response"} {
		assert.Contains(t, md.WireSchemas, key)
	}
}

func TestBuildMetadataRoundTrips(t *testing.T) {
	md, err := buildMetadata()
	require.NoError(t, err)

	data, err := json.Marshal(md)
	require.NoError(t, err)

	var decoded wireformat.Metadata
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, md.Name, decoded.Name)
	assert.Len(t, decoded.Operations, len(md.Operations))
}

func TestGenerateSchema(t *testing.T) {
	raw, err := GenerateSchema(wireformat.PanicReportWire{})
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, "schema has no properties: %s", raw)
	assert.Contains(t, props, "export")
	assert.Contains(t, props, "message")
}
