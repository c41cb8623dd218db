package wireformat

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorDetailError(t *testing.T) {
	err := &ErrorDetail{Message: "boom", Type: "panic"}
	assert.Equal(t, "[panic] boom", err.Error())
}

func TestResponseWireOmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(ResponseWire{Data: json.RawMessage(`"hello"`)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":"hello"}`, string(data))

	data, err = json.Marshal(ResponseWire{Error: &ErrorDetail{Message: "boom", Type: "internal"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"message":"boom","type":"internal"}}`, string(data))
}

func TestResponseWireDecode(t *testing.T) {
	var resp ResponseWire
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"name":"demo"}}`), &resp))
	require.Nil(t, resp.Error)

	var md Metadata
	require.NoError(t, json.Unmarshal(resp.Data, &md))
	assert.Equal(t, "demo", md.Name)
}
