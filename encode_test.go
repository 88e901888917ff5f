package kvgate_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kvgate/kvgate"
)

func TestEncode_ScalarJSON(t *testing.T) {
	resp := kvgate.ScalarResponse{
		Success: true,
		Result:  kvgate.String("test_value"),
	}

	out, err := kvgate.Encode(resp, kvgate.FormatJSON)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))

	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, "test_value", parsed["result"])
	assert.Nil(t, parsed["error"])
}

func TestEncode_ScalarXML(t *testing.T) {
	resp := kvgate.ScalarResponse{
		Success: true,
		Result:  kvgate.String("test_value"),
	}

	out, err := kvgate.Encode(resp, kvgate.FormatXML)
	require.NoError(t, err)

	assert.Contains(t, out, "<success>true</success>")
	assert.Contains(t, out, "<result>test_value</result>")
	assert.NotContains(t, out, "<error>")
}

func TestEncode_ScalarText(t *testing.T) {
	resp := kvgate.ScalarResponse{
		Success: true,
		Result:  kvgate.String("test_value"),
	}

	out, err := kvgate.Encode(resp, kvgate.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "test_value", out)
}

func TestEncode_ScalarAbsentKey(t *testing.T) {
	// A missing key is a successful read with no payload, not an error.
	resp := kvgate.ScalarResponse{Success: true}

	text, err := kvgate.Encode(resp, kvgate.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "OK", text)

	out, err := kvgate.Encode(resp, kvgate.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, out, `"result":null`)
}

func TestEncode_ScalarError(t *testing.T) {
	resp := kvgate.ScalarResponse{
		Success: false,
		Error:   kvgate.String("Test error"),
	}

	out, err := kvgate.Encode(resp, kvgate.FormatJSON)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, false, parsed["success"])
	assert.Nil(t, parsed["result"])
	assert.Equal(t, "Test error", parsed["error"])

	xmlOut, err := kvgate.Encode(resp, kvgate.FormatXML)
	require.NoError(t, err)
	assert.Contains(t, xmlOut, "<success>false</success>")
	assert.Contains(t, xmlOut, "<error>Test error</error>")

	text, err := kvgate.Encode(resp, kvgate.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "ERROR: Test error", text)
}

func TestEncode_ErrorWithoutMessage(t *testing.T) {
	out, err := kvgate.Encode(kvgate.ScalarResponse{Success: false}, kvgate.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "ERROR: Unknown error", out)
}

func TestEncode_Field(t *testing.T) {
	resp := kvgate.FieldResponse{
		Success: true,
		Value:   kvgate.String("field_value"),
	}

	out, err := kvgate.Encode(resp, kvgate.FormatJSON)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	assert.Equal(t, true, parsed["success"])
	assert.Equal(t, "field_value", parsed["value"])
	assert.Nil(t, parsed["error"])

	xmlOut, err := kvgate.Encode(resp, kvgate.FormatXML)
	require.NoError(t, err)
	assert.Contains(t, xmlOut, "<value>field_value</value>")

	text, err := kvgate.Encode(resp, kvgate.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "field_value", text)
}

func TestEncode_Hash(t *testing.T) {
	resp := kvgate.HashResponse{
		Success: true,
		Fields: map[string]string{
			"key2": "value2",
			"key1": "value1",
		},
	}

	out, err := kvgate.Encode(resp, kvgate.FormatJSON)
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &parsed))
	fields := parsed["fields"].(map[string]any)
	assert.Equal(t, "value1", fields["key1"])
	assert.Equal(t, "value2", fields["key2"])

	xmlOut, err := kvgate.Encode(resp, kvgate.FormatXML)
	require.NoError(t, err)
	assert.Contains(t, xmlOut, "<field><key>key1</key><value>value1</value></field>")
	assert.Contains(t, xmlOut, "<field><key>key2</key><value>value2</value></field>")

	text, err := kvgate.Encode(resp, kvgate.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "key1: value1\nkey2: value2", text)
}

func TestEncode_HashEmptyVsAbsent(t *testing.T) {
	// A present empty map is a successful empty result.
	empty := kvgate.HashResponse{Success: true, Fields: map[string]string{}}

	text, err := kvgate.Encode(empty, kvgate.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "OK", text)

	jsonOut, err := kvgate.Encode(empty, kvgate.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"fields":{}`)

	xmlOut, err := kvgate.Encode(empty, kvgate.FormatXML)
	require.NoError(t, err)
	assert.Contains(t, xmlOut, "<fields></fields>")

	// An absent map omits the element entirely and is null in JSON.
	absent := kvgate.HashResponse{Success: true}

	text, err = kvgate.Encode(absent, kvgate.FormatText)
	require.NoError(t, err)
	assert.Equal(t, "OK", text)

	jsonOut, err = kvgate.Encode(absent, kvgate.FormatJSON)
	require.NoError(t, err)
	assert.Contains(t, jsonOut, `"fields":null`)

	xmlOut, err = kvgate.Encode(absent, kvgate.FormatXML)
	require.NoError(t, err)
	assert.NotContains(t, xmlOut, "<fields>")
}

func TestEncode_XMLEscaping(t *testing.T) {
	resp := kvgate.HashResponse{
		Success: true,
		Fields:  map[string]string{"a<b": `x & "y"`},
	}

	out, err := kvgate.Encode(resp, kvgate.FormatXML)
	require.NoError(t, err)
	assert.Contains(t, out, "<key>a&lt;b</key>")
	assert.Contains(t, out, "x &amp;")
	assert.NotContains(t, out, "<key>a<b</key>")
}
