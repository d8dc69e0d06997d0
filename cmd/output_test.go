package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"text/tabwriter"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/ev-dss/internal/scenario"
)

func TestValidateFormat(t *testing.T) {
	for _, f := range []string{formatTable, formatJSON, formatYAML} {
		assert.NoError(t, validateFormat(f), f)
	}
	err := validateFormat("csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"csv"`)
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	res := scenario.Calculate(scenario.BaseInputs())

	err := render(&buf, formatJSON, res, func(*tabwriter.Writer) {
		t.Fatal("table callback must not run for json")
	})
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "4.8", got["break_even"])
	assert.Contains(t, buf.String(), "\n  \"ev_tco\"")
}

func TestRender_YAML(t *testing.T) {
	var buf bytes.Buffer
	res := scenario.Calculate(scenario.BaseInputs())

	require.NoError(t, render(&buf, formatYAML, res, nil))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "4.8", got["break_even"])
	assert.Equal(t, true, got["ev_recommended"])
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	err := render(&buf, formatTable, nil, func(w *tabwriter.Writer) {
		_, _ = w.Write([]byte("a\tb\n"))
		_, _ = w.Write([]byte("long-cell\tc\n"))
	})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "a          b", lines[0])
	assert.Equal(t, "long-cell  c", lines[1])
}

func TestLakhs(t *testing.T) {
	assert.Equal(t, "₹18.53 L", lakhs(1_853_460))
	assert.Equal(t, "₹0.00 L", lakhs(0))
	assert.Equal(t, "₹-1.50 L", lakhs(-150_000))
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t, "EV", recommendation(true))
	assert.Equal(t, "ICE", recommendation(false))
}
