package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"landdeals-console/internal/domain/installment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestPreviewTable(t *testing.T) {
	out, err := execute(t, "preview", "--amount", "30000", "--count", "3", "--start", "2024-01-31")
	require.NoError(t, err)

	assert.Contains(t, out, "DUE DATE")
	assert.Contains(t, out, "TOTAL")
	assert.NotContains(t, out, "warning")
}

func TestPreviewJSON(t *testing.T) {
	out, err := execute(t, "preview", "--amount", "40000", "--count", "4", "--frequency", "quarterly", "--start", "2024-01-15", "--json")
	require.NoError(t, err)

	var preview installment.PreviewResponse
	require.NoError(t, json.Unmarshal([]byte(out), &preview))
	require.Len(t, preview.Rows, 4)
	assert.Equal(t, "2024-04-15", preview.Rows[1].DueDate)
	assert.True(t, preview.MatchesTotal)
}

func TestPreviewRequiresFlags(t *testing.T) {
	_, err := execute(t, "preview", "--count", "3")
	assert.Error(t, err)
}

func TestPreviewRejectsBadAmount(t *testing.T) {
	_, err := execute(t, "preview", "--amount", "-5", "--start", "2024-01-01")
	assert.Error(t, err)
}
