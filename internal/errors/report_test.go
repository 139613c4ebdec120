package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapAndAsReport(t *testing.T) {
	r := New(RES002, "resolve", "main", 12, "unknown variable %q", "x")
	err := WrapReport(r)
	require.Error(t, err)

	got, ok := AsReport(err)
	require.True(t, ok)
	assert.Equal(t, RES002, got.Code)
	assert.Equal(t, "unknown variable \"x\"", got.Message)
}

func TestAsReportMissesPlainError(t *testing.T) {
	_, ok := AsReport(fmt.Errorf("boom"))
	assert.False(t, ok)
}

func TestWrapReportNil(t *testing.T) {
	assert.Nil(t, WrapReport(nil))
}

func TestReportToJSON(t *testing.T) {
	r := New(BUG001, "type", "main", 3, "bug(checker): unsupported operator %s", "~")
	js, err := r.ToJSON(true)
	require.NoError(t, err)
	assert.Contains(t, js, "\"code\":\"BUG001\"")
	assert.Contains(t, js, "bug(checker):")
}
