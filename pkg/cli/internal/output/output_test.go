package output

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) (stdout, stderr *bytes.Buffer) {
	t.Helper()
	stdout, stderr = &bytes.Buffer{}, &bytes.Buffer{}
	prevOut, prevErr := Stdout, Stderr
	Stdout, Stderr = stdout, stderr
	t.Cleanup(func() { Stdout, Stderr = prevOut, prevErr })
	return stdout, stderr
}

func TestJSON(t *testing.T) {
	stdout, stderr := capture(t)

	require.NoError(t, JSON(map[string]string{"url": "https://partner/ocpi?a=1&b=2"}))
	assert.Equal(t, "{\n  \"url\": \"https://partner/ocpi?a=1&b=2\"\n}\n", stdout.String())
	assert.Empty(t, stderr.String())
}

func TestTable(t *testing.T) {
	stdout, _ := capture(t)

	w := Table()
	_, _ = fmt.Fprintln(w, "UID\tTYPE")
	_, _ = fmt.Fprintln(w, "012345678\tRFID")
	require.NoError(t, w.Flush())

	assert.Equal(t, "UID        TYPE\n012345678  RFID\n", stdout.String())
}

func TestWarn(t *testing.T) {
	stdout, stderr := capture(t)

	Warn("page is full, more tokens may follow (--offset %d)", 50)
	assert.Empty(t, stdout.String())
	assert.Equal(t, "Warning: page is full, more tokens may follow (--offset 50)\n", stderr.String())
}
