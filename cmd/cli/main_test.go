package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupEnv(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("STORAGE_DRIVER", "file")
	t.Setenv("STORAGE_PATH", filepath.Join(dir, "data"))
	t.Setenv("REFRESH_RATES_ON_START", "false")

	return dir
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)

	err := cmd.Execute()

	return out.String(), err
}

func TestBudget(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "budget")
	require.NoError(t, err)
	assert.Equal(t, "Rp 0\n", out)

	out, err = run(t, "budget", "set", "1.500.000")
	require.NoError(t, err)
	assert.Equal(t, "monthly budget set to Rp 1.500.000\n", out)

	out, err = run(t, "budget")
	require.NoError(t, err)
	assert.Equal(t, "Rp 1.500.000\n", out)

	_, err = run(t, "budget", "set", "lots")
	assert.Error(t, err)
}

func TestExportImport(t *testing.T) {
	dir := setupEnv(t)

	out, err := run(t, "export", "--dir", filepath.Join(dir, "exports"))
	require.NoError(t, err)

	path := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(filepath.Base(path), "finance-backup-"))

	out, err = run(t, "import", path)
	require.NoError(t, err)
	assert.Equal(t, "imported 0 transactions and 12 categories\n", out)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"transactions": []}`), 0o644))

	_, err = run(t, "import", bad)
	assert.ErrorContains(t, err, "not a valid backup")

	out, err = run(t, "export", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t, "date,type,category,description,currency,amount,amount_idr\n", out)
}

func TestReportRaw(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "report", "--raw", "--month", "2026-03")
	require.NoError(t, err)
	assert.Contains(t, out, "# March 2026")
	assert.Contains(t, out, "_No transactions this month._")

	_, err = run(t, "report", "--month", "March")
	assert.Error(t, err)
}

func TestTransactionsRejectsBadFlags(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "transactions", "--sort", "price")
	assert.Error(t, err)

	_, err = run(t, "transactions", "--type", "gift")
	assert.Error(t, err)

	out, err := run(t, "transactions")
	require.NoError(t, err)
	assert.Contains(t, out, "page 1/1 · 0 transactions")
}

func TestRates(t *testing.T) {
	setupEnv(t)

	out, err := run(t, "rates")
	require.NoError(t, err)
	assert.Contains(t, out, "USD")
	assert.Contains(t, out, "Rp 15.000")
}
