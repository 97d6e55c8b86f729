package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Durability/internal/calc/results"
	"Durability/internal/calc/woehler"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func noCatalog(t *testing.T) string { return filepath.Join(t.TempDir(), "none.yaml") }

func TestDamage(t *testing.T) {
	dir := t.TempDir()
	chart := filepath.Join(dir, "damage.svg")
	xlsx := filepath.Join(dir, "damage.xlsx")
	out, err := run(t, "damage", "--materials", noCatalog(t), "--chart", chart, "--xlsx", xlsx)
	require.NoError(t, err, out)

	assert.Contains(t, out, "total damage sum miner_original :  1.00e-03")
	assert.Contains(t, out, "miner_haibach")
	for _, p := range []string{chart, xlsx} {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestDamage_UnknownMethod(t *testing.T) {
	_, err := run(t, "damage", "--materials", noCatalog(t), "--select", "bayes")
	assert.Error(t, err)
}

func TestAllowable(t *testing.T) {
	out, err := run(t, "allowable", "--materials", noCatalog(t), "--method", "miner_elementary")
	require.NoError(t, err, out)
	assert.Contains(t, out, "method:  miner_elementary")
	assert.Contains(t, out, "factor:")
}

func TestSN(t *testing.T) {
	dir := t.TempDir()
	data := filepath.Join(dir, "lab.csv")
	require.NoError(t, os.WriteFile(data, []byte("350;1.5e4;1\n300;9.1e4;1\n250;6e5;1\n225;1e7;0\n"), 0o644))

	var csv bytes.Buffer
	require.NoError(t, results.WriteCSV(&csv, map[string]woehler.Curve{
		"Probit":  {K1: -7.3, ND: 1.2e6, SD: 240, TN: 5.1, TS: 1.21},
		"ML full": {K1: -7.1, ND: 1.1e6, SD: 238, TN: 4.9, TS: 1.19},
	}, []string{"Probit", "ML full"}))
	res := filepath.Join(dir, results.FileName)
	require.NoError(t, os.WriteFile(res, csv.Bytes(), 0o644))

	chart := filepath.Join(dir, "sn.png")
	subset := filepath.Join(dir, "probit.csv")
	out, err := run(t, "sn", "--data", data, "--results", res, "--methods", "Probit", "--chart", chart, "--csv", subset)
	require.NoError(t, err, out)
	assert.Contains(t, out, "records: 4 (3 fractures, 1 runouts) on 4 load levels")

	written, err := os.ReadFile(subset)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(written), ",Probit\n"))
	_, err = os.Stat(chart)
	assert.NoError(t, err)
}

func TestSN_RequiresFlags(t *testing.T) {
	_, err := run(t, "sn")
	assert.Error(t, err)
}

func TestMaterials(t *testing.T) {
	path := filepath.Join(t.TempDir(), "materials.yaml")
	require.NoError(t, os.WriteFile(path, []byte("materials:\n  S355: {k_1: -5, ND: 2e6, SD: 120, TN: 3.2, TS: 1.25}\n"), 0o644))
	out, err := run(t, "materials", "--materials", path)
	require.NoError(t, err, out)
	assert.Contains(t, out, "S355")
	assert.Contains(t, out, "default")
}
