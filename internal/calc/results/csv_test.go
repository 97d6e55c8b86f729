package results

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Durability/internal/calc/calcerr"
	"Durability/internal/calc/woehler"
)

func TestWriteCSV_Layout(t *testing.T) {
	curves := map[string]woehler.Curve{
		"Probit":  {K1: -7.3, ND: 1.2e6, SD: 251.5, TN: 5.1, TS: 1.21},
		"ML full": {K1: -7.1, ND: 1.1e6, SD: 249, TN: 4.9, TS: 1.19},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, curves, []string{"Probit", "ML full"}))
	assert.Equal(t, `,Probit,ML full
k_1,-7.3,-7.1
ND,1.2e+06,1.1e+06
SD,251.5,249
TN,5.1,4.9
TS,1.21,1.19
`, buf.String())
}

func TestCSV_RoundTrip(t *testing.T) {
	curves := map[string]woehler.Curve{
		"Probit":  {K1: -7.312345678901, ND: 1234567.891, SD: 251.123456789, TN: 5.1, TS: 1.21},
		"ML full": {K1: -7.1, ND: 1.1e6, SD: 249, TN: 4.9, TS: 1.19, K2: woehler.Slope(-13.2)},
		"flat":    {K1: -5, ND: 2e6, SD: 100, TN: 1, TS: 1, K2: woehler.Slope(math.Inf(-1))},
	}
	order := []string{"ML full", "Probit", "flat"}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, curves, order))
	got, methods, err := ReadCSV(&buf)
	require.NoError(t, err)

	assert.Equal(t, order, methods)
	for _, m := range order {
		want, have := curves[m], got[m]
		assert.InDelta(t, want.K1, have.K1, 1e-12, m)
		assert.InDelta(t, want.ND, have.ND, 1e-6, m)
		assert.InDelta(t, want.SD, have.SD, 1e-12, m)
		assert.InDelta(t, want.TN, have.TN, 1e-12, m)
		assert.InDelta(t, want.TS, have.TS, 1e-12, m)
	}
	assert.Nil(t, got["Probit"].K2)
	require.NotNil(t, got["ML full"].K2)
	assert.Equal(t, -13.2, *got["ML full"].K2)
	assert.True(t, math.IsInf(*got["flat"].K2, -1))
}

func TestWriteCSV_UnknownMethod(t *testing.T) {
	err := WriteCSV(&bytes.Buffer{}, map[string]woehler.Curve{}, []string{"Probit"})
	var ce *calcerr.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}

func TestWriteCSV_RejectsInvalidCurve(t *testing.T) {
	good := woehler.Curve{K1: -7, ND: 1e6, SD: 250, TN: 5, TS: 1.2}
	for name, bad := range map[string]woehler.Curve{
		"positive slope": {K1: 3, ND: 1e6, SD: 250, TN: 5, TS: 1.2},
		"zero ND":        {K1: -7, ND: 0, SD: 250, TN: 5, TS: 1.2},
	} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			err := WriteCSV(&buf, map[string]woehler.Curve{"good": good, "bad": bad}, []string{"good", "bad"})
			assert.True(t, calcerr.IsClientError(err), "got %v", err)
			assert.Contains(t, err.Error(), "bad")
			assert.Zero(t, buf.Len())
		})
	}
}

func TestReadCSV_Invalid(t *testing.T) {
	for name, in := range map[string]string{
		"empty":       "",
		"no methods":  "param\nk_1\n",
		"not numeric": ",a\nk_1,steep\n",
		"no values":   ",a,b\nk_1,-5,\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, _, err := ReadCSV(strings.NewReader(in))
			assert.True(t, calcerr.IsClientError(err), "got %v", err)
		})
	}
}

func TestReadCSV_IgnoresUnknownRows(t *testing.T) {
	got, _, err := ReadCSV(strings.NewReader(",a\nk_1,-5\nfailure_probability,0.5\nSD,100\n"))
	require.NoError(t, err)
	assert.Equal(t, woehler.Curve{K1: -5, SD: 100}, got["a"])
}

func TestFilename(t *testing.T) {
	assert.Equal(t, `attachment; filename="SN_results.csv"`, Filename())
}
