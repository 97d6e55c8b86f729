package damage_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Durability/internal/calc/damage"
	"Durability/internal/calc/woehler"
)

type catalog map[string]woehler.Curve

func (c catalog) Lookup(name string) (woehler.Curve, bool) {
	v, ok := c[name]
	return v, ok
}

func post(t *testing.T, h http.HandlerFunc, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodPost, target, bytes.NewBufferString(body)))
	return rr
}

func newHandler() *damage.Handler {
	return &damage.Handler{Materials: catalog{
		"default": {K1: -8, ND: 1e6, SD: 100, TN: 12, TS: 1.1},
	}}
}

func TestCalc_Material(t *testing.T) {
	rr := post(t, newHandler().Calc, "/api/tools/damage/calc",
		`{"material":"default","selected":["miner_original","miner_haibach"]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var out damage.CalcResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.Len(t, out.Spectrum, 4)
	require.Contains(t, out.Results, damage.MinerOriginal)
	orig := out.Results[damage.MinerOriginal]
	assert.InDelta(t, 1e-3, orig.Total, 1e-15)
	require.NotNil(t, orig.BlocksToFailure)
	assert.InDelta(t, 1000, *orig.BlocksToFailure, 1e-9)
	assert.Equal(t, "total damage sum miner_original :  1.00e-03", orig.Summary)
	assert.Nil(t, orig.Curve.K2)
	require.NotNil(t, out.Results[damage.MinerHaibach].Curve.K2)
	assert.Equal(t, -15.0, *out.Results[damage.MinerHaibach].Curve.K2)
}

func TestCalc_InlineMethods(t *testing.T) {
	body := `{
		"spectrum": [{"amplitude": 200, "cycles": 10}],
		"methods": {"custom": {"k_1": -5, "ND": 2e6, "SD": 200, "TN": 1, "TS": 1}},
		"selected": ["custom"]
	}`
	rr := post(t, newHandler().Calc, "/", body)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var out damage.CalcResult
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&out))
	assert.InDelta(t, 10/2e6, out.Results["custom"].Total, 1e-18)
}

func TestCalc_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bad json", body: `{`},
		{name: "unknown method", body: `{"material":"default","selected":["miner_modified"]}`},
		{name: "unknown material", body: `{"material":"titanium","selected":["miner_original"]}`},
		{name: "negative cycles", body: `{"material":"default","selected":["miner_original"],"spectrum":[{"amplitude":10,"cycles":-1}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := post(t, newHandler().Calc, "/", tt.body)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
			var body map[string]string
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&body))
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestChart(t *testing.T) {
	rr := post(t, newHandler().Chart, "/?format=svg",
		`{"material":"default","selected":["miner_elementary","miner_haibach"]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "image/svg+xml", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Body.String(), "<svg")

	rr = post(t, newHandler().Chart, "/?format=bmp", `{"material":"default"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestXLSX(t *testing.T) {
	rr := post(t, newHandler().XLSX, "/", `{"material":"default","selected":["miner_haibach"]}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "damage.xlsx")
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(rr.Body.Bytes(), []byte("PK")))
}
