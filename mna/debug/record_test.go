package debug

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtcircuit/types"
)

func testState(t float64, v float64) types.State {
	return types.State{
		Components: []types.Component{
			{ID: 1, Type: types.TypeBattery, Current: -v / 100, Nodes: [2]types.NodeID{0, 1}},
			{ID: 2, Type: types.TypeResistor, Current: v / 100, Nodes: [2]types.NodeID{0, 1}},
		},
		NodeVoltages: []float64{0, -v},
		TotalPower:   v * v / 100,
		Time:         t,
	}
}

func TestRecordUpdate(t *testing.T) {
	var rec Record
	for i := 1; i <= 5; i++ {
		rec.Update(testState(float64(i)*0.01, 9))
	}
	require.Len(t, rec.Time, 5)
	assert.Equal(t, []string{"battery(1)", "resistor(2)"}, rec.Elements)
	assert.Len(t, rec.Nodes, 2)
	assert.Equal(t, [][2]int{{0, 0}, {1, 0}}, rec.Nodes[0])
	assert.Equal(t, []float64{0, -9}, rec.Voltage[4])
	assert.InDelta(t, 0.09, rec.Current[2][1], 1e-12)
	assert.NotNil(t, rec.Final)

	// 结构变化后重新记录
	st := testState(1, 9)
	st.Components = st.Components[:1]
	rec.Update(st)
	assert.Len(t, rec.Time, 1)
	assert.Equal(t, []string{"battery(1)"}, rec.Elements)
}

func TestRecordLimit(t *testing.T) {
	rec := Record{Limit: 3}
	for i := 0; i < 10; i++ {
		rec.Update(testState(float64(i), 1))
	}
	assert.Equal(t, []float64{7, 8, 9}, rec.Time)
	assert.Len(t, rec.Voltage, 3)
}

func TestRecordRender(t *testing.T) {
	var rec Record
	rec.Update(testState(0.01, 9))
	rec.SetHistory([]types.Sample{{T: 0.01, V: 9, I: 0.09}})
	var buf bytes.Buffer
	require.NoError(t, rec.Render(&buf))
	var out map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	assert.Contains(t, out, "voltage")
	assert.Len(t, out["samples"], 1)
}

func TestChartsRender(t *testing.T) {
	rec := &Record{}
	c := &Charts{Record: rec}
	assert.ErrorIs(t, c.Render(&bytes.Buffer{}), ErrEmptyRecord)
	for i := 0; i < 4; i++ {
		rec.Update(testState(float64(i)*0.01, 9))
	}
	rec.SetHistory([]types.Sample{{T: 0.01, V: 9, I: 0.09}, {T: 0.02, V: 9, I: 0.09}})
	var buf bytes.Buffer
	require.NoError(t, c.Render(&buf))
	html := buf.String()
	assert.True(t, strings.Contains(html, "node_1"))
	assert.True(t, strings.Contains(html, "resistor(2)"))
}

func TestChartsHandler(t *testing.T) {
	rec := &Record{}
	c := &Charts{Record: rec}
	w := httptest.NewRecorder()
	c.Handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	for i := 0; i < 4; i++ {
		rec.Update(testState(float64(i)*0.01, 9))
	}
	w = httptest.NewRecorder()
	c.Handler(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "node_1")
}

func TestPlotRender(t *testing.T) {
	rec := &Record{}
	for i := 0; i < 4; i++ {
		rec.Update(testState(float64(i)*0.01, float64(i)))
	}
	rec.SetHistory([]types.Sample{{T: 0, V: 0, I: 0}, {T: 0.01, V: 1, I: 0.01}})
	var buf bytes.Buffer
	require.NoError(t, NewPlot(rec, "png").Render(&buf))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}
