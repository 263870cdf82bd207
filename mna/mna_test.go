package mna

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rtcircuit/element"
	"rtcircuit/graph"
	"rtcircuit/maths"
	"rtcircuit/types"
)

// newComponent 在x处放置一个默认元件
func newComponent(t *testing.T, id types.ElementID, kind types.ElementType, x float64) types.Component {
	t.Helper()
	c, ok := element.Defaults(kind)
	require.True(t, ok)
	c.ID = id
	c.Pos = types.Vec3{x, 0, 0}
	return c
}

// step 解析拓扑并完成一次组装、求解、读数
func step(t *testing.T, b *Builder, comps []types.Component, states States, tm float64) Result {
	t.Helper()
	topo := graph.Build(comps, types.SnapDistance)
	require.NoError(t, b.Stamp(comps, topo, states, tm))
	b.Solve()
	return b.Calculate(comps, states)
}

func TestBatteryResistorLoop(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	comps := []types.Component{
		newComponent(t, 1, types.TypeBattery, 0),
		newComponent(t, 2, types.TypeResistor, 0),
	}
	res := step(t, b, comps, States{}, 0)

	assert.InDelta(t, 9.0/220, math.Abs(comps[1].Current), 1e-6)
	assert.InDelta(t, 81.0/220, comps[1].Power, 1e-5)
	assert.InDelta(t, 9, comps[1].VoltageDrop, 1e-6)
	assert.InDelta(t, 9.0/220, res.TotalCurrent, 1e-6)
	assert.InDelta(t, 81.0/220, res.TotalPower, 1e-5)
	assert.InDelta(t, 9.0/220, res.PeakCurrent, 1e-6)
	// 电源电流与负载电流大小相同
	assert.InDelta(t, math.Abs(comps[0].Current), math.Abs(comps[1].Current), 1e-9)
}

func TestNoSources(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	comps := []types.Component{
		newComponent(t, 1, types.TypeResistor, 0),
		newComponent(t, 2, types.TypeBulb, 1),
		newComponent(t, 3, types.TypeInductor, 2),
		newComponent(t, 4, types.TypeCapacitor, 7),
	}
	res := step(t, b, comps, States{}, 0)
	for _, v := range b.Solution() {
		assert.Zero(t, v)
	}
	for _, c := range comps {
		assert.Zero(t, c.Current, "元件 %d", c.ID)
	}
	assert.Zero(t, res.TotalPower)
	assert.Zero(t, res.PeakCurrent)
}

func TestSeriesOrder(t *testing.T) {
	// 矩形回路: 左侧电池,底边两个串联电阻,右侧与顶边为导线
	run := func(first, second float64) Result {
		b, err := NewBuilder(types.MaxSize, types.TimeStep)
		require.NoError(t, err)
		batt := newComponent(t, 1, types.TypeBattery, 0)
		batt.Rotation = math.Pi / 2
		batt.Pos = types.Vec3{0, 0, 0.5}
		r1 := newComponent(t, 2, types.TypeResistor, 0.5)
		r1.Value = first
		r2 := newComponent(t, 3, types.TypeResistor, 1.5)
		r2.Value = second
		right := newComponent(t, 4, types.TypeWire, 0)
		right.Rotation = math.Pi / 2
		right.Pos = types.Vec3{2, 0, 0.5}
		top := newComponent(t, 5, types.TypeWire, 0)
		top.Pos = types.Vec3{1, 0, 1}
		top.PinOffset = 1
		return step(t, b, []types.Component{batt, r1, r2, right, top}, States{}, 0)
	}
	a := run(100, 300)
	c := run(300, 100)
	assert.InDelta(t, 9.0/400, a.TotalCurrent, 1e-6)
	assert.InDelta(t, 81.0/400, a.TotalPower, 1e-5)
	assert.InDelta(t, a.TotalCurrent, c.TotalCurrent, 1e-9)
	assert.InDelta(t, a.TotalPower, c.TotalPower, 1e-9)
}

func TestCapacitorHoldsWhenIsolated(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	comps := []types.Component{newComponent(t, 1, types.TypeCapacitor, 0)}
	states := States{1: 5}
	for i := 0; i < 10000; i++ {
		step(t, b, comps, states, float64(i)*types.TimeStep)
		require.False(t, math.IsNaN(states[1]) || math.IsInf(states[1], 0))
	}
	assert.InDelta(t, 5, states[1], 1e-3)
}

func TestCapacitorDischarge(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	r := newComponent(t, 2, types.TypeResistor, 0)
	r.Value = 1000
	comps := []types.Component{newComponent(t, 1, types.TypeCapacitor, 0), r}
	states := States{1: 5}
	prev := math.Abs(states[1])
	for i := 0; i < 10000; i++ {
		step(t, b, comps, states, float64(i)*types.TimeStep)
		v := math.Abs(states[1])
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		require.LessOrEqual(t, v, prev)
		prev = v
	}
	assert.Less(t, prev, 1e-6)
}

func TestInductorRamp(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	comps := []types.Component{
		newComponent(t, 1, types.TypeBattery, 0),
		newComponent(t, 2, types.TypeInductor, 0),
	}
	states := States{}
	for i := 0; i < 3; i++ {
		step(t, b, comps, states, float64(i)*types.TimeStep)
	}
	// di = dt/L·V 每步
	assert.InDelta(t, 3*types.TimeStep/0.1*9, math.Abs(states[2]), 1e-6)
	assert.InDelta(t, math.Abs(states[2]), math.Abs(comps[2].Current), 1e-9)
}

func TestOpenSwitch(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	comps := []types.Component{
		newComponent(t, 1, types.TypeBattery, 0),
		newComponent(t, 2, types.TypeSwitch, 0),
	}
	step(t, b, comps, States{}, 0)
	assert.InDelta(t, 9*types.SwitchOpenG, math.Abs(comps[1].Current), 1e-12)

	comps[1].IsOpen = false
	res := step(t, b, comps, States{}, 0)
	assert.InDelta(t, 9*types.SwitchClosedG, res.PeakCurrent, 1e-3)
	assert.InDelta(t, types.CurrentClamp, math.Abs(comps[1].Current), 1e-9)
}

func TestShortCircuitClamp(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	comps := []types.Component{
		newComponent(t, 1, types.TypeBattery, 0),
		newComponent(t, 2, types.TypeWire, 0),
	}
	res := step(t, b, comps, States{}, 0)
	assert.Greater(t, res.PeakCurrent, types.TripCurrent)
	assert.InDelta(t, types.CurrentClamp, math.Abs(comps[1].Current), 1e-9)
	assert.InDelta(t, types.CurrentClamp, math.Abs(comps[0].Current), 1e-9)
}

func TestACSource(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	src := newComponent(t, 1, types.TypeACSource, 0)
	r := newComponent(t, 2, types.TypeResistor, 0)
	r.Value = 1000
	comps := []types.Component{src, r}
	// 2Hz 四分之一周期处为峰值
	step(t, b, comps, States{}, 0.125)
	assert.InDelta(t, src.Value, comps[1].VoltageDrop, 1e-6)
	step(t, b, comps, States{}, 0)
	assert.InDelta(t, 0, comps[1].VoltageDrop, 1e-9)
}

func TestReferenceRow(t *testing.T) {
	b, err := NewBuilder(types.MaxSize, types.TimeStep)
	require.NoError(t, err)
	comps := []types.Component{
		newComponent(t, 1, types.TypeBattery, 0),
		newComponent(t, 2, types.TypeResistor, 0),
	}
	topo := graph.Build(comps, types.SnapDistance)
	require.NoError(t, b.Stamp(comps, topo, States{}, 0))
	assert.InDelta(t, 1, b.Get(0, 0), 1e-9)
	for j := 1; j < b.Dim(); j++ {
		assert.Zero(t, b.Get(0, j))
	}
	assert.Zero(t, b.GetRight(0))
	assert.InDelta(t, 9, b.GetRight(topo.NodeCount), 1e-12)
}

func TestStampOverflow(t *testing.T) {
	b, err := NewBuilder(2, types.TimeStep)
	require.NoError(t, err)
	comps := []types.Component{
		newComponent(t, 1, types.TypeBattery, 0),
		newComponent(t, 2, types.TypeResistor, 0),
	}
	topo := graph.Build(comps, types.SnapDistance)
	err = b.Stamp(comps, topo, States{}, 0)
	assert.True(t, errors.Is(err, maths.ErrDimension))
}
