package mna

import (
	"math"

	"rtcircuit/element"
	"rtcircuit/graph"
	"rtcircuit/maths"
	"rtcircuit/types"
)

// States 储能元件状态: 电容为上次端电压,电感为上次支路电流
type States map[types.ElementID]float64

// Result 一次子步的汇总结果
type Result struct {
	PeakCurrent  float64 // 非电源元件的最大电流(未钳位)
	TotalPower   float64 // 非电源元件功率之和
	TotalCurrent float64 // 电压源电流绝对值之和
}

// Builder MNA方程组装器,缓冲按最大规模预分配
type Builder struct {
	Matrix
	Gmin     float64 // 节点对地电导
	TimeStep float64 // 伴随模型步长
	Clamp    float64 // 输出电流钳位

	topo *graph.Topology
}

// NewBuilder 创建组装器
func NewBuilder(maxSize int, timeStep float64) (*Builder, error) {
	sys, err := maths.NewSystem(maxSize, types.PivotFloor)
	if err != nil {
		return nil, err
	}
	return &Builder{
		Matrix:   Matrix{System: sys},
		Gmin:     types.Gmin,
		TimeStep: timeStep,
		Clamp:    types.CurrentClamp,
	}, nil
}

// Stamp 按拓扑与元件列表组装 A·x = z, t 为当前仿真时刻
func (b *Builder) Stamp(components []types.Component, topo *graph.Topology, states States, t float64) error {
	if err := b.Reset(topo.Size()); err != nil {
		return err
	}
	b.topo = topo
	b.NumNodes = topo.NodeCount
	for i := range components {
		b.stampElement(&components[i], topo.Nodes[i], topo.SourceRow[i], states, t)
	}
	b.StampReference()
	b.StampGmin(b.Gmin)
	return nil
}

// stampElement 单个元件的线性贡献
func (b *Builder) stampElement(c *types.Component, nodes [2]types.NodeID, vs int, states States, t float64) {
	n1, n2 := nodes[0], nodes[1]
	if element.IsResistive(c.Type) {
		b.StampResistor(n1, n2, element.Resistance(c))
		return
	}
	switch c.Type {
	case types.TypeSwitch:
		b.StampConductance(n1, n2, element.SwitchConductance(c))
	case types.TypeCapacitor:
		// 后向欧拉: g = C/dt, 等效电流源 g·v(n-1)
		g := element.Capacitance(c) / b.TimeStep
		b.StampConductance(n1, n2, g)
		b.StampCurrentSource(n2, n1, g*states[c.ID])
	case types.TypeInductor:
		// 后向欧拉: g = dt/L, 等效电流源 i(n-1)
		g := b.TimeStep / element.Inductance(c)
		b.StampConductance(n1, n2, g)
		b.StampCurrentSource(n1, n2, states[c.ID])
	case types.TypeBattery, types.TypeACSource:
		if vs >= 0 {
			b.StampVoltageSource(n1, n2, vs, element.SourceValue(c, t))
		}
	}
}

// Calculate 由解向量计算元件读数并推进储能元件状态
func (b *Builder) Calculate(components []types.Component, states States) Result {
	var res Result
	for i := range components {
		c := &components[i]
		nodes := b.topo.Nodes[i]
		vDiff := b.GetVoltage(nodes[0]) - b.GetVoltage(nodes[1])
		current := b.current(c, vDiff, b.topo.SourceRow[i], states)
		if !element.IsVoltageSource(c.Type) {
			if abs := math.Abs(current); abs > res.PeakCurrent {
				res.PeakCurrent = abs
			}
		} else {
			res.TotalCurrent += finite(math.Abs(current))
		}
		c.Nodes = nodes
		c.VoltageDrop = math.Abs(vDiff)
		c.Power = finite(c.VoltageDrop * math.Abs(current))
		if !element.IsVoltageSource(c.Type) {
			res.TotalPower += c.Power
		}
		c.Current = math.Max(-b.Clamp, math.Min(b.Clamp, finite(current)))
	}
	return res
}

// current 单个元件电流,方向由 n1 流向 n2
func (b *Builder) current(c *types.Component, vDiff float64, vs int, states States) float64 {
	if element.IsResistive(c.Type) {
		return vDiff / element.Resistance(c)
	}
	switch c.Type {
	case types.TypeSwitch:
		return vDiff * element.SwitchConductance(c)
	case types.TypeCapacitor:
		g := element.Capacitance(c) / b.TimeStep
		i := g * (vDiff - states[c.ID])
		states[c.ID] = vDiff
		return i
	case types.TypeInductor:
		g := b.TimeStep / element.Inductance(c)
		i := states[c.ID] + g*vDiff
		states[c.ID] = finite(i)
		return i
	case types.TypeBattery, types.TypeACSource:
		return b.GetSourceCurrent(vs)
	}
	return 0
}

// finite 非有限值按0处理
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
