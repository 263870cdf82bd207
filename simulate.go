package circuit

import (
	"errors"

	"rtcircuit/graph"
	"rtcircuit/mna"
	"rtcircuit/types"
)

// Frame 推进一帧: 运行状态下执行固定数量的子步,返回最新快照
// 帧内(含观察者回调中)再次调用直接返回当前快照。
func (cir *Circuit) Frame() types.State {
	if cir.busy {
		return cir.Snapshot()
	}
	cir.flush()
	if cir.run != types.Running {
		return cir.Snapshot()
	}
	cir.busy = true
	defer func() { cir.busy = false }()

	solved := false
	for i := 0; i < cir.cfg.SubSteps; i++ {
		t := cir.time + cir.cfg.TimeStep
		res, ok := cir.subStep(t)
		if !ok {
			// 规模超限: 保留上一次有效结果,时间不推进
			break
		}
		cir.time = t
		cir.result = res
		solved = true
		if cir.monitor.Check(res.PeakCurrent) {
			cir.trip()
			return cir.Snapshot()
		}
	}
	if solved && len(cir.components) > 0 {
		cir.record()
	}
	cir.frame++
	if cir.frame%uint64(cir.cfg.PublishEvery) == 0 {
		cir.notify()
	}
	return cir.Snapshot()
}

// subStep 解析拓扑、组装并求解一次,读数写回元件
func (cir *Circuit) subStep(t float64) (mna.Result, bool) {
	topo, err := cir.resolver.Resolve(cir.components)
	if err != nil {
		if errors.Is(err, graph.ErrTopologyOverflow) && cir.warning == "" {
			cir.log.Printf("circuit: %v", err)
		}
		cir.warning = types.WarningCapacity
		return mna.Result{}, false
	}
	if err := cir.builder.Stamp(cir.components, topo, cir.states, t); err != nil {
		if cir.warning == "" {
			cir.log.Printf("circuit: %v", err)
		}
		cir.warning = types.WarningCapacity
		return mna.Result{}, false
	}
	cir.warning = ""
	x := cir.builder.Solve()
	if n := cir.builder.Degenerate; n > 0 && !cir.singular {
		cir.log.Printf("circuit: %d degenerate pivots, eliminated %s", n, cir.builder.String())
	}
	cir.singular = cir.builder.Degenerate > 0
	res := cir.builder.Calculate(cir.components, cir.states)
	cir.nodes = append(cir.nodes[:0], x[:topo.NodeCount]...)
	return res, true
}

// trip 熔断: 停止时间推进并立即通知
func (cir *Circuit) trip() {
	cir.run = types.Tripped
	cir.log.Printf("circuit: %s, peak current %.3g A > %.3g A",
		cir.monitor.Fault, cir.monitor.Peak, cir.monitor.Threshold)
	cir.notify()
}

// record 记录监视元件(默认第一个元件)的采样
func (cir *Circuit) record() {
	c := &cir.components[0]
	if i := cir.index(cir.selected); i >= 0 {
		c = &cir.components[i]
	}
	cir.history.Push(types.Sample{T: cir.time, V: c.VoltageDrop, I: c.Current})
}
