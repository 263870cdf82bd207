package circuit

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"slices"

	"rtcircuit/element"
	"rtcircuit/graph"
	"rtcircuit/mna"
	"rtcircuit/types"
)

// 操作错误
var (
	ErrUnknownComponent   = errors.New("circuit: unknown component")
	ErrUnknownKind        = errors.New("circuit: unknown component kind")
	ErrDuplicateComponent = errors.New("circuit: duplicate component id")
	ErrTripped            = errors.New("circuit: fuse tripped, reset fuse first")
)

// Circuit 电路仿真上下文
// 所有操作在同一逻辑线程上调用,不可并发使用。
type Circuit struct {
	cfg    Config
	log    *log.Logger
	rand   *rand.Rand
	nextID types.ElementID

	components []types.Component // 元件列表(含最近一次读数)
	states     mna.States        // 储能元件状态
	resolver   *graph.Resolver   // 拓扑缓存
	builder    *mna.Builder      // 方程组装
	monitor    Monitor           // 过流保护
	history    *History          // 监视元件历史

	run      types.RunState
	selected types.ElementID
	time     float64
	frame    uint64
	nodes    []float64 // 最近一次节点电压
	result   mna.Result
	warning  string
	singular bool // 上次求解存在退化主元

	busy      bool                     // 帧执行或通知中
	pending   []func()                 // 延迟到下一帧的修改
	placing   map[types.ElementID]bool // 已受理尚未插入的ID
	observers []func(types.State)
}

// New 创建仿真上下文
func New(cfg Config) (*Circuit, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	builder, err := mna.NewBuilder(cfg.MaxSize, cfg.TimeStep)
	if err != nil {
		return nil, err
	}
	builder.Gmin = cfg.Gmin
	builder.PivotFloor = cfg.PivotFloor
	builder.Clamp = cfg.CurrentClamp
	return &Circuit{
		cfg:      cfg,
		log:      cfg.Logger,
		rand:     cfg.Rand,
		nextID:   1,
		states:   mna.States{},
		resolver: graph.NewResolver(cfg.SnapDistance, cfg.MaxSize),
		builder:  builder,
		monitor:  Monitor{Threshold: cfg.TripCurrent},
		history:  NewHistory(cfg.HistorySize),
		run:      types.Running,
		placing:  map[types.ElementID]bool{},
	}, nil
}

// Config 当前参数
func (cir *Circuit) Config() Config { return cir.cfg }

// apply 帧执行期间的修改延迟到下一帧开始时执行
func (cir *Circuit) apply(fn func()) {
	if cir.busy {
		cir.pending = append(cir.pending, fn)
		return
	}
	fn()
}

// flush 执行延迟的修改
func (cir *Circuit) flush() {
	for len(cir.pending) > 0 {
		pending := cir.pending
		cir.pending = nil
		for _, fn := range pending {
			fn()
		}
	}
}

// index 元件在列表中的位置
func (cir *Circuit) index(id types.ElementID) int {
	return slices.IndexFunc(cir.components, func(c types.Component) bool { return c.ID == id })
}

// Add 按类型新增元件,填充默认值并分配ID
func (cir *Circuit) Add(kind types.ElementType) (types.ElementID, error) {
	c, ok := element.Defaults(kind)
	if !ok {
		return types.NoElement, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	c.ID = cir.nextID
	cir.nextID++
	cir.apply(func() {
		jitter := func() float64 { return (cir.rand.Float64() - 0.5) * 0.2 }
		count := float64(len(cir.components))
		c.Pos = types.Vec3{count*0.5 + jitter(), 0, jitter()}
		cir.components = append(cir.components, c)
	})
	return c.ID, nil
}

// Place 插入完整的元件记录,ID为0时自动分配
func (cir *Circuit) Place(c types.Component) (types.ElementID, error) {
	if _, ok := element.Lookup(c.Type); !ok {
		return types.NoElement, fmt.Errorf("%w: %s", ErrUnknownKind, c.Type)
	}
	switch {
	case c.ID == types.NoElement:
		c.ID = cir.nextID
	case c.ID < 0:
		return types.NoElement, fmt.Errorf("%w: %d", ErrUnknownComponent, c.ID)
	case cir.index(c.ID) >= 0 || cir.placing[c.ID]:
		return types.NoElement, fmt.Errorf("%w: %d", ErrDuplicateComponent, c.ID)
	}
	cir.nextID = max(cir.nextID, c.ID+1)
	c.ClearOutputs()
	cir.placing[c.ID] = true
	cir.apply(func() {
		delete(cir.placing, c.ID)
		if cir.index(c.ID) < 0 {
			cir.components = append(cir.components, c)
		}
	})
	return c.ID, nil
}

// Remove 删除元件及其状态
func (cir *Circuit) Remove(id types.ElementID) error {
	if cir.index(id) < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownComponent, id)
	}
	cir.apply(func() {
		if i := cir.index(id); i >= 0 {
			cir.components = slices.Delete(cir.components, i, i+1)
		}
		delete(cir.states, id)
		if cir.selected == id {
			cir.selected = types.NoElement
		}
	})
	return nil
}

// update 修改单个元件
func (cir *Circuit) update(id types.ElementID, fn func(c *types.Component)) error {
	if cir.index(id) < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownComponent, id)
	}
	cir.apply(func() {
		if i := cir.index(id); i >= 0 {
			fn(&cir.components[i])
		}
	})
	return nil
}

// SetValue 修改主值
func (cir *Circuit) SetValue(id types.ElementID, value float64) error {
	return cir.update(id, func(c *types.Component) { c.Value = value })
}

// SetFrequency 修改交流频率
func (cir *Circuit) SetFrequency(id types.ElementID, freq float64) error {
	return cir.update(id, func(c *types.Component) { c.Frequency = freq })
}

// SetExternalFactor 修改环境因子(光照/温度)
func (cir *Circuit) SetExternalFactor(id types.ElementID, factor float64) error {
	return cir.update(id, func(c *types.Component) { c.ExternalFactor = factor })
}

// SetRotation 修改旋转角
func (cir *Circuit) SetRotation(id types.ElementID, rotation float64) error {
	return cir.update(id, func(c *types.Component) { c.Rotation = rotation })
}

// SetPosition 修改位置
func (cir *Circuit) SetPosition(id types.ElementID, pos types.Vec3) error {
	return cir.update(id, func(c *types.Component) { c.Pos = pos })
}

// ToggleSwitch 切换开关状态
func (cir *Circuit) ToggleSwitch(id types.ElementID) error {
	return cir.update(id, func(c *types.Component) { c.IsOpen = !c.IsOpen })
}

// SetStateVariable 设置储能元件状态(电容电压/电感电流)
func (cir *Circuit) SetStateVariable(id types.ElementID, v float64) error {
	return cir.update(id, func(c *types.Component) { cir.states[c.ID] = v })
}

// StateVariable 读取储能元件状态
func (cir *Circuit) StateVariable(id types.ElementID) float64 { return cir.states[id] }

// Select 选择监视元件, NoElement 取消选择
func (cir *Circuit) Select(id types.ElementID) error {
	if id != types.NoElement && cir.index(id) < 0 {
		return fmt.Errorf("%w: %d", ErrUnknownComponent, id)
	}
	cir.apply(func() { cir.selected = id })
	return nil
}

// SetPlaying 运行或暂停,熔断状态下必须先复位保险丝
func (cir *Circuit) SetPlaying(playing bool) error {
	if playing && cir.run == types.Tripped {
		return ErrTripped
	}
	cir.apply(func() {
		switch {
		case cir.run == types.Tripped:
		case playing:
			cir.run = types.Running
		default:
			cir.run = types.Stopped
		}
		cir.notify()
	})
	return nil
}

// ResetFuse 清除熔断,保持暂停
func (cir *Circuit) ResetFuse() {
	cir.apply(func() {
		if cir.run == types.Tripped {
			cir.log.Printf("circuit: fuse reset after %s (%.3g A)", cir.monitor.Fault, cir.monitor.Peak)
		}
		cir.monitor.Clear()
		cir.run = types.Stopped
		cir.notify()
	})
}

// Reset 清空元件、状态与历史,回到初始状态
func (cir *Circuit) Reset() {
	cir.apply(func() {
		cir.components = nil
		clear(cir.states)
		cir.history.Clear()
		cir.resolver.Invalidate()
		cir.monitor.Clear()
		cir.run = types.Running
		cir.selected = types.NoElement
		cir.time = 0
		cir.frame = 0
		cir.nodes = nil
		cir.result = mna.Result{}
		cir.warning = ""
		cir.singular = false
		cir.log.Println("circuit: reset")
		cir.notify()
	})
}

// Subscribe 注册观察者,返回取消函数
// 观察者在帧内被调用,其中的修改操作延迟到下一帧。
func (cir *Circuit) Subscribe(fn func(types.State)) (cancel func()) {
	cir.observers = append(cir.observers, fn)
	i := len(cir.observers) - 1
	return func() { cir.observers[i] = nil }
}

// notify 通知观察者
func (cir *Circuit) notify() {
	if len(cir.observers) == 0 {
		return
	}
	st := cir.Snapshot()
	busy := cir.busy
	cir.busy = true
	for _, fn := range cir.observers {
		if fn != nil {
			fn(st)
		}
	}
	cir.busy = busy
}

// Components 元件列表副本
func (cir *Circuit) Components() []types.Component {
	return slices.Clone(cir.components)
}

// Component 查询单个元件
func (cir *Circuit) Component(id types.ElementID) (types.Component, bool) {
	if i := cir.index(id); i >= 0 {
		return cir.components[i], true
	}
	return types.Component{}, false
}

// NodeVoltages 按名称的节点电压
func (cir *Circuit) NodeVoltages() map[string]float64 {
	nodes := make(map[string]float64, len(cir.nodes))
	for i, v := range cir.nodes {
		nodes[types.NodeName(i)] = v
	}
	return nodes
}

// History 监视元件历史采样
func (cir *Circuit) History() []types.Sample { return cir.history.Samples() }

// Resolves 拓扑完整重建次数
func (cir *Circuit) Resolves() int { return cir.resolver.Builds() }

// RunState 当前状态机状态
func (cir *Circuit) RunState() types.RunState { return cir.run }

// Time 仿真时间
func (cir *Circuit) Time() float64 { return cir.time }

// Snapshot 当前电路快照
func (cir *Circuit) Snapshot() types.State {
	return types.State{
		Components:   cir.Components(),
		Nodes:        cir.NodeVoltages(),
		NodeVoltages: slices.Clone(cir.nodes),
		RunState:     cir.run,
		IsPlaying:    cir.run == types.Running,
		IsTripped:    cir.run == types.Tripped,
		Fault:        cir.monitor.Fault,
		Warning:      cir.warning,
		TotalPower:   cir.result.TotalPower,
		TotalCurrent: cir.result.TotalCurrent,
		SelectedID:   cir.selected,
		Time:         cir.time,
		Frame:        cir.frame,
	}
}
