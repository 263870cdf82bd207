package graph

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/traverse"

	"rtcircuit/element"
	"rtcircuit/types"
)

// ErrTopologyOverflow 节点数与电压源数之和超过可解规模
var ErrTopologyOverflow = errors.New("graph: topology exceeds maximum solvable size")

// Topology 拓扑解析结果
type Topology struct {
	Signature  string            // 拓扑签名
	PinNodes   []types.NodeID    // 引脚节点: 元件i的引脚为 2i 与 2i+1
	Nodes      [][2]types.NodeID // 元件两端节点
	NodeCount  int               // 节点数量(含参考节点)
	VoltSource []int             // 电压源元件索引
	SourceRow  []int             // 元件索引 -> 电压源序号, 非电压源为 -1
}

// Size 方程规模
func (topo *Topology) Size() int { return topo.NodeCount + len(topo.VoltSource) }

// Resolver 拓扑解析器,按签名缓存结果
type Resolver struct {
	SnapDistance float64 // 引脚吸附距离
	MaxSize      int     // 最大方程规模

	cache  *Topology
	builds int
}

// NewResolver 创建解析器
func NewResolver(snapDistance float64, maxSize int) *Resolver {
	return &Resolver{SnapDistance: snapDistance, MaxSize: maxSize}
}

// Builds 完整重建次数
func (res *Resolver) Builds() int { return res.builds }

// Invalidate 丢弃缓存
func (res *Resolver) Invalidate() { res.cache = nil }

// Resolve 解析元件列表的拓扑。
// 签名未变时直接返回缓存; 规模超限时返回结果与 ErrTopologyOverflow,调用方不得求解。
func (res *Resolver) Resolve(components []types.Component) (*Topology, error) {
	sig := Signature(components)
	if res.cache == nil || res.cache.Signature != sig {
		res.cache = Build(components, res.SnapDistance)
		res.cache.Signature = sig
		res.builds++
	}
	if res.MaxSize > 0 && res.cache.Size() > res.MaxSize {
		return res.cache, fmt.Errorf("%w: %d nodes + %d sources > %d",
			ErrTopologyOverflow, res.cache.NodeCount, len(res.cache.VoltSource), res.MaxSize)
	}
	return res.cache, nil
}

// Signature 连接相关字段的指纹(含类型,决定是否占用电压源行),位置按 SignatureStep 取整
func Signature(components []types.Component) string {
	var sb strings.Builder
	sb.Grow(16 + len(components)*48)
	sb.WriteString(strconv.Itoa(len(components)))
	sb.WriteByte(':')
	for i := range components {
		c := &components[i]
		pos := c.Pos.Round(types.SignatureStep)
		sb.WriteString(strconv.Itoa(c.ID))
		sb.WriteByte(',')
		sb.WriteString(c.Type.String())
		for _, v := range pos {
			sb.WriteByte(',')
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatBool(c.IsOpen))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(c.Rotation, 'g', -1, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(c.PinOffset, 'g', -1, 64))
		sb.WriteByte(';')
	}
	return sb.String()
}

// Build 由空间位置合并引脚为节点(不使用缓存)
func Build(components []types.Component, snapDistance float64) *Topology {
	n := len(components)
	topo := &Topology{
		PinNodes:  make([]types.NodeID, 2*n),
		Nodes:     make([][2]types.NodeID, n),
		SourceRow: make([]int, n),
	}
	if n == 0 {
		return topo
	}
	// 引脚坐标
	pins := make([]types.Vec3, 2*n)
	for i := range components {
		pins[2*i], pins[2*i+1] = components[i].Pins()
	}
	// 距离小于阈值的引脚相连
	g := simple.NewUndirectedGraph()
	for i := range pins {
		g.AddNode(simple.Node(i))
	}
	snapSq := snapDistance * snapDistance
	for i := range pins {
		for j := i + 1; j < len(pins); j++ {
			if pins[i].DistSq(pins[j]) < snapSq {
				g.SetEdge(g.NewEdge(simple.Node(i), simple.Node(j)))
			}
		}
	}
	// 广度优先标记连通分量,按引脚顺序分配节点号
	for i := range topo.PinNodes {
		topo.PinNodes[i] = types.UnresolvedNode
	}
	var bf traverse.BreadthFirst
	for i := range pins {
		if topo.PinNodes[i] != types.UnresolvedNode {
			continue
		}
		node := topo.NodeCount
		topo.NodeCount++
		bf.Walk(g, simple.Node(i), func(pin graph.Node, _ int) bool {
			topo.PinNodes[pin.ID()] = node
			return false
		})
	}
	// 参考节点: 首个接地元件,否则首个电压源,否则节点0
	if ref := reference(components, topo.PinNodes); ref > 0 {
		for k, v := range topo.PinNodes {
			switch v {
			case types.ReferenceNodeID:
				topo.PinNodes[k] = ref
			case ref:
				topo.PinNodes[k] = types.ReferenceNodeID
			}
		}
	}
	for i := range components {
		topo.Nodes[i] = [2]types.NodeID{topo.PinNodes[2*i], topo.PinNodes[2*i+1]}
		topo.SourceRow[i] = -1
		if element.IsVoltageSource(components[i].Type) {
			topo.SourceRow[i] = len(topo.VoltSource)
			topo.VoltSource = append(topo.VoltSource, i)
		}
	}
	return topo
}

// reference 选取参考节点的原始编号
func reference(components []types.Component, pinNodes []types.NodeID) types.NodeID {
	for i := range components {
		if components[i].Type == types.TypeGround {
			return pinNodes[2*i]
		}
	}
	for i := range components {
		if element.IsVoltageSource(components[i].Type) {
			return pinNodes[2*i]
		}
	}
	return types.ReferenceNodeID
}
