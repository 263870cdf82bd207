package types

import "strconv"

// RunState 仿真运行状态
type RunState uint8

// 状态机
const (
	Stopped RunState = iota // 暂停
	Running                 // 运行
	Tripped                 // 保险丝熔断
)

// String 状态名称
func (s RunState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Running:
		return "running"
	case Tripped:
		return "tripped"
	}
	return "unknown"
}

// Sample 历史采样
type Sample struct {
	T float64 `json:"t"` // 仿真时间
	V float64 `json:"V"` // 监视元件压降
	I float64 `json:"I"` // 监视元件电流
}

// State 对外发布的电路快照
type State struct {
	Components   []Component        `json:"components"`   // 元件列表
	Nodes        map[string]float64 `json:"nodes"`        // 节点电压(按名称)
	NodeVoltages []float64          `json:"nodeVoltages"` // 节点电压(按索引)
	RunState     RunState           `json:"-"`            // 状态机
	IsPlaying    bool               `json:"isPlaying"`    // 运行中
	IsTripped    bool               `json:"isTripped"`    // 熔断
	Fault        string             `json:"error"`        // 熔断原因
	Warning      string             `json:"warning"`      // 容量警告
	TotalPower   float64            `json:"totalPower"`   // 总功率
	TotalCurrent float64            `json:"totalCurrent"` // 总电流
	SelectedID   ElementID          `json:"selectedId"`   // 当前监视元件
	Time         float64            `json:"time"`         // 仿真时间
	Frame        uint64             `json:"frame"`        // 帧计数
}

// NodeName 节点名称
func NodeName(n NodeID) string {
	return "node_" + strconv.Itoa(n)
}
