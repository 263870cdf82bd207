package debug

import (
	"encoding/json"
	"fmt"
	"io"
	"log"

	"rtcircuit/types"
)

// Record 记录历史状态
type Record struct {
	Nodes    [][][2]int     `json:"nodes"`    // 节点连接: 节点 -> (元件序号, 引脚)
	Elements []string       `json:"elements"` // 元件列表
	Time     []float64      `json:"time"`     // 时间列
	Voltage  [][]float64    `json:"voltage"`  // 节点电压列
	Current  [][]float64    `json:"current"`  // 元件电流列
	Power    []float64      `json:"power"`    // 总功率列
	Samples  []types.Sample `json:"samples"`  // 监视元件历史
	Final    *types.State   `json:"final"`    // 最后一次快照
	Limit    int            `json:"-"`        // 最多记录帧数,0为不限

	signature string
}

// Init 按快照初始化元件与节点连接
func (list *Record) Init(st *types.State) {
	list.Elements = list.Elements[:0]
	for _, c := range st.Components {
		list.Elements = append(list.Elements, fmt.Sprintf("%s(%d)", c.Type, c.ID))
	}
	list.Nodes = make([][][2]int, len(st.NodeVoltages))
	for i, c := range st.Components {
		for pin, n := range c.Nodes {
			if n >= 0 && n < len(list.Nodes) {
				list.Nodes[n] = append(list.Nodes[n], [2]int{i, pin})
			}
		}
	}
	list.Time = list.Time[:0]
	list.Voltage = list.Voltage[:0]
	list.Current = list.Current[:0]
	list.Power = list.Power[:0]
	list.signature = shape(st)
}

// Update 记录一帧数据,元件或节点数量变化时重新初始化
func (list *Record) Update(st types.State) {
	if shape(&st) != list.signature {
		list.Init(&st)
	}
	if list.Limit > 0 && len(list.Time) >= list.Limit {
		list.Time = list.Time[1:]
		list.Voltage = list.Voltage[1:]
		list.Current = list.Current[1:]
		list.Power = list.Power[1:]
	}
	list.Time = append(list.Time, st.Time)
	list.Voltage = append(list.Voltage, append([]float64{}, st.NodeVoltages...))
	current := make([]float64, len(st.Components))
	for i, c := range st.Components {
		current[i] = c.Current
	}
	list.Current = append(list.Current, current)
	list.Power = append(list.Power, st.TotalPower)
	list.Final = &st
}

// SetHistory 记录监视元件的历史采样
func (list *Record) SetHistory(samples []types.Sample) {
	list.Samples = append(list.Samples[:0], samples...)
}

// Render 格式和输出内容
func (list *Record) Render(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(list)
}

func (list *Record) Error(err error) { log.Println(err) }

// shape 元件与节点的结构指纹
func shape(st *types.State) string {
	s := fmt.Sprintf("%d/%d", len(st.Components), len(st.NodeVoltages))
	for _, c := range st.Components {
		s += fmt.Sprintf(";%d:%d,%d", c.ID, c.Nodes[0], c.Nodes[1])
	}
	return s
}
