package types

import "math"

// Component 放置在场景中的元件
type Component struct {
	ID             ElementID   `json:"id"`                       // 元件ID
	Type           ElementType `json:"type"`                     // 元件类型
	Pos            Vec3        `json:"pos"`                      // 中心位置
	Rotation       float64     `json:"rotation"`                 // 旋转角(弧度)
	PinOffset      float64     `json:"pinOffset"`                // 引脚偏移
	Value          float64     `json:"value"`                    // 主值
	Frequency      float64     `json:"frequency,omitempty"`      // 交流频率
	IsOpen         bool        `json:"isOpen,omitempty"`         // 开关断开
	ExternalFactor float64     `json:"externalFactor,omitempty"` // 环境因子[0,1]

	// 以下字段只由求解器写入
	Current     float64   `json:"current"`     // 电流
	VoltageDrop float64   `json:"voltageDrop"` // 压降
	Power       float64   `json:"power"`       // 功率
	Nodes       [2]NodeID `json:"nodes"`       // 两端节点
}

// Pins 两个引脚的空间坐标
func (c *Component) Pins() (p0, p1 Vec3) {
	d := Vec3{math.Cos(c.Rotation) * c.PinOffset, 0, math.Sin(c.Rotation) * c.PinOffset}
	return c.Pos.Sub(d), c.Pos.Add(d)
}

// ClearOutputs 清空求解器输出
func (c *Component) ClearOutputs() {
	c.Current = 0
	c.VoltageDrop = 0
	c.Power = 0
	c.Nodes = [2]NodeID{}
}
