package types

import "math"

// NodeID 节点
type NodeID = int

// ElementID 元件
type ElementID = int

// NoElement 未选择任何元件
const NoElement ElementID = 0

// Vec3 空间坐标
type Vec3 [3]float64

// Add 向量相加
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }

// Sub 向量相减
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }

// DistSq 距离平方
func (v Vec3) DistSq(o Vec3) float64 {
	dx, dy, dz := v[0]-o[0], v[1]-o[1], v[2]-o[2]
	return dx*dx + dy*dy + dz*dz
}

// Round 按步长取整,用于拓扑签名
func (v Vec3) Round(step float64) Vec3 {
	return Vec3{
		math.Round(v[0]/step) * step,
		math.Round(v[1]/step) * step,
		math.Round(v[2]/step) * step,
	}
}
