package mna

import (
	"math"

	"rtcircuit/maths"
	"rtcircuit/types"
)

// Matrix 方程组加盖接口
type Matrix struct {
	*maths.System
	NumNodes int // 节点数量,电压源行从此开始
}

// 在矩阵A的(i,j)位置叠加值
func (mna *Matrix) StampMatrix(i, j types.NodeID, v float64) {
	if !math.IsNaN(v) && v != 0 {
		mna.Increment(i, j, v)
	}
}

// 在右侧向量z的i位置叠加值
func (mna *Matrix) StampRightSide(i types.NodeID, v float64) {
	if !math.IsNaN(v) && v != 0 {
		mna.IncrementRight(i, v)
	}
}

// 加盖电阻元件
func (mna *Matrix) StampResistor(n1, n2 types.NodeID, r float64) {
	if !math.IsNaN(r) && r != 0 {
		mna.StampConductance(n1, n2, 1.0/r)
	}
}

// 加盖电导元件
func (mna *Matrix) StampConductance(n1, n2 types.NodeID, g float64) {
	mna.StampMatrix(n1, n1, g)
	mna.StampMatrix(n2, n2, g)
	mna.StampMatrix(n1, n2, -g)
	mna.StampMatrix(n2, n1, -g)
}

// 加盖电流源,电流由n1经元件流向n2
func (mna *Matrix) StampCurrentSource(n1, n2 types.NodeID, i float64) {
	mna.StampRightSide(n1, -i)
	mna.StampRightSide(n2, i)
}

// 加盖电压源: V(n1) - V(n2) = v
func (mna *Matrix) StampVoltageSource(n1, n2 types.NodeID, vs int, v float64) {
	vn := mna.NumNodes + vs
	mna.StampMatrix(vn, n1, 1)
	mna.StampMatrix(vn, n2, -1)
	mna.StampMatrix(n1, vn, 1)
	mna.StampMatrix(n2, vn, -1)
	mna.StampRightSide(vn, v)
}

// StampReference 参考节点电压固定为0
func (mna *Matrix) StampReference() {
	if mna.Dim() == 0 {
		return
	}
	mna.ZeroRow(types.ReferenceNodeID)
	mna.Set(types.ReferenceNodeID, types.ReferenceNodeID, 1)
	mna.SetRight(types.ReferenceNodeID, 0)
}

// StampGmin 每个节点对地并联极小电导
func (mna *Matrix) StampGmin(gmin float64) {
	for i := 0; i < mna.NumNodes; i++ {
		mna.Increment(i, i, gmin)
	}
}

// 返回节点电压
func (mna *Matrix) GetVoltage(i types.NodeID) float64 {
	if i <= types.ReferenceNodeID || i >= mna.NumNodes {
		return 0
	}
	return mna.Solution()[i]
}

// 返回电压源支路电流
func (mna *Matrix) GetSourceCurrent(vs int) float64 {
	row := mna.NumNodes + vs
	if vs < 0 || row >= mna.Dim() {
		return 0
	}
	return mna.Solution()[row]
}
