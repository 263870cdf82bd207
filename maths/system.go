package maths

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ErrDimension 方程规模超出预分配容量
var ErrDimension = errors.New("maths: system dimension out of range")

// System 预分配的稠密线性系统 A·x = z
// 缓冲按最大规模一次分配,每次求解只清零实际使用的 n×n 区域。
type System struct {
	A *mat.Dense    // 系数矩阵 max×max
	Z *mat.VecDense // 右侧向量
	X *mat.VecDense // 解向量

	a      []float64 // A 的底层数据
	z      []float64 // Z 的底层数据
	x      []float64 // X 的底层数据
	stride int       // A 的行跨度
	max    int       // 最大规模
	n      int       // 当前规模

	PivotFloor float64 // 主元下限,低于此值视为退化行
	Degenerate int     // 上次求解遇到的退化主元数量
}

// NewSystem 创建最大规模为 max 的线性系统
func NewSystem(max int, pivotFloor float64) (*System, error) {
	if max < 1 {
		return nil, fmt.Errorf("%w: max %d", ErrDimension, max)
	}
	sys := &System{
		A:          mat.NewDense(max, max, nil),
		Z:          mat.NewVecDense(max, nil),
		X:          mat.NewVecDense(max, nil),
		max:        max,
		PivotFloor: pivotFloor,
	}
	raw := sys.A.RawMatrix()
	sys.a, sys.stride = raw.Data, raw.Stride
	sys.z = sys.Z.RawVector().Data
	sys.x = sys.X.RawVector().Data
	return sys, nil
}

// Dim 当前规模
func (sys *System) Dim() int { return sys.n }

// Reset 设置当前规模并清零使用区域
func (sys *System) Reset(n int) error {
	if n < 0 || n > sys.max {
		return fmt.Errorf("%w: %d > %d", ErrDimension, n, sys.max)
	}
	sys.n = n
	for i := 0; i < n; i++ {
		clear(sys.a[i*sys.stride : i*sys.stride+n])
	}
	clear(sys.z[:n])
	clear(sys.x[:n])
	sys.Degenerate = 0
	return nil
}

// Get 读取 A(i,j)
func (sys *System) Get(i, j int) float64 { return sys.a[i*sys.stride+j] }

// Increment 在 A(i,j) 叠加值
func (sys *System) Increment(i, j int, v float64) { sys.a[i*sys.stride+j] += v }

// Set 设置 A(i,j)
func (sys *System) Set(i, j int, v float64) { sys.a[i*sys.stride+j] = v }

// ZeroRow 清零 A 的第 i 行(使用区域内)
func (sys *System) ZeroRow(i int) {
	clear(sys.a[i*sys.stride : i*sys.stride+sys.n])
}

// GetRight 读取 z(i)
func (sys *System) GetRight(i int) float64 { return sys.z[i] }

// IncrementRight 在 z(i) 叠加值
func (sys *System) IncrementRight(i int, v float64) { sys.z[i] += v }

// SetRight 设置 z(i)
func (sys *System) SetRight(i int, v float64) { sys.z[i] = v }

// Solution 上次求解的结果(视图,不复制)
func (sys *System) Solution() []float64 { return sys.x[:sys.n] }

// View 当前使用区域的矩阵与右侧向量视图
func (sys *System) View() (mat.Matrix, mat.Vector) {
	if sys.n == 0 {
		return nil, nil
	}
	return sys.A.Slice(0, sys.n, 0, sys.n), sys.Z.SliceVec(0, sys.n)
}

// String 调试输出
func (sys *System) String() string {
	if sys.n == 0 {
		return "System(0)"
	}
	a, z := sys.View()
	return fmt.Sprintf("System(%d):\nA = %v\nz = %v\n",
		sys.n, mat.Formatted(a, mat.Prefix("    "), mat.Squeeze()), mat.Formatted(z.T(), mat.Squeeze()))
}
