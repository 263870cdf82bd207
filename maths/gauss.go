package maths

import "math"

// Solve 原位高斯消元(部分主元)求解当前系统,结果写入 X。
// A 与 Z 在求解后被破坏。主元低于 PivotFloor 的行视为退化节点,解为0;
// 结果中的 NaN/Inf 一律替换为0。
func (sys *System) Solve() []float64 {
	n, st := sys.n, sys.stride
	a, z, x := sys.a, sys.z, sys.x
	// 消元
	for i := 0; i < n; i++ {
		// 部分主元选择
		p, pv := i, math.Abs(a[i*st+i])
		for j := i + 1; j < n; j++ {
			if v := math.Abs(a[j*st+i]); v > pv {
				p, pv = j, v
			}
		}
		if p != i {
			ri, rp := a[i*st+i:i*st+n], a[p*st+i:p*st+n]
			for k := range ri {
				ri[k], rp[k] = rp[k], ri[k]
			}
			z[i], z[p] = z[p], z[i]
		}
		if pv < sys.PivotFloor {
			sys.Degenerate++
			continue
		}
		pivot := a[i*st+i]
		for j := i + 1; j < n; j++ {
			factor := a[j*st+i] / pivot
			if factor == 0 {
				continue
			}
			z[j] -= factor * z[i]
			rj, ri := a[j*st+i:j*st+n], a[i*st+i:i*st+n]
			for k := range rj {
				rj[k] -= factor * ri[k]
			}
		}
	}
	// 回代
	for i := n - 1; i >= 0; i-- {
		d := a[i*st+i]
		if math.Abs(d) < sys.PivotFloor {
			x[i] = 0
			continue
		}
		sum := 0.0
		for j := i + 1; j < n; j++ {
			sum += a[i*st+j] * x[j]
		}
		x[i] = (z[i] - sum) / d
	}
	// 结果必须有限
	for i := 0; i < n; i++ {
		if math.IsNaN(x[i]) || math.IsInf(x[i], 0) {
			x[i] = 0
		}
	}
	return x[:n]
}
