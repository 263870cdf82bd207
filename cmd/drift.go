package main

import (
	"math"

	"github.com/aquilax/go-perlin"

	circuit "rtcircuit"
	"rtcircuit/types"
)

// Drift 用柏林噪声平滑改变光敏/热敏电阻的环境因子
type Drift struct {
	noise *perlin.Perlin
	Speed float64 // 每秒噪声坐标增量
}

// NewDrift 创建漂移源
func NewDrift(seed int64) *Drift {
	return &Drift{noise: perlin.NewPerlin(2, 2, 3, seed), Speed: 0.5}
}

// Factor 元件 id 在时刻 t 的环境因子,范围[0,1]
func (d *Drift) Factor(id types.ElementID, t float64) float64 {
	v := 0.5 + d.noise.Noise1D(t*d.Speed+float64(id)*7.31)
	return math.Max(0, math.Min(1, v))
}

// Apply 更新全部光敏/热敏电阻
func (d *Drift) Apply(cir *circuit.Circuit) error {
	t := cir.Time()
	for _, c := range cir.Components() {
		if c.Type != types.TypeLDR && c.Type != types.TypeNTC {
			continue
		}
		if err := cir.SetExternalFactor(c.ID, d.Factor(c.ID, t)); err != nil {
			return err
		}
	}
	return nil
}
