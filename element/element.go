package element

import (
	"math"

	"rtcircuit/types"
)

// Resistance 电阻类元件的等效电阻,已按下限钳位
func Resistance(c *types.Component) float64 {
	var r float64
	switch c.Type {
	case types.TypeWire:
		r = types.WireResistance
	case types.TypeLDR:
		// 光照越强阻值越小
		r = c.Value / (types.LDRDarkFactor + c.ExternalFactor*types.LDRLightGain)
	case types.TypeNTC:
		// 温度因子高于标称点时指数下降
		r = c.Value * math.Exp(-types.NTCBeta*(c.ExternalFactor-types.NTCNeutralPoint))
	default:
		r = c.Value
	}
	return floor(r, types.MinResistance)
}

// SwitchConductance 开关等效电导
func SwitchConductance(c *types.Component) float64 {
	if c.IsOpen {
		return types.SwitchOpenG
	}
	return types.SwitchClosedG
}

// Capacitance 电容值,已按下限钳位
func Capacitance(c *types.Component) float64 {
	return floor(c.Value, types.MinCapacitance)
}

// Inductance 电感值,已按下限钳位
func Inductance(c *types.Component) float64 {
	return floor(c.Value, types.MinInductance)
}

func floor(v, min float64) float64 {
	if math.IsNaN(v) || v < min {
		return min
	}
	return v
}

// SourceValue 电压源在时刻t的电压
func SourceValue(c *types.Component, t float64) float64 {
	switch c.Type {
	case types.TypeACSource:
		return c.Value * math.Sin(2*math.Pi*c.Frequency*t)
	case types.TypeBattery:
		return c.Value
	}
	return 0
}
