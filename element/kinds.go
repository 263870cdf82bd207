package element

import "rtcircuit/types"

// 电阻类
var (
	WireType     = AddElement(types.TypeWire, &Config{Value: 0.001, Resistive: true})
	ResistorType = AddElement(types.TypeResistor, &Config{Value: 220, Resistive: true})
	BulbType     = AddElement(types.TypeBulb, &Config{Value: 60, Resistive: true})
	LDRType      = AddElement(types.TypeLDR, &Config{Value: 1000, ExternalFactor: 0.5, Resistive: true})
	NTCType      = AddElement(types.TypeNTC, &Config{Value: 1000, ExternalFactor: 0.5, Resistive: true})
)

// 电源
var (
	BatteryType  = AddElement(types.TypeBattery, &Config{Value: 9, VoltageSource: true})
	ACSourceType = AddElement(types.TypeACSource, &Config{Value: 230, Frequency: 2, VoltageSource: true})
)

// 储能元件
var (
	CapacitorType = AddElement(types.TypeCapacitor, &Config{Value: 1e-4})
	InductorType  = AddElement(types.TypeInductor, &Config{Value: 0.1})
)

// 其他
var (
	SwitchType = AddElement(types.TypeSwitch, &Config{Value: 0, IsOpen: true})
	GroundType = AddElement(types.TypeGround, &Config{Value: 10})
)
