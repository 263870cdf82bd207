package element

import (
	"log"

	"rtcircuit/types"
)

// Config 元件目录项，保存每类元件的静态定义
type Config struct {
	Value          float64 // 默认主值
	Frequency      float64 // 默认频率
	IsOpen         bool    // 默认断开
	ExternalFactor float64 // 默认环境因子
	VoltageSource  bool    // 占用一条电压源支路
	Resistive      bool    // 按电阻加盖
}

// ElementList 元件类型注册表
var ElementList = map[types.ElementType]*Config{}

// AddElement 注册元件类型
func AddElement(t types.ElementType, config *Config) types.ElementType {
	if _, ok := ElementList[t]; ok {
		log.Fatalf("元件重复注册: %s", t)
	}
	ElementList[t] = config
	return t
}

// Lookup 查询元件定义
func Lookup(t types.ElementType) (*Config, bool) {
	config, ok := ElementList[t]
	return config, ok
}

// IsVoltageSource 是否为电压源类元件
func IsVoltageSource(t types.ElementType) bool {
	if config, ok := ElementList[t]; ok {
		return config.VoltageSource
	}
	return false
}

// IsResistive 是否按电阻加盖
func IsResistive(t types.ElementType) bool {
	if config, ok := ElementList[t]; ok {
		return config.Resistive
	}
	return false
}

// Defaults 按类型生成带默认值的元件(不含ID与位置)
func Defaults(t types.ElementType) (types.Component, bool) {
	config, ok := ElementList[t]
	if !ok {
		return types.Component{}, false
	}
	return types.Component{
		Type:           t,
		PinOffset:      types.DefaultPinOffset,
		Value:          config.Value,
		Frequency:      config.Frequency,
		IsOpen:         config.IsOpen,
		ExternalFactor: config.ExternalFactor,
	}, true
}
