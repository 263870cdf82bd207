package types

import (
	"fmt"
	"strings"
)

// ElementType 元件类型
type ElementType uint

// 电路元件类型常量定义
const (
	TypeUnknown   ElementType = iota // 未知类型
	TypeWire                         // 导线
	TypeResistor                     // 电阻
	TypeBattery                      // 电池
	TypeBulb                         // 灯泡
	TypeSwitch                       // 开关
	TypeCapacitor                    // 电容
	TypeInductor                     // 电感
	TypeACSource                     // 交流源
	TypeLDR                          // 光敏电阻
	TypeNTC                          // 热敏电阻
	TypeGround                       // 接地
)

// elementTypeString 元件名称
var elementTypeString = map[ElementType]string{
	TypeUnknown:   "unknown",
	TypeWire:      "wire",
	TypeResistor:  "resistor",
	TypeBattery:   "battery",
	TypeBulb:      "bulb",
	TypeSwitch:    "switch",
	TypeCapacitor: "capacitor",
	TypeInductor:  "inductor",
	TypeACSource:  "ac_source",
	TypeLDR:       "ldr",
	TypeNTC:       "ntc",
	TypeGround:    "ground",
}

var mapName = func() map[string]ElementType {
	m := make(map[string]ElementType, len(elementTypeString))
	for t, name := range elementTypeString {
		m[name] = t
	}
	return m
}()

// String 返回元件类型的字符串表示
func (t ElementType) String() string {
	if name, ok := elementTypeString[t]; ok {
		return name
	}
	return "unknown"
}

// GetNameType 通过名称获取类型
func GetNameType(name string) ElementType {
	return mapName[strings.ToLower(strings.TrimSpace(name))]
}

// Types 全部已知类型
func Types() []ElementType {
	list := make([]ElementType, 0, len(elementTypeString)-1)
	for t := TypeWire; t <= TypeGround; t++ {
		list = append(list, t)
	}
	return list
}

// MarshalText 结构化编码使用名称
func (t ElementType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText 从名称解析
func (t *ElementType) UnmarshalText(text []byte) error {
	v := GetNameType(string(text))
	if v == TypeUnknown {
		return fmt.Errorf("types: unknown element type %q", text)
	}
	*t = v
	return nil
}
