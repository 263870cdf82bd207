package circuit

import "rtcircuit/types"

// Monitor 过流保护
type Monitor struct {
	Threshold float64 // 跳闸阈值
	Peak      float64 // 触发时的电流
	Fault     string  // 触发原因
}

// Check 非电源元件最大电流超过阈值时触发
func (m *Monitor) Check(peak float64) bool {
	if peak > m.Threshold {
		m.Peak = peak
		m.Fault = types.FaultShortCircuit
		return true
	}
	return false
}

// Clear 清除故障
func (m *Monitor) Clear() {
	m.Peak = 0
	m.Fault = ""
}
