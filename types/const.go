package types

// 默认连接常量定义
const (
	ReferenceNodeID NodeID = 0  // 参考节点(0V)
	UnresolvedNode  NodeID = -1 // 尚未解析的引脚
)

// FaultShortCircuit 过流跳闸原因
const FaultShortCircuit = "SHORT_CIRCUIT_DETECTED"

// WarningCapacity 矩阵容量不足警告
const WarningCapacity = "CIRCUIT_TOO_LARGE"

// 默认参数常量定义
var (
	MaxSize          = 64     // 最大可解方程数量(节点+电压源)
	SubSteps         = 10     // 每帧子步数量
	TimeStep         = 1e-3   // 子步时间步长(秒)
	TripCurrent      = 20.0   // 跳闸电流阈值(安)
	CurrentClamp     = 1000.0 // 输出电流限幅(安)
	HistorySize      = 500    // 历史缓冲长度
	PublishEvery     = 3      // 通知间隔帧数
	SnapDistance     = 0.4    // 引脚吸附距离
	SignatureStep    = 0.5    // 签名坐标取整步长
	DefaultPinOffset = 0.5    // 默认引脚偏移
	Gmin             = 1e-10  // 节点对地最小电导
	PivotFloor       = 1e-12  // 主元下限
)

// 元件数值下限
var (
	MinResistance   = 1e-6  // 最小电阻
	WireResistance  = 1e-6  // 导线电阻
	MinCapacitance  = 1e-12 // 最小电容
	MinInductance   = 1e-6  // 最小电感
	SwitchClosedG   = 1e4   // 开关闭合电导
	SwitchOpenG     = 1e-9  // 开关断开电导
	LDRDarkFactor   = 0.1   // 光敏电阻暗态因子
	LDRLightGain    = 10.0  // 光敏电阻光照增益
	NTCBeta         = 4.0   // 热敏电阻指数系数
	NTCNeutralPoint = 0.5   // 热敏电阻标称温度因子
)
