package circuit

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"rtcircuit/types"
)

// ErrInvalidConfig 配置参数非法
var ErrInvalidConfig = errors.New("circuit: invalid config")

// Config 仿真参数
type Config struct {
	SubSteps     int     // 每帧子步数量
	TimeStep     float64 // 子步时间步长(秒)
	TripCurrent  float64 // 跳闸电流阈值
	CurrentClamp float64 // 输出电流限幅
	HistorySize  int     // 历史缓冲长度
	PublishEvery int     // 每隔多少帧通知观察者
	MaxSize      int     // 最大方程规模
	SnapDistance float64 // 引脚吸附距离
	Gmin         float64 // 节点对地电导
	PivotFloor   float64 // 主元下限

	Logger *log.Logger // 状态切换日志
	Rand   *rand.Rand  // 新增元件位置抖动
}

// DefaultConfig 默认参数
func DefaultConfig() Config {
	return Config{
		SubSteps:     types.SubSteps,
		TimeStep:     types.TimeStep,
		TripCurrent:  types.TripCurrent,
		CurrentClamp: types.CurrentClamp,
		HistorySize:  types.HistorySize,
		PublishEvery: types.PublishEvery,
		MaxSize:      types.MaxSize,
		SnapDistance: types.SnapDistance,
		Gmin:         types.Gmin,
		PivotFloor:   types.PivotFloor,
	}
}

// Validate 检查参数并补全日志与随机源
func (cfg *Config) Validate() error {
	switch {
	case cfg.SubSteps <= 0:
		return fmt.Errorf("%w: sub steps %d", ErrInvalidConfig, cfg.SubSteps)
	case !(cfg.TimeStep > 0):
		return fmt.Errorf("%w: time step %g", ErrInvalidConfig, cfg.TimeStep)
	case !(cfg.TripCurrent > 0):
		return fmt.Errorf("%w: trip current %g", ErrInvalidConfig, cfg.TripCurrent)
	case !(cfg.CurrentClamp > 0):
		return fmt.Errorf("%w: current clamp %g", ErrInvalidConfig, cfg.CurrentClamp)
	case cfg.HistorySize <= 0:
		return fmt.Errorf("%w: history size %d", ErrInvalidConfig, cfg.HistorySize)
	case cfg.PublishEvery <= 0:
		return fmt.Errorf("%w: publish every %d", ErrInvalidConfig, cfg.PublishEvery)
	case cfg.MaxSize <= 0:
		return fmt.Errorf("%w: max size %d", ErrInvalidConfig, cfg.MaxSize)
	case !(cfg.SnapDistance > 0):
		return fmt.Errorf("%w: snap distance %g", ErrInvalidConfig, cfg.SnapDistance)
	case cfg.Gmin < 0 || cfg.PivotFloor < 0:
		return fmt.Errorf("%w: negative gmin or pivot floor", ErrInvalidConfig)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Rand == nil {
		cfg.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return nil
}
