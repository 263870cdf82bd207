package load

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	circuit "rtcircuit"
	"rtcircuit/element"
	"rtcircuit/types"
	"rtcircuit/utils"
)

// ErrSyntax 场景文件格式错误
var ErrSyntax = errors.New("load: syntax error")

// Scene 场景: 元件列表与储能元件初始状态
type Scene struct {
	Components []types.Component
	States     map[types.ElementID]float64
}

// LoadString 加载场景。
func LoadString(s string) (*Scene, error) {
	return Load(strings.NewReader(s))
}

// LoadFile 从文件加载场景。
func LoadFile(filename string) (*Scene, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return Load(file)
}

// Load 加载场景,每行一个元件:
//
//	<kind> <id> <x> <y> <z> [rot=.. offset=.. value=.. freq=.. open=.. factor=.. init=..]
func Load(r io.Reader) (*Scene, error) {
	scene := &Scene{States: map[types.ElementID]float64{}}
	seen := map[types.ElementID]bool{}
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		fields := utils.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		c, state, err := parseComponent(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, line, err)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: line %d: duplicate id %d", ErrSyntax, line, c.ID)
		}
		seen[c.ID] = true
		if state != 0 {
			scene.States[c.ID] = state
		}
		scene.Components = append(scene.Components, c)
	}
	return scene, scanner.Err()
}

// parseComponent 解析单个元件定义
func parseComponent(fields utils.NetList) (c types.Component, state float64, err error) {
	kind := types.GetNameType(fields[0])
	c, ok := element.Defaults(kind)
	if !ok {
		return c, 0, fmt.Errorf("unknown kind %q", fields[0])
	}
	if len(fields) < 5 {
		return c, 0, fmt.Errorf("%s needs id and x y z", kind)
	}
	if c.ID, err = fields.Int(1); err != nil {
		return c, 0, err
	}
	if c.ID <= 0 {
		return c, 0, fmt.Errorf("id must be positive, got %d", c.ID)
	}
	for i := range c.Pos {
		if c.Pos[i], err = fields.Float(2 + i); err != nil {
			return c, 0, err
		}
	}
	opts, err := fields.KeyValues(5)
	if err != nil {
		return c, 0, err
	}
	for k, v := range opts {
		var f float64
		if k != "open" {
			if f, err = strconv.ParseFloat(v, 64); err != nil {
				return c, 0, fmt.Errorf("%s=%q is not a number", k, v)
			}
		}
		switch k {
		case "rot":
			c.Rotation = f
		case "offset":
			c.PinOffset = f
		case "value":
			c.Value = f
		case "freq":
			c.Frequency = f
		case "factor":
			c.ExternalFactor = f
		case "init":
			state = f
		case "open":
			if c.IsOpen, err = strconv.ParseBool(v); err != nil {
				return c, 0, fmt.Errorf("open=%q is not a boolean", v)
			}
		default:
			return c, 0, fmt.Errorf("unknown key %q", k)
		}
	}
	return c, state, nil
}

// Export 导出场景,格式与 Load 相同
func Export(w io.Writer, scene *Scene) error {
	writer := bufio.NewWriter(w)
	for _, c := range scene.Components {
		line := utils.FromAnySlice([]any{c.Type, c.ID, c.Pos[0], c.Pos[1], c.Pos[2]})
		opts := []any{"rot=", c.Rotation, "offset=", c.PinOffset, "value=", c.Value}
		switch c.Type {
		case types.TypeACSource:
			opts = append(opts, "freq=", c.Frequency)
		case types.TypeSwitch:
			opts = append(opts, "open=", c.IsOpen)
		case types.TypeLDR, types.TypeNTC:
			opts = append(opts, "factor=", c.ExternalFactor)
		}
		if v, ok := scene.States[c.ID]; ok && v != 0 {
			opts = append(opts, "init=", v)
		}
		kv := utils.FromAnySlice(opts)
		for i := 0; i < len(kv); i += 2 {
			line = append(line, kv[i]+kv[i+1])
		}
		if _, err := writer.WriteString(line.String() + "\n"); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// ExportFile 导出场景到文件
func ExportFile(filename string, scene *Scene) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := Export(file, scene); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Apply 将场景放入仿真上下文
func Apply(cir *circuit.Circuit, scene *Scene) error {
	for _, c := range scene.Components {
		if _, err := cir.Place(c); err != nil {
			return err
		}
	}
	for id, v := range scene.States {
		if err := cir.SetStateVariable(id, v); err != nil {
			return err
		}
	}
	return nil
}

// Capture 从仿真上下文生成场景
func Capture(cir *circuit.Circuit) *Scene {
	scene := &Scene{Components: cir.Components(), States: map[types.ElementID]float64{}}
	for _, c := range scene.Components {
		if v := cir.StateVariable(c.ID); v != 0 {
			scene.States[c.ID] = v
		}
	}
	return scene
}
