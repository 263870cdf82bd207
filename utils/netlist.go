package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrField 字段缺失或格式错误
var ErrField = errors.New("utils: invalid field")

// NetList 场景文件的一行字段
type NetList []string

// Fields 拆分一行,去掉 # 之后的注释
func Fields(line string) NetList {
	if i := strings.IndexByte(line, '#'); i >= 0 {
		line = line[:i]
	}
	return NetList(strings.Fields(line))
}

// FromAnySlice 将 []any 转换为 NetList 类型
// any 只能是基础类型，不考虑结构体的解析
func FromAnySlice(slice []any) NetList {
	result := make(NetList, len(slice))
	for i, v := range slice {
		result[i] = anyToString(v)
	}
	return result
}

// anyToString 将任意基础类型转换为字符串
func anyToString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(v)
	}
}

// String 以空格连接
func (value NetList) String() string { return strings.Join(value, " ") }

// Int 严格解析整数
func (value NetList) Int(i int) (int, error) {
	if i >= len(value) {
		return 0, fmt.Errorf("%w: missing field %d", ErrField, i)
	}
	v, err := strconv.Atoi(value[i])
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an integer", ErrField, value[i])
	}
	return v, nil
}

// Float 严格解析浮点数
func (value NetList) Float(i int) (float64, error) {
	if i >= len(value) {
		return 0, fmt.Errorf("%w: missing field %d", ErrField, i)
	}
	v, err := strconv.ParseFloat(value[i], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrField, value[i])
	}
	return v, nil
}

// KeyValues 从第 from 个字段起解析 key=value 选项
func (value NetList) KeyValues(from int) (map[string]string, error) {
	opts := make(map[string]string)
	for i := from; i < len(value); i++ {
		k, v, ok := strings.Cut(value[i], "=")
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("%w: %q is not key=value", ErrField, value[i])
		}
		k = strings.ToLower(k)
		if _, dup := opts[k]; dup {
			return nil, fmt.Errorf("%w: duplicate key %q", ErrField, k)
		}
		opts[k] = v
	}
	return opts, nil
}
