package circuit

import "rtcircuit/types"

// History 定长环形历史缓冲,满时丢弃最旧采样
type History struct {
	buf   []types.Sample
	start int
	n     int
}

// NewHistory 创建容量为 size 的缓冲
func NewHistory(size int) *History {
	return &History{buf: make([]types.Sample, size)}
}

// Push 追加采样
func (h *History) Push(s types.Sample) {
	if len(h.buf) == 0 {
		return
	}
	if h.n < len(h.buf) {
		h.buf[(h.start+h.n)%len(h.buf)] = s
		h.n++
		return
	}
	h.buf[h.start] = s
	h.start = (h.start + 1) % len(h.buf)
}

// Len 当前采样数量
func (h *History) Len() int { return h.n }

// Samples 按时间顺序复制全部采样
func (h *History) Samples() []types.Sample {
	out := make([]types.Sample, h.n)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Clear 清空
func (h *History) Clear() {
	h.start, h.n = 0, 0
}
