package anim

import "time"

// Clock 单调时间源（毫秒）
//
// 引擎只假设连续两次读取的值不递减，不依赖任何日历语义。
type Clock interface {
	NowMs() float64
}

// SystemClock 基于 time.Since 的单调时钟
// time.Since 使用 Go 运行时的单调读数，不受系统时间调整影响
type SystemClock struct {
	epoch time.Time
}

// NewSystemClock 创建以当前时刻为零点的系统时钟
func NewSystemClock() *SystemClock {
	return &SystemClock{epoch: time.Now()}
}

// NowMs 返回自创建以来经过的毫秒数
func (c *SystemClock) NowMs() float64 {
	return float64(time.Since(c.epoch)) / float64(time.Millisecond)
}

// ManualClock 手动推进的时钟，用于测试和确定性回放
type ManualClock struct {
	now float64
}

// NewManualClock 创建起始于 startMs 的手动时钟
func NewManualClock(startMs float64) *ManualClock {
	return &ManualClock{now: startMs}
}

// NowMs 返回当前时间
func (c *ManualClock) NowMs() float64 {
	return c.now
}

// Advance 向前推进 deltaMs 毫秒，负值会被忽略
func (c *ManualClock) Advance(deltaMs float64) {
	if deltaMs > 0 {
		c.now += deltaMs
	}
}

// Set 设置绝对时间，早于当前时间的值会被忽略（保持单调）
func (c *ManualClock) Set(ms float64) {
	if ms > c.now {
		c.now = ms
	}
}
