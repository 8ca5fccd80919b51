//go:build android

package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// settingsSubdir gdata 在应用目录下使用的子目录
const settingsSubdir = "settings"

// EnsureStorageDir 在 gdata 初始化前创建 Android 设置目录并检查可写
//
// gdata 在 Android 上写入 /data/data/{package}/，但不会预先创建子目录。
//
// 返回：
//   - error: 无法识别包名、创建目录失败或目录不可写
func EnsureStorageDir() error {
	dir, err := androidAppDir()
	if err != nil {
		return err
	}

	dir = filepath.Join(dir, settingsSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create settings dir %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".probe")
	if err := os.WriteFile(probe, nil, 0644); err != nil {
		return fmt.Errorf("settings dir %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 返回应用数据目录（调试用），识别失败时返回空字符串
func GetStoragePath() string {
	dir, err := androidAppDir()
	if err != nil {
		return ""
	}
	return dir
}

// androidAppDir 根据 /proc/self/cmdline 中的包名得到 /data/data/{package}
func androidAppDir() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("read cmdline: %w", err)
	}
	pkg := strings.TrimSpace(strings.ReplaceAll(string(data), "\x00", ""))
	if pkg == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return filepath.Join("/data/data", pkg), nil
}
