//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// androidStorageSubdir gdata 在应用数据目录下使用的子目录
const androidStorageSubdir = "saves"

// EnsureStorageDir 在 gdata.Open 之前准备 Android 存储目录
// gdata 使用 /data/data/{package}/ 但不会创建子目录，首次启动时保存会失败。
func EnsureStorageDir() error {
	root, err := androidDataDir()
	if err != nil {
		return err
	}

	dir := filepath.Join(root, androidStorageSubdir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", dir, err)
	}

	probe := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(probe, []byte("ok"), 0644); err != nil {
		return fmt.Errorf("storage directory %s is not writable: %w", dir, err)
	}
	return os.Remove(probe)
}

// GetStoragePath 应用数据目录（调试日志用），无法检测时返回空字符串
func GetStoragePath() string {
	root, err := androidDataDir()
	if err != nil {
		return ""
	}
	return root
}

// androidDataDir 根据 /proc/self/cmdline 中的包名得到 /data/data/{package}
func androidDataDir() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", fmt.Errorf("failed to detect Android package: %w", err)
	}

	// cmdline 以 NUL 分隔，第一个字段是包名
	if i := bytes.IndexByte(data, 0); i >= 0 {
		data = data[:i]
	}
	pkg := string(bytes.TrimSpace(data))
	if pkg == "" {
		return "", fmt.Errorf("failed to detect Android package: empty /proc/self/cmdline")
	}

	return filepath.Join("/data/data", pkg), nil
}
