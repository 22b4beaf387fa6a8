//go:build android

package utils

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStorageDir 在 gdata 初始化前准备玩家档案目录
//
// gdata 在 Android 上使用 /data/data/{package}/ 作为存储根目录，
// 但不会预先创建子目录。
//
// 返回创建好的目录路径。
func EnsureStorageDir() (string, error) {
	pkg, err := androidPackage()
	if err != nil {
		return "", fmt.Errorf("detect android package: %w", err)
	}

	dir := filepath.Join("/data/data", pkg, "profiles")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create profile dir %s: %w", dir, err)
	}

	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, nil, 0644); err != nil {
		return "", fmt.Errorf("profile dir %s is not writable: %w", dir, err)
	}
	os.Remove(testFile)

	return dir, nil
}

// androidPackage 从 /proc/self/cmdline 读取应用包名
func androidPackage() (string, error) {
	data, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return "", err
	}
	// cmdline 以 NUL 分隔，包名是第一段
	name := string(bytes.TrimSpace(bytes.SplitN(data, []byte{0}, 2)[0]))
	if name == "" {
		return "", fmt.Errorf("empty /proc/self/cmdline")
	}
	return name, nil
}
