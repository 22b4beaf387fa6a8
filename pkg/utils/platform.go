//go:build !mobile

package utils

import "os"

// IsMobile 桌面端返回 false
// 设置环境变量 SLINGMATH_MOBILE_EMULATE=1 可以在桌面端模拟移动模式
func IsMobile() bool {
	return os.Getenv("SLINGMATH_MOBILE_EMULATE") == "1"
}
