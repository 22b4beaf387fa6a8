//go:build mobile

package utils

// IsMobile 移动端构建时总是返回 true
func IsMobile() bool {
	return true
}
