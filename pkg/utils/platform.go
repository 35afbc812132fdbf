//go:build !mobile

package utils

import "os"

// MobileEmulateEnv 设为 1 时桌面端按移动端布局运行（显示屏幕方向键）
const MobileEmulateEnv = "TOANVUI_MOBILE_EMULATE"

// IsMobile 是否运行在移动设备上
// 桌面端编译时返回 false，除非设置了 MobileEmulateEnv
func IsMobile() bool {
	return os.Getenv(MobileEmulateEnv) == "1"
}
