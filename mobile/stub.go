//go:build !mobile

// 桌面构建下 mobile 包只剩这一个文件，
// gomobile 绑定入口（mobile.go / embed.go）需要 -tags mobile 才参与编译。
package mobile

// Available 报告当前构建是否包含移动端入口
func Available() bool { return false }
