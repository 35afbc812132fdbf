package game

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/decker502/toanvui/pkg/embedded"
)

// DefaultUIStringsPath 内置越南语文本
const DefaultUIStringsPath = "data/strings/vi.txt"

// UIStrings 界面文本管理器
// 从 [KEY] / 文本 交替出现的文本文件加载，按键查询
type UIStrings struct {
	strings map[string]string
}

// NewUIStrings 从嵌入资源加载界面文本
//
// 参数：
//   - filePath: 文本文件路径（通常为 DefaultUIStringsPath）
//
// 文件格式：
//
//	[KEY]
//	文本内容
//
// 示例：
//
//	[SPEED_UP]
//	Tăng tốc!
func NewUIStrings(filePath string) (*UIStrings, error) {
	file, err := embedded.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open UI strings file %s: %w", filePath, err)
	}
	defer file.Close()

	us, err := ParseUIStrings(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read UI strings file %s: %w", filePath, err)
	}
	return us, nil
}

// ParseUIStrings 从任意 Reader 解析界面文本
func ParseUIStrings(r io.Reader) (*UIStrings, error) {
	us := &UIStrings{
		strings: make(map[string]string),
	}

	scanner := bufio.NewScanner(r)
	var currentKey string
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			continue
		}

		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentKey = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		// 键后面的第一行非空文本是它的值
		if currentKey != "" {
			us.strings[currentKey] = line
			currentKey = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return us, nil
}

// GetString 根据键获取文本，键不存在时返回 "[key]"（调试用）
func (us *UIStrings) GetString(key string) string {
	if us != nil {
		if text, ok := us.strings[key]; ok {
			return text
		}
	}
	return "[" + key + "]"
}

// Format 获取文本并按 fmt 规则填充参数，键不存在时同 GetString
//
// 示例：
//
//	uiStrings.Format("HUD_SCORE", 30) // "Điểm: 30"
func (us *UIStrings) Format(key string, args ...interface{}) string {
	if us != nil {
		if text, ok := us.strings[key]; ok {
			return fmt.Sprintf(text, args...)
		}
	}
	return "[" + key + "]"
}

// ShapeName 图形的显示名称，如 "circle" -> "hình tròn"
func (us *UIStrings) ShapeName(category string) string {
	key := "SHAPE_" + strings.ToUpper(category)
	if us != nil {
		if text, ok := us.strings[key]; ok {
			return text
		}
	}
	return category
}

// Len 已加载的文本条数
func (us *UIStrings) Len() int {
	if us == nil {
		return 0
	}
	return len(us.strings)
}
