package utils

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

var (
	defaultFaceSource     *text.GoTextFaceSource
	defaultFaceSourceErr  error
	defaultFaceSourceOnce sync.Once
)

// DefaultFaceSource 内置字体源（Go Regular，覆盖越南语所需的拉丁扩展字符）
// 只解析一次，之后复用
func DefaultFaceSource() (*text.GoTextFaceSource, error) {
	defaultFaceSourceOnce.Do(func() {
		defaultFaceSource, defaultFaceSourceErr = text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if defaultFaceSourceErr != nil {
			defaultFaceSourceErr = fmt.Errorf("failed to parse built-in font: %w", defaultFaceSourceErr)
		}
	})
	return defaultFaceSource, defaultFaceSourceErr
}

// NewDefaultFace 创建指定字号的内置字体
func NewDefaultFace(size float64) (*text.GoTextFace, error) {
	source, err := DefaultFaceSource()
	if err != nil {
		return nil, err
	}
	return &text.GoTextFace{Source: source, Size: size}, nil
}

// WrapText 将文本按指定宽度自动换行
//
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的各行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if font == nil {
		return []string{textStr}
	}
	return wrapWords(textStr, maxWidth, func(s string) float64 {
		return measureTextWidth(s, font)
	})
}

// wrapWords 按空格断行，单个词超宽时按字符强制断开
func wrapWords(textStr string, maxWidth float64, measure func(string) float64) []string {
	if textStr == "" || maxWidth <= 0 || measure(textStr) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	current := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if current != "" {
			candidate = current + " " + word
		}
		if measure(candidate) <= maxWidth {
			current = candidate
			continue
		}

		if current != "" {
			lines = append(lines, current)
			current = ""
		}

		// 词本身超宽：逐字符切开，剩余部分作为新行的开头
		for measure(word) > maxWidth {
			cut := splitToWidth(word, maxWidth, measure)
			lines = append(lines, word[:cut])
			word = word[cut:]
		}
		current = word
	}

	if current != "" {
		lines = append(lines, current)
	}
	return lines
}

// splitToWidth 返回不超过 maxWidth 的最长前缀的字节长度（至少一个字符）
func splitToWidth(word string, maxWidth float64, measure func(string) float64) int {
	cut := 0
	for cut < len(word) {
		_, size := utf8.DecodeRuneInString(word[cut:])
		if cut > 0 && measure(word[:cut+size]) > maxWidth {
			break
		}
		cut += size
	}
	return cut
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
