package util

import (
	"errors"
	"io"
	"net/http"
	"strings"
)

// http.DetectContentType 最多需要的嗅探字节数
const sniffLen = 512

// ValidateMimeType 读取文件头做内容嗅探，返回检测到的 MIME 类型。
// allowed 可以是完整类型（"application/pdf"）或前缀（"image/"）。
func ValidateMimeType(reader io.Reader, allowed []string) (string, error) {
	head := make([]byte, sniffLen)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return "", err
	}

	mimeType := http.DetectContentType(head[:n])
	for _, a := range allowed {
		if mimeType == a || strings.HasPrefix(mimeType, a) {
			return mimeType, nil
		}
	}
	return mimeType, errors.New("invalid file type: " + mimeType)
}
