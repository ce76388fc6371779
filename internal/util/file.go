package util

import (
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// 上传的原始文件名可能带空格或特殊字符，统一替换为连字符
var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9-]+`)

// GenerateImageFilename 为上传的图片生成唯一且URL安全的文件名
// 原始名清洗后拼接纳秒时间戳，扩展名统一小写
func GenerateImageFilename(originalFilename string) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	name := filepath.Base(originalFilename)
	name = name[:len(name)-len(ext)]
	name = strings.Trim(unsafeFilenameChars.ReplaceAllString(name, "-"), "-")
	if name == "" {
		name = "image"
	}

	timestamp := strconv.FormatInt(time.Now().UnixNano(), 10)
	return name + "_" + timestamp + ext
}
