package xdaily

import (
	"strings"
	"time"

	"github.com/hiETsang/LogKit/pkg/observability/xsev"
)

// 文件命名常量，FileName 与 isLogFileName 共同构成目录内文件的识别契约。
const (
	fileNamePrefix = "log-"
	fileNameExt    = ".txt"
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05.000"
)

// FileName 返回给定时刻对应的日志文件名（log-YYYY-MM-DD.txt）。
//
// 纯函数：同一天内任意时刻返回同一文件名。ISO 日期排序与字典序一致，
// 因此按文件名排序即按日期排序。
func FileName(t time.Time) string {
	return fileNamePrefix + t.Format(dateLayout) + fileNameExt
}

// isLogFileName 判断文件名是否为本包命名的日志文件。
// 清理和批量删除只触碰自己命名的文件，目录内其他文件一律跳过。
func isLogFileName(name string) bool {
	return strings.HasPrefix(name, fileNamePrefix) && strings.HasSuffix(name, fileNameExt)
}

// appendLine 将一条记录序列化为文件行并追加到 buf。
//
// 格式按位稳定：[HH:mm:ss.mmm] <marker> [<LEVEL>] [<category>] <message>\n
//
// message 与 category 中的换行与回车被转义为字面 \n、\r，
// 保证一条记录恰好占一行（文件的行完整性契约依赖于此）。
func appendLine(buf []byte, t time.Time, level xsev.Level, category, message string) []byte {
	buf = append(buf, '[')
	buf = t.AppendFormat(buf, timeLayout)
	buf = append(buf, "] "...)
	buf = append(buf, level.Marker()...)
	buf = append(buf, " ["...)
	buf = append(buf, level.String()...)
	buf = append(buf, "] ["...)
	buf = appendEscaped(buf, category)
	buf = append(buf, "] "...)
	buf = appendEscaped(buf, message)
	buf = append(buf, '\n')
	return buf
}

// appendEscaped 追加字符串，转义会破坏行结构的换行符。
func appendEscaped(buf []byte, s string) []byte {
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			buf = append(buf, '\\', 'n')
		case '\r':
			buf = append(buf, '\\', 'r')
		default:
			buf = append(buf, s[i])
		}
	}
	return buf
}
