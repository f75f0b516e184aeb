package xdaily

import (
	"fmt"
	"os"
	"path/filepath"
)

// run 是唯一的落盘 worker，串行消费队列直到 Close 关闭 channel。
//
// FIFO 保证：记录按入队顺序落盘，同一进程的日志行在文件中按时间先后
// 出现。串行消费同时保证不会出现两条行交错写入。
func (s *Store) run() {
	defer close(s.done)

	// 行缓冲在 worker 内复用，单 goroutine 消费无需同步
	buf := make([]byte, 0, 512)

	for rec := range s.queue {
		if rec.barrier != nil {
			close(rec.barrier)
			continue
		}
		buf = s.writeRecord(buf[:0], rec)
	}
}

// writeRecord 序列化并追加一条记录到当天的日志文件。
//
// 时间取落盘时刻（而非入队时刻）；当天文件按需打开、追加、关闭，
// 不缓存句柄，跨日轮转由 FileName 的日期计算自然完成。
// 失败计入丢弃并通过回调上报，绝不向上传播。
func (s *Store) writeRecord(buf []byte, rec record) []byte {
	now := s.now()
	buf = appendLine(buf, now, rec.level, rec.category, rec.message)

	path := filepath.Join(s.dir, FileName(now))
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, s.fileMode)
	if err != nil {
		s.drop()
		s.reportError(fmt.Errorf("xdaily: open %s: %w", path, err))
		return buf
	}

	_, werr := f.Write(buf)
	cerr := f.Close()

	switch {
	case werr != nil:
		s.drop()
		s.reportError(fmt.Errorf("xdaily: write %s: %w", path, werr))
	case cerr != nil:
		// 写入已成功，close 失败只上报不计丢弃
		s.reportError(fmt.Errorf("xdaily: close %s: %w", path, cerr))
		fallthrough
	default:
		s.written.Add(1)
		s.metrics.addWritten(1)
	}
	return buf
}
