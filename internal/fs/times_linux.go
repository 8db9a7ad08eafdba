//go:build linux

package fs

import (
	"os"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// statTimes 优先使用 statx 的创建时间 (btime)，
// 文件系统不支持时退回 ctime
func statTimes(path string, info os.FileInfo) fileTimes {
	t := fileTimes{
		created:  info.ModTime(),
		modified: info.ModTime(),
		accessed: info.ModTime(),
	}
	if st, ok := info.Sys().(*syscall.Stat_t); ok {
		t.accessed = time.Unix(st.Atim.Unix())
		t.created = time.Unix(st.Ctim.Unix())
	}

	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err == nil && stx.Mask&unix.STATX_BTIME != 0 {
		t.created = time.Unix(stx.Btime.Sec, int64(stx.Btime.Nsec))
	}
	return t
}
