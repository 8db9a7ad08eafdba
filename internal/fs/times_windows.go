//go:build windows

package fs

import (
	"os"
	"syscall"
	"time"
)

func statTimes(_ string, info os.FileInfo) fileTimes {
	t := fileTimes{
		created:  info.ModTime(),
		modified: info.ModTime(),
		accessed: info.ModTime(),
	}
	if d, ok := info.Sys().(*syscall.Win32FileAttributeData); ok {
		t.created = time.Unix(0, d.CreationTime.Nanoseconds())
		t.accessed = time.Unix(0, d.LastAccessTime.Nanoseconds())
	}
	return t
}
