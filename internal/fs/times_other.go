//go:build !linux && !darwin && !windows

package fs

import "os"

// 其他平台只有修改时间可靠
func statTimes(_ string, info os.FileInfo) fileTimes {
	return fileTimes{
		created:  info.ModTime(),
		modified: info.ModTime(),
		accessed: info.ModTime(),
	}
}
