package fs

import (
	"regexp"
	"strconv"
	"time"
)

// DefaultDatestamp 文件名中找不到日期时返回的默认值
var DefaultDatestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// 可识别的年份范围，避免把任意数字串当作日期
const (
	minYear = 1900
	maxYear = 2199
)

type datePattern struct {
	re *regexp.Regexp
	// 子匹配中年、月、日的下标，day 为 0 表示只有年月
	year, month, day int
}

// datePatterns 按优先级排列，第一个能解析出合法日期的匹配胜出
var datePatterns = []datePattern{
	// 2023-05-01, 2023.05.01, 2023_5_1, "2023 05 01"
	{re: regexp.MustCompile(`(?:^|\D)(\d{4})[-._ ](\d{1,2})[-._ ](\d{1,2})`), year: 1, month: 2, day: 3},
	// 20230501
	{re: regexp.MustCompile(`(?:^|\D)(\d{4})(\d{2})(\d{2})`), year: 1, month: 2, day: 3},
	// 01-05-2023, 01.05.2023
	{re: regexp.MustCompile(`(?:^|\D)(\d{1,2})[-._ ](\d{1,2})[-._ ](\d{4})`), year: 3, month: 2, day: 1},
	// 2023-05 -> 2023-05-01
	{re: regexp.MustCompile(`(?:^|\D)(\d{4})[-._ ](\d{1,2})`), year: 1, month: 2},
}

// ParseDatestamp 在文件名中查找日期，返回第一个合法的匹配
func ParseDatestamp(name string) (time.Time, bool) {
	for _, p := range datePatterns {
		for _, idx := range p.re.FindAllStringSubmatchIndex(name, -1) {
			// 右边界不消耗字符，以便相邻的候选仍能被匹配到
			if end := idx[1]; end < len(name) && isDigit(name[end]) {
				continue
			}
			group := func(i int) int {
				n, _ := strconv.Atoi(name[idx[2*i]:idx[2*i+1]])
				return n
			}
			y, mo, d := group(p.year), group(p.month), 1
			if p.day > 0 {
				d = group(p.day)
			}
			if t, ok := calendarDate(y, mo, d); ok {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func calendarDate(y, m, d int) (time.Time, bool) {
	if y < minYear || y > maxYear || m < 1 || m > 12 || d < 1 {
		return time.Time{}, false
	}
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date 会把 02-30 之类的日期顺延，顺延过说明不合法
	if t.Month() != time.Month(m) || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
