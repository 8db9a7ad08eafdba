package fs

import "log/slog"

// Options 控制 File / Folder 的构造行为
type Options struct {
	Owner          OwnerResolver // 属主解析器，默认按平台选择
	FollowSymlinks bool          // 是否跟随符号链接 (目录与文件)
	Logger         *slog.Logger  // 跳过条目、解析失败等情况的日志输出
}

// Option 函数式选项
type Option func(opts *Options)

// WithOwnerResolver 替换默认的属主解析器
func WithOwnerResolver(r OwnerResolver) Option {
	return func(opts *Options) {
		opts.Owner = r
	}
}

// WithFollowSymlinks 设置是否跟随符号链接，默认 true。
// 跟随时会记录已进入目录的真实路径，防止符号链接造成死循环。
func WithFollowSymlinks(follow bool) Option {
	return func(opts *Options) {
		opts.FollowSymlinks = follow
	}
}

// WithLogger 设置日志输出，默认 slog.Default()
func WithLogger(l *slog.Logger) Option {
	return func(opts *Options) {
		opts.Logger = l
	}
}

func newOptions(fns []Option) *Options {
	opts := &Options{
		Owner:          DefaultOwnerResolver(),
		FollowSymlinks: true,
	}
	for _, fn := range fns {
		fn(opts)
	}
	if opts.Owner == nil {
		opts.Owner = DefaultOwnerResolver()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return opts
}
