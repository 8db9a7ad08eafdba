//go:build !unix && !windows

package fs

import "os"

type noOwnerResolver struct{}

// DefaultOwnerResolver 当前平台没有属主概念
func DefaultOwnerResolver() OwnerResolver {
	return noOwnerResolver{}
}

func (noOwnerResolver) Owner(string, os.FileInfo) (string, error) {
	return "", ErrUnsupportedPlatform
}
