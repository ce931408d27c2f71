package sink

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Usage describes the filesystem holding the log file.
type Usage struct {
	Dir       string
	Total     uint64
	Available uint64
}

// DirUsage returns capacity figures for the filesystem containing path's
// directory using statfs.
func DirUsage(path string) (*Usage, error) {
	dir := filepath.Dir(path)
	var stat unix.Statfs_t
	if err := unix.Statfs(dir, &stat); err != nil {
		return nil, fmt.Errorf("statfs %s: %w", dir, err)
	}

	blockSize := uint64(stat.Bsize)
	return &Usage{
		Dir:       dir,
		Total:     stat.Blocks * blockSize,
		Available: stat.Bavail * blockSize,
	}, nil
}

// LowSpace reports whether fewer than need bytes are available.
func (u *Usage) LowSpace(need int64) bool {
	return need > 0 && u.Available < uint64(need)
}

// FormatBytes formats bytes into human-readable format.
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}
