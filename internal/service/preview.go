package service

import (
	"os"
	"sync"

	"go.uber.org/zap"
)

// Preview is the locally staged copy of an image while an upload
// attempt is running. The attempt that created it owns it exclusively;
// Release removes the staged file exactly once and is safe to call on
// every exit path.
type Preview struct {
	path   string
	url    string
	width  int
	height int
	log    *zap.Logger

	release sync.Once
}

// URL returns the path under which the staged file is served.
func (p *Preview) URL() string { return p.url }

// Path returns the staged file's location on disk.
func (p *Preview) Path() string { return p.path }

// Dimensions returns the sniffed pixel size, zero when unknown.
func (p *Preview) Dimensions() (width, height int) {
	return p.width, p.height
}

// Release removes the staged file. Later calls are no-ops.
func (p *Preview) Release() {
	p.release.Do(func() {
		if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
			p.log.Warn("释放预览文件失败", zap.String("path", p.path), zap.Error(err))
		}
	})
}
