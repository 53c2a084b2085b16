package camera

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/clarityplus/kiosk/internal/common"
)

// FileDevice serves frames from still-image files in a directory, looping
// over them in name order. It stands in for real capture hardware during
// development and in tests.
type FileDevice struct {
	dir string

	mu     sync.Mutex
	opened bool
	files  []string
	next   int
}

func NewFileDevice(dir string) *FileDevice {
	return &FileDevice{dir: dir}
}

func (d *FileDevice) Open(_ Constraints) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.opened {
		return nil
	}

	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return fmt.Errorf("reading frame directory %s: %v: %w", d.dir, err, common.ErrCameraUnavailable)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".jpg", ".jpeg", ".png":
			files = append(files, filepath.Join(d.dir, e.Name()))
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no frames in %s: %w", d.dir, common.ErrCameraUnavailable)
	}
	sort.Strings(files)

	d.files = files
	d.next = 0
	d.opened = true
	return nil
}

func (d *FileDevice) Frame() (Frame, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.opened {
		return Frame{}, common.ErrNoFrame
	}

	path := d.files[d.next]
	d.next = (d.next + 1) % len(d.files)

	data, err := os.ReadFile(path)
	if err != nil {
		return Frame{}, fmt.Errorf("reading frame %s: %v: %w", path, err, common.ErrNoFrame)
	}
	return Frame{Data: data, CapturedAt: time.Now()}, nil
}

func (d *FileDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.opened = false
	d.files = nil
	return nil
}
