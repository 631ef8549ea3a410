package kenburns

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchDebounce drops repeated events for the same file within this window.
const watchDebounce = 100 * time.Millisecond

// DirSource serves the image files of one directory in name order. After
// Watch is called, files added to or removed from the directory are picked
// up while the show runs.
type DirSource struct {
	dir    string
	repeat bool

	mu    sync.Mutex
	files []string
	pos   int

	watcher *fsnotify.Watcher
	closeCh chan struct{}
	once    sync.Once
}

// NewDirSource scans dir for PNG, JPEG and GIF files.
func NewDirSource(dir string, repeat bool) (*DirSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("kenburns: read dir %s: %w", dir, err)
	}
	d := &DirSource{dir: dir, repeat: repeat}
	for _, e := range entries {
		if e.Type().IsRegular() && isImageFile(e.Name()) {
			d.files = append(d.files, filepath.Join(dir, e.Name()))
		}
	}
	slices.Sort(d.files)
	return d, nil
}

// Files returns a snapshot of the known image files.
func (d *DirSource) Files() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.files)
}

// HasNext reports whether Next will return an image.
func (d *DirSource) HasNext() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.hasNext()
}

func (d *DirSource) hasNext() bool {
	return len(d.files) > 0 && (d.repeat || d.pos < len(d.files))
}

// Next decodes the next file. Decoding happens outside the lock so the
// watcher is never blocked by a large image.
func (d *DirSource) Next() (image.Image, error) {
	d.mu.Lock()
	if !d.hasNext() {
		d.mu.Unlock()
		return nil, ErrSourceExhausted
	}
	path := d.files[d.pos%len(d.files)]
	d.pos++
	if d.repeat && d.pos >= len(d.files) {
		d.pos = 0
	}
	d.mu.Unlock()

	return decodeFile(path)
}

// UniqueImageCount returns the number of known image files.
func (d *DirSource) UniqueImageCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.files)
}

// Watch starts following changes to the directory.
func (d *DirSource) Watch() error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("kenburns: watch %s: %w", d.dir, err)
	}
	if err := w.Add(d.dir); err != nil {
		_ = w.Close()
		return fmt.Errorf("kenburns: watch %s: %w", d.dir, err)
	}
	d.watcher = w
	d.closeCh = make(chan struct{})
	go d.run()
	return nil
}

// Close stops watching. It is safe to call more than once and on a source
// that was never watched.
func (d *DirSource) Close() error {
	var err error
	d.once.Do(func() {
		if d.watcher == nil {
			return
		}
		close(d.closeCh)
		err = d.watcher.Close()
	})
	return err
}

func (d *DirSource) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !isImageFile(event.Name) {
				continue
			}
			switch {
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				d.remove(event.Name)
			case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
				now := time.Now()
				if t, ok := last[event.Name]; ok && now.Sub(t) < watchDebounce {
					continue
				}
				last[event.Name] = now
				d.add(event.Name)
			}
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("[DirSource] Warning: watch %s: %v", d.dir, err)
		case <-d.closeCh:
			return
		}
	}
}

// add inserts path in name order, keeping the read position on the same file.
func (d *DirSource) add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, found := slices.BinarySearch(d.files, path)
	if found {
		return
	}
	d.files = slices.Insert(d.files, i, path)
	if i < d.pos {
		d.pos++
	}
	debugLogf("dir source: added %s (%d files)", path, len(d.files))
}

func (d *DirSource) remove(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	i, found := slices.BinarySearch(d.files, path)
	if !found {
		return
	}
	d.files = slices.Delete(d.files, i, i+1)
	if i < d.pos {
		d.pos--
	}
	if d.repeat && d.pos >= len(d.files) {
		d.pos = 0
	}
	debugLogf("dir source: removed %s (%d files)", path, len(d.files))
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("kenburns: open %s: %w", path, err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("kenburns: decode %s: %w", path, err)
	}
	return img, nil
}

func isImageFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png", ".jpg", ".jpeg", ".gif":
		return true
	}
	return false
}
