package prefabs

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceWindow drops repeated events for one file, as editors usually
// write a file in several steps.
const debounceWindow = 100 * time.Millisecond

type ChangeKind int

const (
	// ChangeCamera is an edit of camera.yaml.
	ChangeCamera ChangeKind = iota
	// ChangeMap is an edit of a map under maps/.
	ChangeMap
	// ChangeScript is an edit of a map script.
	ChangeScript
	// ChangePrefab is an edit of any other entity prefab.
	ChangePrefab
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeCamera:
		return "camera"
	case ChangeMap:
		return "map"
	case ChangeScript:
		return "script"
	}
	return "prefab"
}

// Change names an edited file the way the loaders of this package expect:
// map names without extension, script and prefab names relative to their
// directory.
type Change struct {
	Kind ChangeKind
	Name string
}

// WatchDirs are the on-disk override directories.
func WatchDirs() []string {
	return []string{"prefabs", filepath.Join("prefabs", "maps"), filepath.Join("prefabs", "scripts")}
}

type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan Change
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// NewWatcher watches dirs, or WatchDirs when none are given.
func NewWatcher(dirs ...string) (*Watcher, error) {
	if len(dirs) == 0 {
		dirs = WatchDirs()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			_ = w.Close()
			return nil, err
		}
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan Change, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			change, ok := Classify(event.Name)
			if !ok {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < debounceWindow {
				continue
			}
			last[event.Name] = now
			select {
			case w.Events <- change:
			case <-w.closeCh:
				return
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		}
	}
}

// Classify maps a file path to the change it represents. Files that no loader
// reads are ignored.
func Classify(path string) (Change, bool) {
	base := filepath.Base(path)
	parent := filepath.Base(filepath.Dir(path))
	switch {
	case isScriptFile(path):
		return Change{Kind: ChangeScript, Name: base}, true
	case !isSpecFile(path):
		return Change{}, false
	case parent == "maps":
		return Change{Kind: ChangeMap, Name: strings.TrimSuffix(base, filepath.Ext(base))}, true
	case base == CameraSpecFile:
		return Change{Kind: ChangeCamera, Name: base}, true
	}
	return Change{Kind: ChangePrefab, Name: base}, true
}

func isSpecFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

func isScriptFile(path string) bool {
	return strings.ToLower(filepath.Ext(path)) == ".tengo"
}
