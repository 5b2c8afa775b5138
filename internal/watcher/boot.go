// Package watcher monitors /boot for kernel artifacts appearing and
// disappearing, recording each event in the kernelprune database. The
// event log gives `kernelprune history` and `doctor` a record of when
// kernels were installed or removed outside of kernelprune itself.
package watcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/blackwell-systems/kernelprune/internal/store"
)

// DefaultBootDir is the directory watched for kernel artifacts.
const DefaultBootDir = "/boot"

// artifactPrefixes are the /boot file name prefixes that identify a kernel
// artifact; the remainder of the name is the kernel release.
var artifactPrefixes = []string{
	"vmlinuz-",
	"initrd.img-",
	"System.map-",
	"config-",
}

// Watcher records kernel artifact events from a boot directory.
type Watcher struct {
	store   *store.Store
	bootDir string
	fsw     *fsnotify.Watcher
	stopCh  chan struct{}
	wg      sync.WaitGroup
}

// New creates a Watcher for the given boot directory. Pass
// DefaultBootDir outside of tests.
func New(st *store.Store, bootDir string) (*Watcher, error) {
	if st == nil {
		return nil, fmt.Errorf("store cannot be nil")
	}
	if bootDir == "" {
		bootDir = DefaultBootDir
	}
	return &Watcher{
		store:   st,
		bootDir: bootDir,
		stopCh:  make(chan struct{}),
	}, nil
}

// Start registers the fsnotify watch on the boot directory and begins
// recording events. Call Backfill first if the current contents should be
// logged as well.
func (w *Watcher) Start() error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	if err := fsw.Add(w.bootDir); err != nil {
		fsw.Close()
		return fmt.Errorf("failed to watch %s: %w", w.bootDir, err)
	}
	w.fsw = fsw

	w.wg.Add(1)
	go w.run()

	return nil
}

// run consumes fsnotify events until stopped.
func (w *Watcher) run() {
	defer w.wg.Done()

	for {
		select {
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			fmt.Fprintf(os.Stderr, "watcher: fsnotify error: %v\n", err)

		case <-w.stopCh:
			return
		}
	}
}

// handleEvent records create/remove events for kernel artifacts; everything
// else in /boot (grub state, efi, lost+found) is ignored.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	var op string
	switch {
	case event.Has(fsnotify.Create):
		op = "create"
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		op = "remove"
	default:
		return
	}

	name := filepath.Base(event.Name)
	release, ok := ArtifactRelease(name)
	if !ok {
		return
	}

	ev := &store.BootEvent{
		Op:            op,
		Path:          event.Name,
		KernelRelease: release,
		Timestamp:     time.Now(),
	}
	if err := w.store.InsertBootEvent(ev); err != nil {
		fmt.Fprintf(os.Stderr, "watcher: failed to record boot event: %v\n", err)
	}
}

// Backfill scans the boot directory once and records a "create" event for
// every kernel artifact already present. report, when non-nil, is called
// once per scanned directory entry (drives the progress bar).
func (w *Watcher) Backfill(report func()) (int, error) {
	entries, err := os.ReadDir(w.bootDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", w.bootDir, err)
	}

	recorded := 0
	for _, entry := range entries {
		if report != nil {
			report()
		}
		if entry.IsDir() {
			continue
		}
		release, ok := ArtifactRelease(entry.Name())
		if !ok {
			continue
		}

		ev := &store.BootEvent{
			Op:            "create",
			Path:          filepath.Join(w.bootDir, entry.Name()),
			KernelRelease: release,
			Timestamp:     time.Now(),
		}
		if err := w.store.InsertBootEvent(ev); err != nil {
			return recorded, fmt.Errorf("failed to record %s: %w", entry.Name(), err)
		}
		recorded++
	}

	return recorded, nil
}

// EntryCount returns the number of directory entries in the boot dir,
// for sizing the backfill progress bar.
func (w *Watcher) EntryCount() (int, error) {
	entries, err := os.ReadDir(w.bootDir)
	if err != nil {
		return 0, err
	}
	return len(entries), nil
}

// Stop halts the watcher.
func (w *Watcher) Stop() error {
	close(w.stopCh)
	if w.fsw != nil {
		w.fsw.Close()
	}
	w.wg.Wait()
	return nil
}

// ArtifactRelease reports whether a /boot file name is a kernel artifact
// and returns the kernel release it belongs to.
// "vmlinuz-5.15.0-122-generic" → ("5.15.0-122-generic", true).
func ArtifactRelease(name string) (string, bool) {
	for _, prefix := range artifactPrefixes {
		if strings.HasPrefix(name, prefix) {
			release := strings.TrimPrefix(name, prefix)
			if release == "" {
				return "", false
			}
			return release, true
		}
	}
	return "", false
}
