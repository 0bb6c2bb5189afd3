package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Watch processes inDir once, then processes every matching file that is
// created or written until ctx is cancelled. A file is processed once it
// has seen no events for the settle period, so a file still being written
// is read only after its last write.
func (p *Processor) Watch(ctx context.Context, inDir, outDir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close() //nolint:errcheck // best-effort cleanup

	if err := watcher.Add(inDir); err != nil {
		return fmt.Errorf("watching %s: %w", inDir, err)
	}
	if _, err := p.ProcessDir(ctx, inDir, outDir); err != nil {
		return err
	}

	stop := make(chan struct{})
	defer close(stop)
	pending := make(map[string]*time.Timer)
	defer func() {
		for _, t := range pending {
			t.Stop()
		}
	}()
	settled := make(chan string)

	log := logrus.WithField("run_id", uuid.NewString())
	log.Infof("watching %s (settle %s)", inDir, p.settle)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !p.matches(event.Name) {
				continue
			}
			if t, ok := pending[event.Name]; ok {
				t.Reset(p.settle)
				continue
			}
			name := event.Name
			pending[name] = time.AfterFunc(p.settle, func() {
				select {
				case settled <- name:
				case <-stop:
				}
			})
		case name := <-settled:
			delete(pending, name)
			res := p.ProcessFile(name, outDir)
			switch {
			case res.Err != nil:
				log.Warnf("%s: %v", res.Input, res.Err)
			case res.Output != "":
				log.Infof("%s -> %s (%d robots)", res.Input, res.Output, res.Robots)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watcher error: %v", err)
		}
	}
}
