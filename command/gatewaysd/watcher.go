// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"path/filepath"

	"github.com/bitmark-inc/logger"
	"github.com/fsnotify/fsnotify"

	"github.com/bitmark-inc/gatewaysd/fault"
)

// watches the directory holding the configuration file, editors
// often replace a file rather than write it in place
type configurationWatcher struct {
	log      *logger.L
	watcher  *fsnotify.Watcher
	filePath string
	changed  chan<- struct{}
}

func newConfigurationWatcher(fileName string, log *logger.L, changed chan<- struct{}) (*configurationWatcher, error) {
	filePath, err := filepath.Abs(filepath.Clean(fileName))
	if nil != err {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if nil != err {
		return nil, err
	}
	err = watcher.Add(filepath.Dir(filePath))
	if nil != err {
		_ = watcher.Close()
		return nil, err
	}

	return &configurationWatcher{
		log:      log,
		watcher:  watcher,
		filePath: filePath,
		changed:  changed,
	}, nil
}

// Run - report changes until shutdown
func (w *configurationWatcher) Run(args interface{}, shutdown <-chan struct{}) {
	w.log.Infof("watching: %q", w.filePath)

loop:
	for {
		select {
		case <-shutdown:
			break loop

		case event, ok := <-w.watcher.Events:
			if !ok {
				break loop
			}
			if filepath.Clean(event.Name) != w.filePath || !isChange(event) {
				continue
			}
			w.log.Warnf("%s: %q restart to apply", fault.ConfigurationFileChanged, w.filePath)
			w.notify()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				break loop
			}
			w.log.Errorf("watcher error: %s", err)
		}
	}
	_ = w.watcher.Close()
	w.log.Info("stopped")
}

// drop the event if one is already queued
func (w *configurationWatcher) notify() {
	if nil == w.changed {
		return
	}
	select {
	case w.changed <- struct{}{}:
	default:
	}
}

func isChange(event fsnotify.Event) bool {
	return 0 != event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove)
}
