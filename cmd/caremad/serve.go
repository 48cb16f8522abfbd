package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/radovskyb/watcher"
	"github.com/spf13/cobra"

	"github.com/caremad/site/internal/config"
)

var (
	port  int
	watch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and serve the output directory on localhost",
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := loadSettings()
		if err != nil {
			return err
		}
		if err := renderSite(conf, drafts); err != nil {
			return err
		}

		if watch {
			w, err := newWatcher(conf)
			if err != nil {
				return err
			}
			defer w.Close()
			go rerenderOnChange(w, conf)
			go func() {
				if err := w.Start(200 * time.Millisecond); err != nil {
					logger.Error().Err(err).Msg("Watcher stopped")
				}
			}()
		}

		return serveSite(conf.Output, port)
	},
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", 9999, "port to listen on")
	serveCmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-render the site when content or theme change")
	serveCmd.Flags().BoolVar(&drafts, "drafts", false, "include content with status: draft")
}

func serveSite(dir string, port int) error {
	addr := "localhost:" + strconv.Itoa(port)
	mux := http.NewServeMux()
	mux.Handle("/", http.FileServer(http.Dir(dir)))

	logger.Info().Str("dir", dir).Str("addr", "http://"+addr+"/").Msg("Serving site")
	return http.ListenAndServe(addr, mux)
}

func newWatcher(conf *config.Settings) (*watcher.Watcher, error) {
	w := watcher.New()
	w.SetMaxEvents(1)

	dirs := []string{conf.Path}
	if conf.Theme != "" {
		dirs = append(dirs, conf.Theme)
	}
	for _, d := range dirs {
		logger.Info().Str("dir", d).Msg("Watching for changes")
		if err := w.AddRecursive(d); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func rerenderOnChange(w *watcher.Watcher, conf *config.Settings) {
	for {
		select {
		case ev := <-w.Event:
			logger.Info().Str("path", ev.Path).Msg("Change detected, rebuilding")
			if err := renderSite(conf, drafts); err != nil {
				logger.Error().Err(err).Msg("Rebuild failed")
			}
		case err := <-w.Error:
			logger.Error().Err(err).Msg("Watcher error")
		case <-w.Closed:
			return
		}
	}
}
