package main

import (
	"net/http"

	"github.com/teamprincipal/editor"

	"github.com/sirupsen/logrus"
)

func main() {
	editor.InitLogging()

	config, err := editor.ReadConfig("config.yml")

	if err != nil {
		logrus.WithError(err).Fatal("could not open config file")
	}

	if config.Monitoring.Enabled {
		editor.InitMonitoring()
	}

	store, err := config.Store.BuildStore()

	if err != nil {
		logrus.WithError(err).Fatal("could not open store")
	}

	templateLoader := editor.NewFilesystemTemplateLoader("./views")

	resolver, err := editor.NewResolver(templateLoader, editor.Debug, store)

	if err != nil {
		logrus.WithError(err).Fatal("could not initialise web server")
	}

	editor.LoadChangelog()

	if config.Editor.WatchData && config.Store.Type == "json" {
		watcher, err := editor.NewDataWatcher(config.Store.Path, func(filename string) {
			if filename == "config.json" {
				resolver.ResolveGameConfigHandler().InvalidateSessions()
			}
		})

		if err != nil {
			logrus.WithError(err).Error("could not watch data directory")
		} else {
			defer watcher.Close()
		}
	}

	listener := resolver.ResolveRouter(http.Dir("./static"))

	logrus.Infof("starting %s on: %s", config.Editor.Title, config.HTTP.Hostname)
	logrus.Fatal(http.ListenAndServe(config.HTTP.Hostname, listener))
}
