package editor

import (
	"fmt"
	"os"

	"github.com/cj123/sessions"
	"github.com/etcd-io/bbolt"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"
)

var config *Configuration

type Configuration struct {
	HTTP       HTTPConfig       `yaml:"http"`
	Store      StoreConfig      `yaml:"store"`
	Editor     EditorConfig     `yaml:"editor"`
	Monitoring MonitoringConfig `yaml:"monitoring"`
}

type MonitoringConfig struct {
	Enabled bool `yaml:"enabled"`
}

type EditorConfig struct {
	Title        string `yaml:"title"`
	AuditLogging bool   `yaml:"audit_logging"`
	WatchData    bool   `yaml:"watch_data"`
}

type HTTPConfig struct {
	Hostname         string `yaml:"hostname"`
	SessionKey       string `yaml:"session_key"`
	SessionStoreType string `yaml:"session_store_type"`
	SessionStorePath string `yaml:"session_store_path"`
}

const (
	sessionStoreCookie     = "cookie"
	sessionStoreFilesystem = "filesystem"
)

func (h *HTTPConfig) createSessionStore() (sessions.Store, error) {
	switch h.SessionStoreType {
	case sessionStoreFilesystem:
		if info, err := os.Stat(h.SessionStorePath); os.IsNotExist(err) {
			err := os.MkdirAll(h.SessionStorePath, 0755)

			if err != nil {
				return nil, err
			}
		} else if err != nil {
			return nil, err
		} else if !info.IsDir() {
			return nil, errors.New("editor: session store location must be a directory")
		}

		return sessions.NewFilesystemStore(h.SessionStorePath, []byte(h.SessionKey)), nil

	case sessionStoreCookie:
		fallthrough
	default:
		return sessions.NewCookieStore([]byte(h.SessionKey)), nil
	}
}

type StoreConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

func (s *StoreConfig) BuildStore() (Store, error) {
	var rs Store

	switch s.Type {
	case "boltdb":
		bbdb, err := bbolt.Open(s.Path, 0644, nil)

		if err != nil {
			return nil, err
		}

		rs = NewBoltStore(bbdb)
	case "json":
		rs = NewJSONStore(s.Path)
	default:
		return nil, fmt.Errorf("invalid store type (%s), must be either boltdb/json", s.Type)
	}

	if err := Migrate(rs); err != nil {
		return nil, err
	}

	return rs, nil
}

func ReadConfig(location string) (conf *Configuration, err error) {
	f, err := os.Open(location)

	if err != nil {
		return nil, err
	}

	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&conf); err != nil {
		return nil, err
	}

	if conf.Editor.Title == "" {
		conf.Editor.Title = "Team Principal Editor"
	}

	config = conf
	sessionsStore, err = conf.HTTP.createSessionStore()

	if err != nil {
		return nil, err
	}

	if conf.HTTP.SessionKey == "" {
		logrus.Warn("http.session_key is empty, flash messages will not survive restarts")
	}

	return conf, err
}
