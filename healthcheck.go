package editor

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

var LaunchTime = time.Now()

type HealthCheck struct {
	store Store
}

func NewHealthCheck(store Store) *HealthCheck {
	return &HealthCheck{
		store: store,
	}
}

type HealthCheckResponse struct {
	OK      bool
	Version string

	OS            string
	NumCPU        int
	NumGoroutines int
	Uptime        string
	GoVersion     string

	DataDirectoryIsWritable bool

	NumDrivers     int
	NumTeams       int
	RacesScheduled int
}

func (h *HealthCheck) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var numDrivers, numTeams, racesScheduled int

	if drivers, err := h.store.ListDrivers(); err == nil {
		numDrivers = len(drivers)
	}

	if teams, err := h.store.ListTeams(); err == nil {
		numTeams = len(teams)
	}

	if schedule, err := h.store.LoadSchedule(); err == nil {
		racesScheduled = schedule.Races()
	}

	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(HealthCheckResponse{
		OK:            true,
		OS:            runtime.GOOS + "/" + runtime.GOARCH,
		Version:       BuildVersion,
		NumCPU:        runtime.NumCPU(),
		NumGoroutines: runtime.NumGoroutine(),
		Uptime:        time.Since(LaunchTime).String(),
		GoVersion:     runtime.Version(),

		DataDirectoryIsWritable: IsDirWriteable(config.Store.Path) == nil,

		NumDrivers:     numDrivers,
		NumTeams:       numTeams,
		RacesScheduled: racesScheduled,
	})
}

func IsDirWriteable(dir string) error {
	file := filepath.Join(dir, ".test-write")

	if err := ioutil.WriteFile(file, []byte(""), 0600); err != nil {
		return err
	}

	return os.Remove(file)
}
