package editor

import (
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ServerAdministrationHandler struct {
	*BaseHandler

	store    Store
	registry *RecordRegistry
}

func NewServerAdministrationHandler(baseHandler *BaseHandler, store Store, registry *RecordRegistry) *ServerAdministrationHandler {
	return &ServerAdministrationHandler{
		BaseHandler: baseHandler,
		store:       store,
		registry:    registry,
	}
}

type kindSummary struct {
	Kind  RecordKind
	Count int
}

type homeTemplateVars struct {
	BaseTemplateVars

	Summaries      []kindSummary
	RacesScheduled int
}

// home serves content to /
func (sah *ServerAdministrationHandler) home(w http.ResponseWriter, r *http.Request) {
	summaries := make([]kindSummary, 0, len(sah.registry.Kinds()))

	for _, kind := range sah.registry.Kinds() {
		records, err := kind.List()

		if err != nil {
			logrus.WithError(err).Errorf("couldn't count %s", kind.Name())
		}

		summaries = append(summaries, kindSummary{Kind: kind, Count: len(records)})
	}

	var racesScheduled int

	if schedule, err := sah.store.LoadSchedule(); err == nil {
		racesScheduled = schedule.Races()
	}

	sah.viewRenderer.MustLoadTemplate(w, r, "home.html", &homeTemplateVars{
		Summaries:      summaries,
		RacesScheduled: racesScheduled,
	})
}

func (sah *ServerAdministrationHandler) logs(w http.ResponseWriter, r *http.Request) {
	sah.viewRenderer.MustLoadTemplate(w, r, "logs.html", nil)
}

type logData struct {
	EditorLog string
}

func (sah *ServerAdministrationHandler) logsAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	_ = json.NewEncoder(w).Encode(logData{
		EditorLog: logOutput.String(),
	})
}

func (sah *ServerAdministrationHandler) changelog(w http.ResponseWriter, r *http.Request) {
	sah.viewRenderer.MustLoadTemplate(w, r, "changelog.html", nil)
}
