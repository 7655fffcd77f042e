package editor

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"
)

type ScheduleHandler struct {
	*BaseHandler

	store Store
}

func NewScheduleHandler(baseHandler *BaseHandler, store Store) *ScheduleHandler {
	return &ScheduleHandler{
		BaseHandler: baseHandler,
		store:       store,
	}
}

type scheduleWeek struct {
	Week int
	Slot string
}

type scheduleTemplateVars struct {
	BaseTemplateVars

	Weeks []scheduleWeek
	Races int
}

func (sh *ScheduleHandler) view(w http.ResponseWriter, r *http.Request) {
	schedule, err := sh.store.LoadSchedule()

	if err != nil {
		logrus.WithError(err).Error("couldn't load schedule")
		AddErrorFlash(w, r, "Couldn't load the schedule")
	}

	weeks := make([]scheduleWeek, ScheduleWeeks)

	for i := 0; i < ScheduleWeeks; i++ {
		slot := ""

		if i < len(schedule) {
			slot = string(schedule[i])
		}

		weeks[i] = scheduleWeek{Week: i + 1, Slot: slot}
	}

	sh.viewRenderer.MustLoadTemplate(w, r, "schedule.html", &scheduleTemplateVars{
		Weeks: weeks,
		Races: schedule.Races(),
	})
}

// submit validates the whole calendar before writing: one bad week rejects
// every change.
func (sh *ScheduleHandler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		AddErrorFlash(w, r, "Couldn't read the submitted schedule")
		http.Redirect(w, r, "/schedule", http.StatusFound)

		return
	}

	schedule := EmptySchedule()

	for i := 0; i < ScheduleWeeks; i++ {
		schedule[i] = ScheduleSlot(r.Form.Get(fmt.Sprintf("week_%d", i+1)))
	}

	schedule = schedule.Normalise()

	if err := schedule.Validate(); err != nil {
		AddErrorFlash(w, r, err.Error())
		http.Redirect(w, r, "/schedule", http.StatusFound)

		return
	}

	if err := sh.store.SaveSchedule(schedule); err != nil {
		logrus.WithError(err).Error("couldn't save schedule")
		AddErrorFlash(w, r, "Couldn't save the schedule, try again")
	} else {
		AddFlash(w, r, fmt.Sprintf("Schedule saved, %d races planned", schedule.Races()))
	}

	http.Redirect(w, r, "/schedule", http.StatusFound)
}
