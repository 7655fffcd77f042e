package editor

import (
	"encoding/json"
	"strconv"
)

const (
	EventTeamJoin            = "team_join"
	EventRegChangeAero       = "reg_change_aero"
	EventRegChangeAeroMinor  = "reg_change_aero_minor"
	EventRegChangeEngine     = "reg_change_engine"
	EventRegChangeChassisMin = "reg_change_chassis_minor"
	EventRegChangeChassisMaj = "reg_change_chassis_major"
	EventTeamPackageAced     = "team_package_aced"
	EventTeamPackageStruggle = "team_package_struggle"
)

var EventTypes = []string{
	EventTeamJoin,
	EventRegChangeAero,
	EventRegChangeAeroMinor,
	EventRegChangeEngine,
	EventRegChangeChassisMin,
	EventRegChangeChassisMaj,
	EventTeamPackageAced,
	EventTeamPackageStruggle,
}

// teamScopedEventTypes are the event types that carry a team reference.
var teamScopedEventTypes = map[string]bool{
	EventTeamJoin: true,
}

func EventTypeIsTeamScoped(eventType string) bool {
	return teamScopedEventTypes[eventType]
}

// Event is a regulation or narrative trigger. Events have no natural key;
// their identity is their position in the collection.
type Event struct {
	Type   string  `json:"type" input:"dropdown" formopts:"EventTypes"`
	Team   string  `json:"team" input:"dropdown" formopts:"Teams" help:"Only applies to team-scoped event types."`
	Chance float64 `json:"chance" min:"0" max:"1"`

	index int
}

type eventJSON struct {
	Type   string  `json:"type"`
	Team   *string `json:"team"`
	Chance float64 `json:"chance"`
}

func (e Event) MarshalJSON() ([]byte, error) {
	return json.Marshal(eventJSON{
		Type:   e.Type,
		Team:   nullableString(e.Team),
		Chance: e.Chance,
	})
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var out eventJSON

	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}

	e.Type = out.Type
	e.Team = stringOrEmpty(out.Team)
	e.Chance = out.Chance

	return nil
}

func (e *Event) RecordID() string {
	return strconv.Itoa(e.index)
}

func (e *Event) RecordTitle() string {
	title := labelise(e.Type)

	if title == "" {
		title = "Unknown"
	}

	if e.Team != "" {
		return title + " – " + e.Team
	}

	return title
}

// Normalise strips the team from event types that cannot carry one.
func (e *Event) Normalise() {
	if !EventTypeIsTeamScoped(e.Type) {
		e.Team = ""
	}
}

func (e *Event) Validate() error {
	if e.Chance < 0 || e.Chance > 1 {
		return &ValidationError{Field: "Chance", Message: "chance must be between 0 and 1"}
	}

	return nil
}

func DefaultEvent() *Event {
	return &Event{
		Type:   EventTeamJoin,
		Chance: 0.05,
	}
}

func NewEventKind(store Store) RecordKind {
	return &listRecordKind{
		name:        "events",
		title:       "Events",
		deletable:   true,
		indexedByID: true,
		load: func() ([]Record, error) {
			events, err := store.ListEvents()

			if err != nil {
				return nil, err
			}

			records := make([]Record, len(events))

			for i, event := range events {
				event.index = i
				records[i] = event
			}

			return records, nil
		},
		save: func(records []Record) error {
			events := make([]*Event, len(records))

			for i, record := range records {
				events[i] = record.(*Event)
				events[i].index = i
			}

			return store.SaveEvents(events)
		},
		defaultRecord: func() Record {
			return DefaultEvent()
		},
		options: func() (map[string][]string, error) {
			teams, err := activeTeamNames(store)

			if err != nil {
				return nil, err
			}

			return map[string][]string{
				"Teams":      teams,
				"EventTypes": EventTypes,
			}, nil
		},
	}
}
