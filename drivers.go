package editor

import (
	"encoding/json"
	"strings"
)

// TraitsList is the fixed vocabulary a driver's trait set draws from.
var TraitsList = []string{
	"hotlapper", "tyre_whisperer", "pay_driver", "overtake_artist",
	"mechanic", "clean_air_merchant", "bottlejob", "crash_happy",
	"nervous", "tyre_abuser",
}

type Driver struct {
	Name             string  `json:"name"`
	Age              int     `json:"age"`
	Talent           int     `json:"talent" min:"0" max:"100"`
	Train            int     `json:"train"`
	PayDriverAmountM float64 `json:"pay_driver_amount_m" help:"Budget the driver brings with them, in millions. Only used with the pay_driver trait."`

	BaseLapTimeSim float64 `json:"base_lap_time_sim"`
	Number         int     `json:"number"`
	Cornering      int     `json:"cornering"`
	Braking        int     `json:"braking"`
	Consistency    int     `json:"consistency"`
	Smoothness     int     `json:"smoothness"`
	Control        int     `json:"control"`

	Seasons       int `json:"seasons"`
	Championships int `json:"championships"`
	Wins          int `json:"wins"`
	Podiums       int `json:"podiums"`
	Poles         int `json:"poles"`

	Traits []string `json:"traits" input:"multiSelect" formopts:"DriverTraits"`

	Contract *DriverContract `json:"contract"`
}

func (d *Driver) RecordID() string {
	return d.Name
}

func (d *Driver) RecordTitle() string {
	if d.Name == "" {
		return "Unnamed"
	}

	return d.Name
}

func (d *Driver) setRecordName(name string) {
	d.Name = name
}

// Normalise clears contract terms when no team is selected, so an unsigned
// driver always persists the same null-team contract shape.
func (d *Driver) Normalise() {
	var traits []string

	for _, trait := range d.Traits {
		trait = strings.TrimSpace(trait)

		if trait != "" {
			traits = append(traits, trait)
		}
	}

	d.Traits = traits

	if d.Contract == nil {
		d.Contract = &DriverContract{}
	}

	if d.Contract.Team == "" {
		d.Contract.LengthWeeks = 0
		d.Contract.SalaryM = 0
		d.Contract.StartWeek = 1
		d.Contract.Role = ""
	} else if d.Contract.Role == "" {
		d.Contract.Role = DriverRoleMain
	}
}

const (
	DriverRoleMain    = "main"
	DriverRoleReserve = "reserve"
)

// DriverContract describes a driver's terms with a team. An empty Team or
// Role is persisted as JSON null.
type DriverContract struct {
	Team        string  `json:"team" input:"dropdown" formopts:"Teams"`
	LengthWeeks int     `json:"length_weeks"`
	SalaryM     float64 `json:"salary_m"`
	StartWeek   int     `json:"start_week"`
	Role        string  `json:"role" input:"dropdown" formopts:"DriverRoles"`
}

type driverContractJSON struct {
	Team        *string `json:"team"`
	LengthWeeks int     `json:"length_weeks"`
	SalaryM     float64 `json:"salary_m"`
	StartWeek   int     `json:"start_week"`
	Role        *string `json:"role"`
}

func (c DriverContract) MarshalJSON() ([]byte, error) {
	return json.Marshal(driverContractJSON{
		Team:        nullableString(c.Team),
		LengthWeeks: c.LengthWeeks,
		SalaryM:     c.SalaryM,
		StartWeek:   c.StartWeek,
		Role:        nullableString(c.Role),
	})
}

func (c *DriverContract) UnmarshalJSON(data []byte) error {
	var out driverContractJSON

	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}

	c.Team = stringOrEmpty(out.Team)
	c.LengthWeeks = out.LengthWeeks
	c.SalaryM = out.SalaryM
	c.StartWeek = out.StartWeek
	c.Role = stringOrEmpty(out.Role)

	return nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}

	return &s
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}

// DefaultDriver is the payload appended when a driver is added from the
// list screen.
func DefaultDriver() *Driver {
	return &Driver{
		Name:   "New Driver",
		Traits: []string{},
		Contract: &DriverContract{
			StartWeek: 1,
		},
	}
}

func NewDriverKind(store Store) RecordKind {
	return &listRecordKind{
		name:      "drivers",
		title:     "Drivers",
		deletable: true,
		load: func() ([]Record, error) {
			drivers, err := store.ListDrivers()

			if err != nil {
				return nil, err
			}

			records := make([]Record, len(drivers))

			for i, driver := range drivers {
				records[i] = driver
			}

			return records, nil
		},
		save: func(records []Record) error {
			drivers := make([]*Driver, len(records))

			for i, record := range records {
				drivers[i] = record.(*Driver)
			}

			return store.SaveDrivers(drivers)
		},
		defaultRecord: func() Record {
			return DefaultDriver()
		},
		options: func() (map[string][]string, error) {
			teams, err := activeTeamNames(store)

			if err != nil {
				return nil, err
			}

			return map[string][]string{
				"Teams":        teams,
				"DriverRoles":  {"", DriverRoleMain, DriverRoleReserve},
				"DriverTraits": TraitsList,
			}, nil
		},
	}
}

// activeTeamNames reads team names live from the teams file at display
// time. References can go stale after a rename; nothing here enforces them.
func activeTeamNames(store Store) ([]string, error) {
	teams, err := store.ListTeams()

	if err != nil {
		return nil, err
	}

	names := []string{""}

	for _, team := range teams {
		if team.Active {
			names = append(names, team.Name)
		}
	}

	return names, nil
}
