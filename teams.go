package editor

import "encoding/json"

const (
	TyreContractPartner  = "partner"
	TyreContractWorks    = "works"
	TyreContractCustomer = "customer"
)

// TyreContractTypes in display order; partner is the default for new teams.
var TyreContractTypes = []string{TyreContractPartner, TyreContractWorks, TyreContractCustomer}

type Team struct {
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	Country   string `json:"country"`
	Active    bool   `json:"active"`

	Colour   Colour  `json:"colour"`
	BudgetM  float64 `json:"budget_m"`
	Prestige int     `json:"prestige" min:"0" max:"100"`

	Performance TeamPerformance `json:"performance"`
	Upgrades    TeamUpgrades    `json:"upgrades"`

	Engine              string `json:"engine" input:"dropdown" formopts:"Engines"`
	EngineContractWeeks int    `json:"engine_contract_weeks"`

	History      TeamHistory  `json:"history"`
	Headquarters Headquarters `json:"headquarters"`
	TyreContract TyreContract `json:"tyre_contract"`
}

// Colour is a team's livery colour, persisted as an RGB triple.
type Colour struct {
	R int `json:"-" input:"int" min:"0" max:"255"`
	G int `json:"-" input:"int" min:"0" max:"255"`
	B int `json:"-" input:"int" min:"0" max:"255"`
}

func (c Colour) MarshalJSON() ([]byte, error) {
	return json.Marshal([3]int{c.R, c.G, c.B})
}

func (c *Colour) UnmarshalJSON(data []byte) error {
	var triple [3]int

	if err := json.Unmarshal(data, &triple); err != nil {
		return err
	}

	c.R, c.G, c.B = triple[0], triple[1], triple[2]

	return nil
}

type TeamPerformance struct {
	Aero       float64 `json:"aero"`
	Chassis    float64 `json:"chassis"`
	Powertrain float64 `json:"powertrain"`
}

type TeamUpgrades struct {
	Aero    int `json:"aero"`
	Chassis int `json:"chassis"`
	Engine  int `json:"engine"`
}

type TeamHistory struct {
	Championships int `json:"championships"`
	Wins          int `json:"wins"`
	Podiums       int `json:"podiums"`
	Poles         int `json:"poles"`
}

type Headquarters struct {
	WindTunnel int `json:"wind_tunnel"`
	Factory    int `json:"factory"`
	Simulator  int `json:"simulator"`
	TestTrack  int `json:"test_track"`
}

type TyreContract struct {
	Supplier string `json:"supplier" input:"dropdown" formopts:"TyreSuppliers"`
	Type     string `json:"type" input:"dropdown" formopts:"TyreContractTypes"`
}

func (t *Team) RecordID() string {
	return t.Name
}

func (t *Team) RecordTitle() string {
	if t.Name == "" {
		return "Unnamed"
	}

	return t.Name
}

func (t *Team) setRecordName(name string) {
	t.Name = name
}

func (t *Team) Normalise() {
	if t.TyreContract.Type == "" {
		t.TyreContract.Type = TyreContractPartner
	}

	if t.Engine == "" {
		t.EngineContractWeeks = 0
	}
}

func DefaultTeam() *Team {
	return &Team{
		Name:   "New Team",
		Active: true,
		TyreContract: TyreContract{
			Type: TyreContractPartner,
		},
	}
}

func NewTeamKind(store Store) RecordKind {
	return &listRecordKind{
		name:      "teams",
		title:     "Teams",
		deletable: true,
		load: func() ([]Record, error) {
			teams, err := store.ListTeams()

			if err != nil {
				return nil, err
			}

			records := make([]Record, len(teams))

			for i, team := range teams {
				records[i] = team
			}

			return records, nil
		},
		save: func(records []Record) error {
			teams := make([]*Team, len(records))

			for i, record := range records {
				teams[i] = record.(*Team)
			}

			return store.SaveTeams(teams)
		},
		defaultRecord: func() Record {
			return DefaultTeam()
		},
		options: func() (map[string][]string, error) {
			engines, err := store.LoadEngines()

			if err != nil {
				return nil, err
			}

			suppliers, err := store.LoadTyreSuppliers()

			if err != nil {
				return nil, err
			}

			return map[string][]string{
				"Engines":           append([]string{""}, engines.Names()...),
				"TyreSuppliers":     append([]string{""}, suppliers.Names()...),
				"TyreContractTypes": TyreContractTypes,
			}, nil
		},
	}
}
