package editor

import "encoding/json"

const (
	StaffRoleTechnicalDirector = "technical_director"
	StaffRoleChiefDesigner     = "chief_designer"
	StaffRoleHeadOfDynamics    = "head_of_dynamics"
	StaffRoleChiefMechanic     = "chief_mechanic"
)

var StaffRoles = []string{
	StaffRoleTechnicalDirector,
	StaffRoleChiefDesigner,
	StaffRoleHeadOfDynamics,
	StaffRoleChiefMechanic,
}

type StaffMember struct {
	Name  string `json:"name"`
	Role  string `json:"role" input:"dropdown" formopts:"StaffRoles"`
	Team  string `json:"team" input:"dropdown" formopts:"Teams"`
	Skill int    `json:"skill" min:"0" max:"100"`
	Age   int    `json:"age"`

	Contract *StaffContract `json:"contract"`
}

type StaffContract struct {
	Team        string  `json:"team" input:"dropdown" formopts:"Teams"`
	LengthWeeks int     `json:"length_weeks"`
	SalaryM     float64 `json:"salary_m"`
	StartWeek   int     `json:"start_week"`
}

type staffMemberJSON struct {
	Name     string         `json:"name"`
	Role     string         `json:"role"`
	Team     *string        `json:"team"`
	Skill    int            `json:"skill"`
	Age      int            `json:"age"`
	Contract *StaffContract `json:"contract"`
}

func (s StaffMember) MarshalJSON() ([]byte, error) {
	return json.Marshal(staffMemberJSON{
		Name:     s.Name,
		Role:     s.Role,
		Team:     nullableString(s.Team),
		Skill:    s.Skill,
		Age:      s.Age,
		Contract: s.Contract,
	})
}

func (s *StaffMember) UnmarshalJSON(data []byte) error {
	var out staffMemberJSON

	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}

	s.Name = out.Name
	s.Role = out.Role
	s.Team = stringOrEmpty(out.Team)
	s.Skill = out.Skill
	s.Age = out.Age
	s.Contract = out.Contract

	return nil
}

func (s *StaffMember) RecordID() string {
	return s.Name
}

func (s *StaffMember) RecordTitle() string {
	if s.Name == "" {
		return "Unnamed"
	}

	return s.Name
}

func (s *StaffMember) setRecordName(name string) {
	s.Name = name
}

// Normalise drops the contract entirely for unassigned staff, and defaults
// the contract's team to the member's team when one was left blank.
func (s *StaffMember) Normalise() {
	if s.Team == "" {
		s.Contract = nil

		return
	}

	if s.Contract == nil {
		s.Contract = &StaffContract{StartWeek: 1}
	}

	if s.Contract.Team == "" {
		s.Contract.Team = s.Team
	}
}

func DefaultStaffMember() *StaffMember {
	return &StaffMember{
		Name:  "New Staff",
		Role:  StaffRoles[0],
		Skill: 10,
		Age:   30,
	}
}

func NewStaffKind(store Store) RecordKind {
	return &listRecordKind{
		name:      "staff",
		title:     "Staff",
		deletable: true,
		load: func() ([]Record, error) {
			staff, err := store.ListStaff()

			if err != nil {
				return nil, err
			}

			records := make([]Record, len(staff))

			for i, member := range staff {
				records[i] = member
			}

			return records, nil
		},
		save: func(records []Record) error {
			staff := make([]*StaffMember, len(records))

			for i, record := range records {
				staff[i] = record.(*StaffMember)
			}

			return store.SaveStaff(staff)
		},
		defaultRecord: func() Record {
			return DefaultStaffMember()
		},
		options: func() (map[string][]string, error) {
			teams, err := activeTeamNames(store)

			if err != nil {
				return nil, err
			}

			return map[string][]string{
				"Teams":      teams,
				"StaffRoles": StaffRoles,
			}, nil
		},
	}
}
