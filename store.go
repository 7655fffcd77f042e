package editor

type Store interface {
	// Drivers
	ListDrivers() ([]*Driver, error)
	SaveDrivers(drivers []*Driver) error

	// Teams
	ListTeams() ([]*Team, error)
	SaveTeams(teams []*Team) error

	// Engines
	LoadEngines() (EngineSet, error)
	SaveEngines(engines EngineSet) error

	// Sponsors
	ListSponsors() ([]*Sponsor, error)
	SaveSponsors(sponsors []*Sponsor) error

	// Staff
	ListStaff() ([]*StaffMember, error)
	SaveStaff(staff []*StaffMember) error

	// Events
	ListEvents() ([]*Event, error)
	SaveEvents(events []*Event) error

	// Schedule
	LoadSchedule() (Schedule, error)
	SaveSchedule(schedule Schedule) error

	// Tyre Suppliers
	LoadTyreSuppliers() (TyreSupplierSet, error)
	SaveTyreSuppliers(suppliers TyreSupplierSet) error

	// Game Config
	LoadGameConfig() (*Node, error)
	SaveGameConfig(doc *Node) error

	// Audit
	GetAuditEntries() ([]*AuditEntry, error)
	AddAuditEntry(entry *AuditEntry) error

	// Meta
	SetMeta(key string, value interface{}) error
	GetMeta(key string, out interface{}) error
}
