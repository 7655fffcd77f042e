package editor

import (
	"encoding/json"
	"io/ioutil"
	"os"
	"path/filepath"
	"sync"

	"github.com/dimchansky/utfbom"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const (
	maxAuditEntries = 1000

	driversFile       = "drivers.json"
	teamsFile         = "teams.json"
	enginesFile       = "engines.json"
	sponsorsFile      = "sponsors.json"
	staffFile         = "staff.json"
	eventsFile        = "events.json"
	scheduleFile      = "schedule.json"
	gameConfigFile    = "config.json"
	tyreSuppliersFile = "tyre_suppliers.json"

	auditFile = "audit.json"
	metaDir   = "meta"
)

func NewJSONStore(dir string) Store {
	return &JSONStore{
		base: dir,
	}
}

// JSONStore persists each entity kind to one JSON file in a fixed data
// directory. Collections are read and rewritten wholesale.
type JSONStore struct {
	base string

	mutex sync.RWMutex
}

func (rs *JSONStore) encodeFile(filename string, data interface{}) error {
	rs.mutex.Lock()
	defer rs.mutex.Unlock()

	filename = filepath.Join(rs.base, filename)

	dir := filepath.Dir(filename)

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		err := os.MkdirAll(dir, 0755)

		if err != nil {
			return errors.Wrap(err, "editor: couldn't create data directory")
		}
	} else if err != nil {
		return err
	}

	tmp, err := ioutil.TempFile(dir, filepath.Base(filename)+".tmp")

	if err != nil {
		return errors.Wrap(err, "editor: couldn't create temp file")
	}

	enc := json.NewEncoder(tmp)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)

	if err := enc.Encode(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())

		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())

		return err
	}

	// a crash mid-write must not corrupt the previous contents
	return os.Rename(tmp.Name(), filename)
}

// decodeFile reads a whole JSON file into out. A missing file or malformed
// contents are not errors: the collection is treated as empty and the
// problem is logged.
func (rs *JSONStore) decodeFile(filename string, out interface{}) error {
	rs.mutex.RLock()
	defer rs.mutex.RUnlock()

	filename = filepath.Join(rs.base, filename)

	f, err := os.Open(filename)

	if os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return err
	}

	defer f.Close()

	// hand-edited files occasionally carry a byte order mark
	if err := json.NewDecoder(utfbom.SkipOnly(f)).Decode(out); err != nil {
		logrus.WithError(err).Errorf("couldn't parse %s, treating as empty", filename)
	}

	return nil
}

func (rs *JSONStore) ListDrivers() ([]*Driver, error) {
	var drivers []*Driver

	err := rs.decodeFile(driversFile, &drivers)

	return drivers, err
}

func (rs *JSONStore) SaveDrivers(drivers []*Driver) error {
	if drivers == nil {
		drivers = []*Driver{}
	}

	return rs.encodeFile(driversFile, drivers)
}

func (rs *JSONStore) ListTeams() ([]*Team, error) {
	var teams []*Team

	err := rs.decodeFile(teamsFile, &teams)

	return teams, err
}

func (rs *JSONStore) SaveTeams(teams []*Team) error {
	if teams == nil {
		teams = []*Team{}
	}

	return rs.encodeFile(teamsFile, teams)
}

func (rs *JSONStore) LoadEngines() (EngineSet, error) {
	var wrapper engineSetWrapper

	err := rs.decodeFile(enginesFile, &wrapper)

	if wrapper.Engines == nil {
		wrapper.Engines = EngineSet{}
	}

	return wrapper.Engines, err
}

func (rs *JSONStore) SaveEngines(engines EngineSet) error {
	if engines == nil {
		engines = EngineSet{}
	}

	return rs.encodeFile(enginesFile, engineSetWrapper{Engines: engines})
}

func (rs *JSONStore) ListSponsors() ([]*Sponsor, error) {
	var sponsors []*Sponsor

	err := rs.decodeFile(sponsorsFile, &sponsors)

	return sponsors, err
}

func (rs *JSONStore) SaveSponsors(sponsors []*Sponsor) error {
	if sponsors == nil {
		sponsors = []*Sponsor{}
	}

	return rs.encodeFile(sponsorsFile, sponsors)
}

func (rs *JSONStore) ListStaff() ([]*StaffMember, error) {
	var staff []*StaffMember

	err := rs.decodeFile(staffFile, &staff)

	return staff, err
}

func (rs *JSONStore) SaveStaff(staff []*StaffMember) error {
	if staff == nil {
		staff = []*StaffMember{}
	}

	return rs.encodeFile(staffFile, staff)
}

func (rs *JSONStore) ListEvents() ([]*Event, error) {
	var events []*Event

	err := rs.decodeFile(eventsFile, &events)

	return events, err
}

func (rs *JSONStore) SaveEvents(events []*Event) error {
	if events == nil {
		events = []*Event{}
	}

	return rs.encodeFile(eventsFile, events)
}

func (rs *JSONStore) LoadSchedule() (Schedule, error) {
	var schedule Schedule

	err := rs.decodeFile(scheduleFile, &schedule)

	if len(schedule) == 0 {
		schedule = EmptySchedule()
	}

	return schedule, err
}

func (rs *JSONStore) SaveSchedule(schedule Schedule) error {
	return rs.encodeFile(scheduleFile, schedule)
}

func (rs *JSONStore) LoadTyreSuppliers() (TyreSupplierSet, error) {
	var wrapper tyreSupplierSetWrapper

	err := rs.decodeFile(tyreSuppliersFile, &wrapper)

	if wrapper.Suppliers == nil {
		wrapper.Suppliers = TyreSupplierSet{}
	}

	return wrapper.Suppliers, err
}

func (rs *JSONStore) SaveTyreSuppliers(suppliers TyreSupplierSet) error {
	if suppliers == nil {
		suppliers = TyreSupplierSet{}
	}

	return rs.encodeFile(tyreSuppliersFile, tyreSupplierSetWrapper{Suppliers: suppliers})
}

func (rs *JSONStore) LoadGameConfig() (*Node, error) {
	rs.mutex.RLock()

	filename := filepath.Join(rs.base, gameConfigFile)

	data, err := ioutil.ReadFile(filename)

	rs.mutex.RUnlock()

	if os.IsNotExist(err) {
		return NewObjectNode(), nil
	} else if err != nil {
		return nil, err
	}

	doc, err := ParseDocument(data)

	if err != nil {
		logrus.WithError(err).Errorf("couldn't parse %s, treating as empty", filename)

		return NewObjectNode(), nil
	}

	return doc, nil
}

func (rs *JSONStore) SaveGameConfig(doc *Node) error {
	return rs.encodeFile(gameConfigFile, doc)
}

func (rs *JSONStore) GetAuditEntries() ([]*AuditEntry, error) {
	var entries []*AuditEntry

	err := rs.decodeFile(auditFile, &entries)

	return entries, err
}

func (rs *JSONStore) AddAuditEntry(entry *AuditEntry) error {
	entries, err := rs.GetAuditEntries()

	if err != nil {
		return err
	}

	entries = append(entries, entry)

	if len(entries) > maxAuditEntries {
		entries = entries[20:]
	}

	return rs.encodeFile(auditFile, entries)
}

func (rs *JSONStore) SetMeta(key string, value interface{}) error {
	return rs.encodeFile(filepath.Join(metaDir, key+".json"), value)
}

var ErrValueNotSet = errors.New("editor: value not set")

func (rs *JSONStore) GetMeta(key string, out interface{}) error {
	rs.mutex.RLock()
	defer rs.mutex.RUnlock()

	filename := filepath.Join(rs.base, metaDir, key+".json")

	f, err := os.Open(filename)

	if os.IsNotExist(err) {
		return ErrValueNotSet
	} else if err != nil {
		return err
	}

	defer f.Close()

	return json.NewDecoder(f).Decode(out)
}
