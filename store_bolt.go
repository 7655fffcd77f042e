package editor

import (
	"encoding/json"

	"github.com/etcd-io/bbolt"
	"github.com/sirupsen/logrus"
)

// BoltStore keeps each collection as one encoded blob, mirroring the whole
// file semantics of the JSON store.
type BoltStore struct {
	db *bbolt.DB
}

func NewBoltStore(db *bbolt.DB) Store {
	return &BoltStore{db: db}
}

var (
	driversBucketName       = []byte("drivers")
	teamsBucketName         = []byte("teams")
	enginesBucketName       = []byte("engines")
	sponsorsBucketName      = []byte("sponsors")
	staffBucketName         = []byte("staff")
	eventsBucketName        = []byte("events")
	scheduleBucketName      = []byte("schedule")
	tyreSuppliersBucketName = []byte("tyre_suppliers")
	gameConfigBucketName    = []byte("game_config")
	auditBucketName         = []byte("audit")
	metaBucketName          = []byte("meta")

	collectionKey = []byte("data")
)

func (rs *BoltStore) encode(bucketName []byte, data interface{}) error {
	return rs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(bucketName)

		if err != nil {
			return err
		}

		encoded, err := json.Marshal(data)

		if err != nil {
			return err
		}

		return bkt.Put(collectionKey, encoded)
	})
}

// decode reads a collection blob into out. A missing bucket means the
// collection was never written; malformed contents are logged and treated as
// empty, same as a broken file on disk.
func (rs *BoltStore) decode(bucketName []byte, out interface{}) error {
	return rs.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(bucketName)

		if bkt == nil {
			return nil
		}

		data := bkt.Get(collectionKey)

		if data == nil {
			return nil
		}

		if err := json.Unmarshal(data, out); err != nil {
			logrus.WithError(err).Errorf("couldn't parse %s, treating as empty", string(bucketName))
		}

		return nil
	})
}

func (rs *BoltStore) ListDrivers() ([]*Driver, error) {
	var drivers []*Driver

	err := rs.decode(driversBucketName, &drivers)

	return drivers, err
}

func (rs *BoltStore) SaveDrivers(drivers []*Driver) error {
	if drivers == nil {
		drivers = []*Driver{}
	}

	return rs.encode(driversBucketName, drivers)
}

func (rs *BoltStore) ListTeams() ([]*Team, error) {
	var teams []*Team

	err := rs.decode(teamsBucketName, &teams)

	return teams, err
}

func (rs *BoltStore) SaveTeams(teams []*Team) error {
	if teams == nil {
		teams = []*Team{}
	}

	return rs.encode(teamsBucketName, teams)
}

func (rs *BoltStore) LoadEngines() (EngineSet, error) {
	var wrapper engineSetWrapper

	err := rs.decode(enginesBucketName, &wrapper)

	if wrapper.Engines == nil {
		wrapper.Engines = EngineSet{}
	}

	return wrapper.Engines, err
}

func (rs *BoltStore) SaveEngines(engines EngineSet) error {
	if engines == nil {
		engines = EngineSet{}
	}

	return rs.encode(enginesBucketName, engineSetWrapper{Engines: engines})
}

func (rs *BoltStore) ListSponsors() ([]*Sponsor, error) {
	var sponsors []*Sponsor

	err := rs.decode(sponsorsBucketName, &sponsors)

	return sponsors, err
}

func (rs *BoltStore) SaveSponsors(sponsors []*Sponsor) error {
	if sponsors == nil {
		sponsors = []*Sponsor{}
	}

	return rs.encode(sponsorsBucketName, sponsors)
}

func (rs *BoltStore) ListStaff() ([]*StaffMember, error) {
	var staff []*StaffMember

	err := rs.decode(staffBucketName, &staff)

	return staff, err
}

func (rs *BoltStore) SaveStaff(staff []*StaffMember) error {
	if staff == nil {
		staff = []*StaffMember{}
	}

	return rs.encode(staffBucketName, staff)
}

func (rs *BoltStore) ListEvents() ([]*Event, error) {
	var events []*Event

	err := rs.decode(eventsBucketName, &events)

	return events, err
}

func (rs *BoltStore) SaveEvents(events []*Event) error {
	if events == nil {
		events = []*Event{}
	}

	return rs.encode(eventsBucketName, events)
}

func (rs *BoltStore) LoadSchedule() (Schedule, error) {
	var schedule Schedule

	err := rs.decode(scheduleBucketName, &schedule)

	if len(schedule) == 0 {
		schedule = EmptySchedule()
	}

	return schedule, err
}

func (rs *BoltStore) SaveSchedule(schedule Schedule) error {
	return rs.encode(scheduleBucketName, schedule)
}

func (rs *BoltStore) LoadTyreSuppliers() (TyreSupplierSet, error) {
	var wrapper tyreSupplierSetWrapper

	err := rs.decode(tyreSuppliersBucketName, &wrapper)

	if wrapper.Suppliers == nil {
		wrapper.Suppliers = TyreSupplierSet{}
	}

	return wrapper.Suppliers, err
}

func (rs *BoltStore) SaveTyreSuppliers(suppliers TyreSupplierSet) error {
	if suppliers == nil {
		suppliers = TyreSupplierSet{}
	}

	return rs.encode(tyreSuppliersBucketName, tyreSupplierSetWrapper{Suppliers: suppliers})
}

func (rs *BoltStore) LoadGameConfig() (*Node, error) {
	var raw []byte

	err := rs.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(gameConfigBucketName)

		if bkt == nil {
			return nil
		}

		if data := bkt.Get(collectionKey); data != nil {
			raw = append(raw, data...)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	if raw == nil {
		return NewObjectNode(), nil
	}

	doc, err := ParseDocument(raw)

	if err != nil {
		logrus.WithError(err).Error("couldn't parse stored game config, treating as empty")

		return NewObjectNode(), nil
	}

	return doc, nil
}

func (rs *BoltStore) SaveGameConfig(doc *Node) error {
	return rs.encode(gameConfigBucketName, doc)
}

func (rs *BoltStore) GetAuditEntries() ([]*AuditEntry, error) {
	var entries []*AuditEntry

	err := rs.decode(auditBucketName, &entries)

	return entries, err
}

func (rs *BoltStore) AddAuditEntry(entry *AuditEntry) error {
	entries, err := rs.GetAuditEntries()

	if err != nil {
		return err
	}

	entries = append(entries, entry)

	if len(entries) > maxAuditEntries {
		entries = entries[20:]
	}

	return rs.encode(auditBucketName, entries)
}

func (rs *BoltStore) SetMeta(key string, value interface{}) error {
	return rs.db.Update(func(tx *bbolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists(metaBucketName)

		if err != nil {
			return err
		}

		encoded, err := json.Marshal(value)

		if err != nil {
			return err
		}

		return bkt.Put([]byte(key), encoded)
	})
}

func (rs *BoltStore) GetMeta(key string, out interface{}) error {
	return rs.db.View(func(tx *bbolt.Tx) error {
		bkt := tx.Bucket(metaBucketName)

		if bkt == nil {
			return ErrValueNotSet
		}

		data := bkt.Get([]byte(key))

		if data == nil {
			return ErrValueNotSet
		}

		return json.Unmarshal(data, out)
	})
}
