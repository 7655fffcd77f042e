package editor

import (
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

var ErrRecordNotFound = errors.New("editor: record not found")

// Record is a single editable entry within a collection.
type Record interface {
	// RecordID uniquely identifies the record within its kind.
	RecordID() string
	// RecordTitle is the human readable list entry for the record.
	RecordTitle() string
}

// keyedRecord is a record stored under a map key rather than in a list. The
// key lives outside the record body, so loading and renaming push it back in.
type keyedRecord interface {
	Record

	setRecordName(name string)
}

// renameable is implemented by list records whose identity can be rewritten
// when a freshly created record would collide with an existing one.
type renameable interface {
	setRecordName(name string)
}

// Normaliser lets a record clean itself up before being persisted.
type Normaliser interface {
	Normalise()
}

// Validator lets a record reject a save outright.
type Validator interface {
	Validate() error
}

// ValidationError carries the field that failed so the form can surface it
// next to the offending input. A validation failure aborts the whole save.
type ValidationError struct {
	Field   string
	Message string
}

func (v *ValidationError) Error() string {
	if v.Field == "" {
		return v.Message
	}

	return v.Field + ": " + v.Message
}

// RecordKind is one editable collection: drivers, teams, engines and so on.
// All operations load the backing file, mutate in memory and write the whole
// file back.
type RecordKind interface {
	// Name is the URL slug for the kind.
	Name() string
	// Title is the display name for the kind.
	Title() string
	// Deletable reports whether records of this kind can be removed.
	Deletable() bool

	List() ([]Record, error)
	Find(id string) (Record, error)
	// Create appends a new default record, persists it and returns it.
	Create() (Record, error)
	// Save replaces the record previously identified by originalID.
	Save(record Record, originalID string) error
	Delete(id string) error

	// FormOptions are the dropdown and multi-select option lists for the
	// kind's form, keyed by the formopts tag value.
	FormOptions() (map[string][]string, error)
}

// listRecordKind backs kinds stored as a JSON array. Identity is the record's
// own ID, or its position when indexedByID is set.
type listRecordKind struct {
	name      string
	title     string
	deletable bool

	// indexedByID means records have no natural key and are addressed by
	// their list position.
	indexedByID bool

	load          func() ([]Record, error)
	save          func([]Record) error
	defaultRecord func() Record
	options       func() (map[string][]string, error)
}

func (k *listRecordKind) Name() string {
	return k.name
}

func (k *listRecordKind) Title() string {
	return k.title
}

func (k *listRecordKind) Deletable() bool {
	return k.deletable
}

func (k *listRecordKind) List() ([]Record, error) {
	return k.load()
}

func (k *listRecordKind) Find(id string) (Record, error) {
	records, err := k.load()

	if err != nil {
		return nil, err
	}

	index, err := k.indexOf(records, id)

	if err != nil {
		return nil, err
	}

	return records[index], nil
}

func (k *listRecordKind) Create() (Record, error) {
	records, err := k.load()

	if err != nil {
		return nil, err
	}

	record := k.defaultRecord()

	if !k.indexedByID {
		ensureUniqueID(record, records)
	}

	records = append(records, record)

	err = k.persist(records, record)

	if err != nil {
		return nil, err
	}

	return record, nil
}

func (k *listRecordKind) Save(record Record, originalID string) error {
	records, err := k.load()

	if err != nil {
		return err
	}

	index, err := k.indexOf(records, originalID)

	if err != nil {
		return err
	}

	if !k.indexedByID {
		// renames must not collide with another record
		for i, existing := range records {
			if i != index && existing.RecordID() == record.RecordID() {
				return &ValidationError{Field: "Name", Message: "a record with this name already exists"}
			}
		}
	}

	records[index] = record

	return k.persist(records, record)
}

func (k *listRecordKind) Delete(id string) error {
	records, err := k.load()

	if err != nil {
		return err
	}

	index, err := k.indexOf(records, id)

	if err != nil {
		return err
	}

	records = append(records[:index], records[index+1:]...)

	return k.persist(records, nil)
}

func (k *listRecordKind) FormOptions() (map[string][]string, error) {
	if k.options == nil {
		return nil, nil
	}

	return k.options()
}

func (k *listRecordKind) indexOf(records []Record, id string) (int, error) {
	if k.indexedByID {
		index, err := strconv.Atoi(id)

		if err != nil || index < 0 || index >= len(records) {
			return 0, ErrRecordNotFound
		}

		return index, nil
	}

	for i, record := range records {
		if record.RecordID() == id {
			return i, nil
		}
	}

	return 0, ErrRecordNotFound
}

// persist normalises the collection and writes it back. Only the edited
// record is validated, so a hand-edited invalid sibling already on disk
// never blocks saving an unrelated record.
func (k *listRecordKind) persist(records []Record, edited Record) error {
	for _, record := range records {
		if n, ok := record.(Normaliser); ok {
			n.Normalise()
		}
	}

	if v, ok := edited.(Validator); ok {
		err := v.Validate()

		if err != nil {
			return err
		}
	}

	return k.save(records)
}

// ensureUniqueID renames a freshly created record if its default name is
// already taken, so two new records never share an identity.
func ensureUniqueID(record Record, records []Record) {
	r, ok := record.(renameable)

	if !ok {
		return
	}

	taken := make(map[string]bool, len(records))

	for _, existing := range records {
		taken[existing.RecordID()] = true
	}

	if taken[record.RecordID()] {
		r.setRecordName(uniqueRecordName(record.RecordID(), taken))
	}
}

// setRecordKind backs kinds stored as a JSON object keyed by record name,
// such as engines and tyre suppliers.
type setRecordKind struct {
	name      string
	title     string
	baseName  string
	deletable bool

	load          func() (map[string]keyedRecord, error)
	save          func(map[string]keyedRecord) error
	defaultRecord func() keyedRecord
}

func (k *setRecordKind) Name() string {
	return k.name
}

func (k *setRecordKind) Title() string {
	return k.title
}

func (k *setRecordKind) Deletable() bool {
	return k.deletable
}

func (k *setRecordKind) List() ([]Record, error) {
	records, err := k.load()

	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(records))

	for name := range records {
		names = append(names, name)
	}

	sort.Strings(names)

	out := make([]Record, 0, len(records))

	for _, name := range names {
		record := records[name]
		record.setRecordName(name)

		out = append(out, record)
	}

	return out, nil
}

func (k *setRecordKind) Find(id string) (Record, error) {
	records, err := k.load()

	if err != nil {
		return nil, err
	}

	record, ok := records[id]

	if !ok {
		return nil, ErrRecordNotFound
	}

	record.setRecordName(id)

	return record, nil
}

func (k *setRecordKind) Create() (Record, error) {
	records, err := k.load()

	if err != nil {
		return nil, err
	}

	record := k.defaultRecord()

	taken := make(map[string]bool, len(records))

	for name := range records {
		taken[name] = true
	}

	record.setRecordName(uniqueRecordName(k.baseName, taken))

	records[record.RecordID()] = record

	err = k.save(records)

	if err != nil {
		return nil, err
	}

	return record, nil
}

func (k *setRecordKind) Save(record Record, originalID string) error {
	keyed, ok := record.(keyedRecord)

	if !ok {
		return errors.Errorf("editor: %T is not a keyed record", record)
	}

	records, err := k.load()

	if err != nil {
		return err
	}

	if _, exists := records[originalID]; !exists {
		return ErrRecordNotFound
	}

	if record.RecordID() != originalID {
		if _, taken := records[record.RecordID()]; taken {
			return &ValidationError{Field: "Name", Message: "a record with this name already exists"}
		}

		delete(records, originalID)
	}

	if n, ok := record.(Normaliser); ok {
		n.Normalise()
	}

	if v, ok := record.(Validator); ok {
		err := v.Validate()

		if err != nil {
			return err
		}
	}

	records[record.RecordID()] = keyed

	return k.save(records)
}

func (k *setRecordKind) Delete(id string) error {
	records, err := k.load()

	if err != nil {
		return err
	}

	if _, ok := records[id]; !ok {
		return ErrRecordNotFound
	}

	delete(records, id)

	return k.save(records)
}

func (k *setRecordKind) FormOptions() (map[string][]string, error) {
	return nil, nil
}

// RecordRegistry holds every editable kind in display order.
type RecordRegistry struct {
	kinds []RecordKind
}

func NewRecordRegistry(store Store) *RecordRegistry {
	return &RecordRegistry{
		kinds: []RecordKind{
			NewDriverKind(store),
			NewTeamKind(store),
			NewEngineKind(store),
			NewSponsorKind(store),
			NewStaffKind(store),
			NewEventKind(store),
			NewTyreSupplierKind(store),
		},
	}
}

func (r *RecordRegistry) Kinds() []RecordKind {
	return r.kinds
}

func (r *RecordRegistry) Get(name string) (RecordKind, error) {
	for _, kind := range r.kinds {
		if kind.Name() == name {
			return kind, nil
		}
	}

	return nil, errors.Errorf("editor: unknown record kind: %s", name)
}
