package editor

import (
	"testing"
)

func testStore(t *testing.T) Store {
	t.Helper()

	return NewJSONStore(t.TempDir())
}

func TestDriverKindAddThenList(t *testing.T) {
	store := testStore(t)
	kind := NewDriverKind(store)

	record, err := kind.Create()

	if err != nil {
		t.Fatal(err)
	}

	if record.RecordID() != "New Driver" {
		t.Errorf("expected the default driver name, got %q", record.RecordID())
	}

	records, err := kind.List()

	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 {
		t.Fatalf("expected 1 record after create, got %d", len(records))
	}

	if records[0].RecordTitle() != "New Driver" {
		t.Errorf("the new record should appear in the list, got %q", records[0].RecordTitle())
	}
}

func TestDriverKindCreateAvoidsNameCollision(t *testing.T) {
	store := testStore(t)
	kind := NewDriverKind(store)

	first, err := kind.Create()

	if err != nil {
		t.Fatal(err)
	}

	second, err := kind.Create()

	if err != nil {
		t.Fatal(err)
	}

	if first.RecordID() == second.RecordID() {
		t.Errorf("two created records share the identity %q", first.RecordID())
	}
}

func TestTeamKindDeleteByIdentity(t *testing.T) {
	store := testStore(t)

	alpha := DefaultTeam()
	alpha.Name = "Alpha"

	beta := DefaultTeam()
	beta.Name = "Beta"

	if err := store.SaveTeams([]*Team{alpha, beta}); err != nil {
		t.Fatal(err)
	}

	kind := NewTeamKind(store)

	if err := kind.Delete("Alpha"); err != nil {
		t.Fatal(err)
	}

	records, err := kind.List()

	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 || records[0].RecordID() != "Beta" {
		t.Errorf("expected only Beta to remain, got %v", records)
	}

	if err := kind.Delete("Alpha"); err != ErrRecordNotFound {
		t.Errorf("deleting a missing record should report not found, got %v", err)
	}
}

func TestListKindSaveRejectsRenameCollision(t *testing.T) {
	store := testStore(t)

	alpha := DefaultTeam()
	alpha.Name = "Alpha"

	beta := DefaultTeam()
	beta.Name = "Beta"

	if err := store.SaveTeams([]*Team{alpha, beta}); err != nil {
		t.Fatal(err)
	}

	kind := NewTeamKind(store)

	record, err := kind.Find("Beta")

	if err != nil {
		t.Fatal(err)
	}

	record.(*Team).Name = "Alpha"

	err = kind.Save(record, "Beta")

	if _, ok := err.(*ValidationError); !ok {
		t.Errorf("renaming onto an existing record should fail validation, got %v", err)
	}
}

func TestSponsorValidationAbortsSave(t *testing.T) {
	store := testStore(t)
	kind := NewSponsorKind(store)

	record, err := kind.Create()

	if err != nil {
		t.Fatal(err)
	}

	sponsor := record.(*Sponsor)
	sponsor.Rating = 11

	err = kind.Save(sponsor, sponsor.Name)

	validationErr, ok := err.(*ValidationError)

	if !ok {
		t.Fatalf("expected a ValidationError, got %v", err)
	}

	if validationErr.Field != "Rating" {
		t.Errorf("expected the error to name the Rating field, got %q", validationErr.Field)
	}

	loaded, err := store.ListSponsors()

	if err != nil {
		t.Fatal(err)
	}

	if loaded[0].Rating != 1 {
		t.Errorf("a failed validation must not write, rating on disk is %d", loaded[0].Rating)
	}
}

func TestSponsorSaveIgnoresInvalidSibling(t *testing.T) {
	store := testStore(t)

	broken := &Sponsor{Name: "Hand Edited", Rating: 0}
	fine := DefaultSponsor()

	if err := store.SaveSponsors([]*Sponsor{broken, fine}); err != nil {
		t.Fatal(err)
	}

	kind := NewSponsorKind(store)

	record, err := kind.Find(fine.Name)

	if err != nil {
		t.Fatal(err)
	}

	record.(*Sponsor).AmountM = 25

	if err := kind.Save(record, fine.Name); err != nil {
		t.Fatalf("an invalid sibling on disk should not block the save, got %v", err)
	}

	loaded, err := store.ListSponsors()

	if err != nil {
		t.Fatal(err)
	}

	if loaded[1].AmountM != 25 {
		t.Errorf("expected the edited sponsor to persist, got %+v", loaded[1])
	}
}

func TestEngineKindGeneratesUniqueNames(t *testing.T) {
	store := testStore(t)
	kind := NewEngineKind(store)

	first, err := kind.Create()

	if err != nil {
		t.Fatal(err)
	}

	second, err := kind.Create()

	if err != nil {
		t.Fatal(err)
	}

	if first.RecordID() != "New Engine" {
		t.Errorf("expected the first engine to take the base name, got %q", first.RecordID())
	}

	if second.RecordID() != "New Engine 1" {
		t.Errorf("expected the second engine to get a counter, got %q", second.RecordID())
	}
}

func TestEngineKindRename(t *testing.T) {
	store := testStore(t)

	if err := store.SaveEngines(EngineSet{
		"Old Name": {ReliabilityMult: 1},
	}); err != nil {
		t.Fatal(err)
	}

	kind := NewEngineKind(store)

	record, err := kind.Find("Old Name")

	if err != nil {
		t.Fatal(err)
	}

	record.(*Engine).Name = "New Name"

	if err := kind.Save(record, "Old Name"); err != nil {
		t.Fatal(err)
	}

	engines, err := store.LoadEngines()

	if err != nil {
		t.Fatal(err)
	}

	if _, ok := engines["Old Name"]; ok {
		t.Error("the old key should be gone after a rename")
	}

	if _, ok := engines["New Name"]; !ok {
		t.Errorf("expected the engine under its new key, got %v", engines.Names())
	}
}

func TestEventKindUsesIndexIdentity(t *testing.T) {
	store := testStore(t)

	join := DefaultEvent()
	join.Team = "Alpha"

	regChange := DefaultEvent()
	regChange.Type = EventRegChangeEngine

	if err := store.SaveEvents([]*Event{join, regChange}); err != nil {
		t.Fatal(err)
	}

	kind := NewEventKind(store)

	record, err := kind.Find("1")

	if err != nil {
		t.Fatal(err)
	}

	if record.(*Event).Type != EventRegChangeEngine {
		t.Errorf("expected index 1 to be the regulation change, got %s", record.(*Event).Type)
	}

	if err := kind.Delete("0"); err != nil {
		t.Fatal(err)
	}

	records, err := kind.List()

	if err != nil {
		t.Fatal(err)
	}

	if len(records) != 1 || records[0].RecordID() != "0" {
		t.Errorf("after deleting index 0 the remaining event should re-index to 0, got %v", records)
	}

	if _, err := kind.Find("7"); err != ErrRecordNotFound {
		t.Errorf("an out of range index should report not found, got %v", err)
	}
}

func TestEventNormaliseClearsTeamForGlobalTypes(t *testing.T) {
	event := &Event{
		Type: EventRegChangeAero,
		Team: "Alpha",
	}

	event.Normalise()

	if event.Team != "" {
		t.Errorf("a regulation change cannot reference a team, got %q", event.Team)
	}
}

func TestStaffNormaliseContract(t *testing.T) {
	unassigned := DefaultStaffMember()
	unassigned.Contract = &StaffContract{Team: "Left Over", SalaryM: 3}

	unassigned.Normalise()

	if unassigned.Contract != nil {
		t.Errorf("unassigned staff should lose their contract, got %+v", unassigned.Contract)
	}

	assigned := DefaultStaffMember()
	assigned.Team = "Alpha"

	assigned.Normalise()

	if assigned.Contract == nil || assigned.Contract.Team != "Alpha" {
		t.Errorf("an assigned member's contract should default to their team, got %+v", assigned.Contract)
	}
}

func TestRegistryGet(t *testing.T) {
	registry := NewRecordRegistry(testStore(t))

	if _, err := registry.Get("drivers"); err != nil {
		t.Errorf("expected the drivers kind to resolve, got %v", err)
	}

	if _, err := registry.Get("no-such-kind"); err == nil {
		t.Error("expected an unknown kind to error")
	}
}
