package editor

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestJSONStoreMissingFilesAreEmpty(t *testing.T) {
	store := NewJSONStore(t.TempDir())

	drivers, err := store.ListDrivers()

	if err != nil {
		t.Fatal(err)
	}

	if len(drivers) != 0 {
		t.Errorf("expected no drivers from a missing file, got %d", len(drivers))
	}

	engines, err := store.LoadEngines()

	if err != nil {
		t.Fatal(err)
	}

	if len(engines) != 0 {
		t.Errorf("expected no engines from a missing file, got %d", len(engines))
	}

	schedule, err := store.LoadSchedule()

	if err != nil {
		t.Fatal(err)
	}

	if len(schedule) != ScheduleWeeks {
		t.Errorf("expected a missing schedule to default to %d empty weeks, got %d", ScheduleWeeks, len(schedule))
	}
}

func TestJSONStoreMalformedFileIsEmpty(t *testing.T) {
	dir := t.TempDir()

	if err := ioutil.WriteFile(filepath.Join(dir, driversFile), []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(dir)

	drivers, err := store.ListDrivers()

	if err != nil {
		t.Fatal(err)
	}

	if len(drivers) != 0 {
		t.Errorf("expected a malformed file to read as empty, got %d drivers", len(drivers))
	}
}

func TestJSONStoreDriverRoundTrip(t *testing.T) {
	store := NewJSONStore(t.TempDir())

	signed := DefaultDriver()
	signed.Name = "Signed Driver"
	signed.Traits = []string{"hotlapper", "pay_driver"}
	signed.Contract = &DriverContract{
		Team:        "Arrow Racing",
		LengthWeeks: 52,
		SalaryM:     4.5,
		StartWeek:   1,
		Role:        DriverRoleMain,
	}

	free := DefaultDriver()
	free.Name = "Free Agent"
	free.Normalise()

	if err := store.SaveDrivers([]*Driver{signed, free}); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.ListDrivers()

	if err != nil {
		t.Fatal(err)
	}

	if len(loaded) != 2 {
		t.Fatalf("expected 2 drivers, got %d", len(loaded))
	}

	if loaded[0].Contract.Team != "Arrow Racing" || loaded[0].Contract.Role != DriverRoleMain {
		t.Errorf("signed driver contract did not round trip: %+v", loaded[0].Contract)
	}

	if len(loaded[0].Traits) != 2 {
		t.Errorf("expected 2 traits, got %v", loaded[0].Traits)
	}

	if loaded[1].Contract == nil || loaded[1].Contract.Team != "" {
		t.Errorf("free agent contract did not round trip: %+v", loaded[1].Contract)
	}
}

func TestJSONStoreUnsignedDriverSerialisesNullTeam(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	free := DefaultDriver()
	free.Name = "Free Agent"
	free.Normalise()

	if err := store.SaveDrivers([]*Driver{free}); err != nil {
		t.Fatal(err)
	}

	raw, err := ioutil.ReadFile(filepath.Join(dir, driversFile))

	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(raw), `"team": null`) {
		t.Errorf("an unsigned driver should persist a null team, got: %s", raw)
	}
}

func TestJSONStoreEngineSetRoundTrip(t *testing.T) {
	store := NewJSONStore(t.TempDir())

	engines := EngineSet{
		"Vulcan V6": {LapTimeDelta: -0.2, ReliabilityMult: 0.95, CostM: 18},
	}

	if err := store.SaveEngines(engines); err != nil {
		t.Fatal(err)
	}

	loaded, err := store.LoadEngines()

	if err != nil {
		t.Fatal(err)
	}

	engine, ok := loaded["Vulcan V6"]

	if !ok {
		t.Fatalf("expected Vulcan V6 in %v", loaded.Names())
	}

	if engine.LapTimeDelta != -0.2 {
		t.Errorf("expected lap time delta -0.2, got %f", engine.LapTimeDelta)
	}
}

func TestJSONStoreScheduleNullSlots(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	schedule := EmptySchedule()
	schedule[0] = "mel"

	if err := store.SaveSchedule(schedule); err != nil {
		t.Fatal(err)
	}

	raw, err := ioutil.ReadFile(filepath.Join(dir, scheduleFile))

	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(string(raw), `"mel"`) || !strings.Contains(string(raw), "null") {
		t.Errorf("expected filled weeks as strings and empty weeks as null, got: %s", raw)
	}

	loaded, err := store.LoadSchedule()

	if err != nil {
		t.Fatal(err)
	}

	if loaded[0] != "mel" || loaded[1] != "" {
		t.Errorf("schedule did not round trip: %v", loaded[:2])
	}
}

func TestJSONStoreGameConfigRoundTrip(t *testing.T) {
	dir := t.TempDir()
	store := NewJSONStore(dir)

	if err := ioutil.WriteFile(filepath.Join(dir, gameConfigFile), []byte(settingsFixture), 0644); err != nil {
		t.Fatal(err)
	}

	doc, err := store.LoadGameConfig()

	if err != nil {
		t.Fatal(err)
	}

	if err := store.SaveGameConfig(doc); err != nil {
		t.Fatal(err)
	}

	raw, err := ioutil.ReadFile(filepath.Join(dir, gameConfigFile))

	if err != nil {
		t.Fatal(err)
	}

	reparsed, err := ParseDocument(raw)

	if err != nil {
		t.Fatal(err)
	}

	if reparsed.Keys[0] != "game_name" {
		t.Errorf("key order should survive a save, got first key %s", reparsed.Keys[0])
	}

	if reparsed.Children["difficulty"].Children["ai_strength"].Kind != IntNode {
		t.Error("integer settings should survive a save")
	}
}

func TestJSONStoreMeta(t *testing.T) {
	store := NewJSONStore(t.TempDir())

	var version int

	if err := store.GetMeta(versionMetaKey, &version); err != ErrValueNotSet {
		t.Fatalf("expected ErrValueNotSet for a fresh store, got %v", err)
	}

	if err := store.SetMeta(versionMetaKey, 3); err != nil {
		t.Fatal(err)
	}

	if err := store.GetMeta(versionMetaKey, &version); err != nil {
		t.Fatal(err)
	}

	if version != 3 {
		t.Errorf("expected version 3, got %d", version)
	}
}

func TestJSONStoreHandlesByteOrderMark(t *testing.T) {
	dir := t.TempDir()

	contents := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`[{"name": "BOM Driver", "age": 30, "contract": null}]`)...)

	if err := ioutil.WriteFile(filepath.Join(dir, driversFile), contents, 0644); err != nil {
		t.Fatal(err)
	}

	store := NewJSONStore(dir)

	drivers, err := store.ListDrivers()

	if err != nil {
		t.Fatal(err)
	}

	if len(drivers) != 1 || drivers[0].Name != "BOM Driver" {
		t.Errorf("expected the BOM to be skipped, got %+v", drivers)
	}
}

func TestJSONStoreSaveCreatesDataDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	store := NewJSONStore(dir)

	if err := store.SaveTeams([]*Team{DefaultTeam()}); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(filepath.Join(dir, teamsFile)); err != nil {
		t.Errorf("expected the data directory to be created on save: %s", err)
	}
}
