package editor

import (
	"github.com/sirupsen/logrus"
)

const (
	CurrentMigrationVersion = 3
	versionMetaKey          = "version"
)

func Migrate(store Store) error {
	var storeVersion int

	err := store.GetMeta(versionMetaKey, &storeVersion)

	if err != nil && err != ErrValueNotSet {
		return err
	}

	for i := storeVersion; i < CurrentMigrationVersion; i++ {
		err := migrations[i](store)

		if err != nil {
			return err
		}
	}

	return store.SetMeta(versionMetaKey, CurrentMigrationVersion)
}

type migrationFunc func(Store) error

var migrations = []migrationFunc{
	seedGameConfig,
	seedExampleDriver,
	seedSchedule,
}

func seedGameConfig(rs Store) error {
	logrus.Infof("Running migration: Seed Game Config")

	doc, err := rs.LoadGameConfig()

	if err != nil {
		return err
	}

	if len(doc.Keys) > 0 {
		return nil
	}

	doc.SetKey("game_name", &Node{Kind: StringNode, Str: "Team Principal Manager"})
	doc.SetKey("version", &Node{Kind: StringNode, Str: "0.1"})

	return rs.SaveGameConfig(doc)
}

func seedExampleDriver(rs Store) error {
	logrus.Infof("Running migration: Seed Example Driver")

	drivers, err := rs.ListDrivers()

	if err != nil {
		return err
	}

	if len(drivers) > 0 {
		return nil
	}

	driver := DefaultDriver()
	driver.Name = "Example Driver"
	driver.Age = 24
	driver.Talent = 50
	driver.Number = 1

	return rs.SaveDrivers([]*Driver{driver})
}

func seedSchedule(rs Store) error {
	logrus.Infof("Running migration: Seed Empty Schedule")

	schedule, err := rs.LoadSchedule()

	if err != nil {
		return err
	}

	return rs.SaveSchedule(schedule.Normalise())
}
