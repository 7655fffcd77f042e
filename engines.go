package editor

import (
	"fmt"
	"sort"
)

// Engine is keyed by name in the engines file; the name itself lives on the
// wrapper map, not in the record body.
type Engine struct {
	Name string `json:"-" input:"string"`

	LapTimeDelta    float64 `json:"lap_time_delta" help:"Seconds added to (or removed from) a lap."`
	ReliabilityMult float64 `json:"reliability_mult"`
	CostM           float64 `json:"cost_m"`
}

func (e *Engine) RecordID() string {
	return e.Name
}

func (e *Engine) RecordTitle() string {
	if e.Name == "" {
		return "Unnamed"
	}

	return e.Name
}

func (e *Engine) setRecordName(name string) {
	e.Name = name
}

type EngineSet map[string]*Engine

func (s EngineSet) Names() []string {
	names := make([]string, 0, len(s))

	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

type engineSetWrapper struct {
	Engines EngineSet `json:"engines"`
}

func DefaultEngine() *Engine {
	return &Engine{
		ReliabilityMult: 1,
	}
}

func NewEngineKind(store Store) RecordKind {
	return &setRecordKind{
		name:      "engines",
		title:     "Engines",
		baseName:  "New Engine",
		deletable: true,
		load: func() (map[string]keyedRecord, error) {
			engines, err := store.LoadEngines()

			if err != nil {
				return nil, err
			}

			records := make(map[string]keyedRecord, len(engines))

			for name, engine := range engines {
				records[name] = engine
			}

			return records, nil
		},
		save: func(records map[string]keyedRecord) error {
			engines := make(EngineSet, len(records))

			for name, record := range records {
				engines[name] = record.(*Engine)
			}

			return store.SaveEngines(engines)
		},
		defaultRecord: func() keyedRecord {
			return DefaultEngine()
		},
	}
}

// uniqueRecordName appends a counter until the name is free, so repeatedly
// adding records never clobbers an existing key.
func uniqueRecordName(base string, taken map[string]bool) string {
	name := base

	for counter := 1; ; counter++ {
		if !taken[name] {
			return name
		}

		name = fmt.Sprintf("%s %d", base, counter)
	}
}
