package editor

import "sort"

// CompoundOffsets are per-compound pace or durability offsets in the
// -1 to 1 range.
type CompoundOffsets struct {
	Soft   float64 `json:"soft" min:"-1" max:"1"`
	Medium float64 `json:"medium" min:"-1" max:"1"`
	Hard   float64 `json:"hard" min:"-1" max:"1"`
}

type AttributeOffsets struct {
	Pace       float64 `json:"pace"`
	Durability float64 `json:"durability"`
}

type ContractPrices struct {
	Works    float64 `json:"works"`
	Partner  float64 `json:"partner"`
	Customer float64 `json:"customer"`
}

type TyreSupplier struct {
	Name string `json:"-" input:"string"`

	Pace       CompoundOffsets  `json:"pace"`
	Durability CompoundOffsets  `json:"durability"`
	Prices     ContractPrices   `json:"prices"`
	Trend      AttributeOffsets `json:"trend"`
	Variance   AttributeOffsets `json:"variance"`
}

func (t *TyreSupplier) RecordID() string {
	return t.Name
}

func (t *TyreSupplier) RecordTitle() string {
	if t.Name == "" {
		return "Unnamed"
	}

	return t.Name
}

func (t *TyreSupplier) setRecordName(name string) {
	t.Name = name
}

type TyreSupplierSet map[string]*TyreSupplier

func (s TyreSupplierSet) Names() []string {
	names := make([]string, 0, len(s))

	for name := range s {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

type tyreSupplierSetWrapper struct {
	Suppliers TyreSupplierSet `json:"suppliers"`
}

func NewTyreSupplierKind(store Store) RecordKind {
	return &setRecordKind{
		name:      "tyre-suppliers",
		title:     "Tyre Suppliers",
		baseName:  "New Supplier",
		deletable: true,
		load: func() (map[string]keyedRecord, error) {
			suppliers, err := store.LoadTyreSuppliers()

			if err != nil {
				return nil, err
			}

			records := make(map[string]keyedRecord, len(suppliers))

			for name, supplier := range suppliers {
				records[name] = supplier
			}

			return records, nil
		},
		save: func(records map[string]keyedRecord) error {
			suppliers := make(TyreSupplierSet, len(records))

			for name, record := range records {
				suppliers[name] = record.(*TyreSupplier)
			}

			return store.SaveTyreSuppliers(suppliers)
		},
		defaultRecord: func() keyedRecord {
			return &TyreSupplier{}
		},
	}
}
