package editor

type Sponsor struct {
	Name    string  `json:"name"`
	Rating  int     `json:"rating" min:"1" max:"10" help:"1 is a local backer, 10 is a title sponsor."`
	AmountM float64 `json:"amount_m"`
}

func (s *Sponsor) RecordID() string {
	return s.Name
}

func (s *Sponsor) RecordTitle() string {
	if s.Name == "" {
		return "Unnamed"
	}

	return s.Name
}

func (s *Sponsor) setRecordName(name string) {
	s.Name = name
}

func (s *Sponsor) Validate() error {
	if s.Rating < 1 || s.Rating > 10 {
		return &ValidationError{Field: "Rating", Message: "rating must be between 1 and 10"}
	}

	return nil
}

func DefaultSponsor() *Sponsor {
	return &Sponsor{
		Name:    "New Sponsor",
		Rating:  1,
		AmountM: 10,
	}
}

func NewSponsorKind(store Store) RecordKind {
	return &listRecordKind{
		name:      "sponsors",
		title:     "Sponsors",
		deletable: true,
		load: func() ([]Record, error) {
			sponsors, err := store.ListSponsors()

			if err != nil {
				return nil, err
			}

			records := make([]Record, len(sponsors))

			for i, sponsor := range sponsors {
				records[i] = sponsor
			}

			return records, nil
		},
		save: func(records []Record) error {
			sponsors := make([]*Sponsor, len(records))

			for i, record := range records {
				sponsors[i] = record.(*Sponsor)
			}

			return store.SaveSponsors(sponsors)
		},
		defaultRecord: func() Record {
			return DefaultSponsor()
		},
	}
}
