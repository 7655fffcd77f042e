package editor

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi"
	"github.com/sirupsen/logrus"
)

// RecordsHandler serves the list and form pages for every record kind.
type RecordsHandler struct {
	*BaseHandler

	registry *RecordRegistry
}

func NewRecordsHandler(baseHandler *BaseHandler, registry *RecordRegistry) *RecordsHandler {
	return &RecordsHandler{
		BaseHandler: baseHandler,
		registry:    registry,
	}
}

func (rh *RecordsHandler) kindFromRequest(w http.ResponseWriter, r *http.Request) RecordKind {
	kind, err := rh.registry.Get(chi.URLParam(r, "kind"))

	if err != nil {
		http.NotFound(w, r)

		return nil
	}

	return kind
}

type recordListTemplateVars struct {
	BaseTemplateVars

	Kind    RecordKind
	Kinds   []RecordKind
	Records []Record
	Query   string
}

func (rh *RecordsHandler) list(w http.ResponseWriter, r *http.Request) {
	kind := rh.kindFromRequest(w, r)

	if kind == nil {
		return
	}

	records, err := kind.List()

	if err != nil {
		logrus.WithError(err).Errorf("couldn't list %s", kind.Name())
		AddErrorFlash(w, r, fmt.Sprintf("Couldn't load %s", kind.Title()))
	}

	query := r.URL.Query().Get("q")

	if query != "" {
		var filtered []Record

		for _, record := range records {
			if strings.Contains(strings.ToLower(record.RecordTitle()), strings.ToLower(query)) {
				filtered = append(filtered, record)
			}
		}

		records = filtered
	}

	rh.viewRenderer.MustLoadTemplate(w, r, "records/list.html", &recordListTemplateVars{
		Kind:    kind,
		Kinds:   rh.registry.Kinds(),
		Records: records,
		Query:   query,
	})
}

func (rh *RecordsHandler) create(w http.ResponseWriter, r *http.Request) {
	kind := rh.kindFromRequest(w, r)

	if kind == nil {
		return
	}

	record, err := kind.Create()

	if err != nil {
		logrus.WithError(err).Errorf("couldn't create %s record", kind.Name())
		AddErrorFlash(w, r, fmt.Sprintf("Couldn't create a new %s entry", kind.Title()))
		http.Redirect(w, r, "/records/"+kind.Name(), http.StatusFound)

		return
	}

	AddFlash(w, r, fmt.Sprintf("%s added", record.RecordTitle()))
	http.Redirect(w, r, fmt.Sprintf("/records/%s/edit/%s", kind.Name(), record.RecordID()), http.StatusFound)
}

type recordEditTemplateVars struct {
	BaseTemplateVars

	Kind   RecordKind
	Record Record
	Form   *Form
}

func (rh *RecordsHandler) edit(w http.ResponseWriter, r *http.Request) {
	kind := rh.kindFromRequest(w, r)

	if kind == nil {
		return
	}

	recordID := chi.URLParam(r, "recordID")

	record, err := kind.Find(recordID)

	if err == ErrRecordNotFound {
		http.NotFound(w, r)

		return
	} else if err != nil {
		logrus.WithError(err).Errorf("couldn't load %s record %s", kind.Name(), recordID)
		AddErrorFlash(w, r, fmt.Sprintf("Couldn't load %s", kind.Title()))
		http.Redirect(w, r, "/records/"+kind.Name(), http.StatusFound)

		return
	}

	opts, err := kind.FormOptions()

	if err != nil {
		logrus.WithError(err).Errorf("couldn't load form options for %s", kind.Name())
	}

	form := NewForm(record, opts)

	if r.Method == http.MethodPost {
		if err := rh.save(w, r, kind, record, recordID, form); err == nil {
			http.Redirect(w, r, fmt.Sprintf("/records/%s/edit/%s", kind.Name(), record.RecordID()), http.StatusFound)

			return
		}
	}

	rh.viewRenderer.MustLoadTemplate(w, r, "records/edit.html", &recordEditTemplateVars{
		Kind:   kind,
		Record: record,
		Form:   form,
	})
}

// save submits the form onto the record and persists the whole collection.
// A ValidationError rejects the save and is surfaced as an error flash, so
// nothing is written for a bad field.
func (rh *RecordsHandler) save(w http.ResponseWriter, r *http.Request, kind RecordKind, record Record, originalID string, form *Form) error {
	err := form.Submit(r)

	if err == nil {
		err = kind.Save(record, originalID)
	}

	if err != nil {
		if validationErr, ok := err.(*ValidationError); ok {
			AddErrorFlash(w, r, validationErr.Error())
		} else {
			logrus.WithError(err).Errorf("couldn't save %s record %s", kind.Name(), originalID)
			AddErrorFlash(w, r, fmt.Sprintf("Couldn't save %s, try again", kind.Title()))
		}

		return err
	}

	AddFlash(w, r, fmt.Sprintf("%s saved", record.RecordTitle()))

	return nil
}

type recordDeleteTemplateVars struct {
	BaseTemplateVars

	Kind   RecordKind
	Record Record
}

func (rh *RecordsHandler) delete(w http.ResponseWriter, r *http.Request) {
	kind := rh.kindFromRequest(w, r)

	if kind == nil {
		return
	}

	if !kind.Deletable() {
		http.NotFound(w, r)

		return
	}

	recordID := chi.URLParam(r, "recordID")

	record, err := kind.Find(recordID)

	if err == ErrRecordNotFound {
		http.NotFound(w, r)

		return
	} else if err != nil {
		logrus.WithError(err).Errorf("couldn't load %s record %s", kind.Name(), recordID)
		AddErrorFlash(w, r, fmt.Sprintf("Couldn't load %s", kind.Title()))
		http.Redirect(w, r, "/records/"+kind.Name(), http.StatusFound)

		return
	}

	if r.Method == http.MethodPost {
		err := kind.Delete(recordID)

		if err != nil {
			logrus.WithError(err).Errorf("couldn't delete %s record %s", kind.Name(), recordID)
			AddErrorFlash(w, r, fmt.Sprintf("Couldn't delete %s", record.RecordTitle()))
		} else {
			AddFlash(w, r, fmt.Sprintf("%s deleted", record.RecordTitle()))
		}

		http.Redirect(w, r, "/records/"+kind.Name(), http.StatusFound)

		return
	}

	rh.viewRenderer.MustLoadTemplate(w, r, "records/delete.html", &recordDeleteTemplateVars{
		Kind:   kind,
		Record: record,
	})
}
