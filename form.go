package editor

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/camelcase"
	"github.com/sirupsen/logrus"
)

const (
	formTypeTagName = "input"
	formOptsTagName = "formopts"
	formHelpTagName = "help"
)

// NewForm builds a form over a pointer to a record struct. dropdownOpts maps
// a field's formopts tag to the options shown for it.
func NewForm(i interface{}, dropdownOpts map[string][]string) *Form {
	return &Form{
		data:            i,
		dropdownOptions: dropdownOpts,
	}
}

type Form struct {
	// the data on which the form is based
	data interface{}

	dropdownOptions map[string][]string
}

// Submit reads the request's form values back onto the form's data. Any
// value that cannot be parsed into its field aborts the submit with a
// ValidationError naming the field.
func (f Form) Submit(r *http.Request) error {
	if reflect.ValueOf(f.data).Kind() != reflect.Ptr {
		panic("form data must be a pointer to a type")
	}

	if err := r.ParseForm(); err != nil {
		return err
	}

	val := reflect.ValueOf(f.data).Elem()

	// checkboxes and multi-selects are simply absent from the request when
	// cleared, so reset them before assignment.
	clearAbsentFields(val)

	for name, vals := range r.Form {
		err := f.assignFieldValues(val, name, vals)

		if err != nil {
			return err
		}
	}

	return nil
}

func clearAbsentFields(val reflect.Value) {
	for i := 0; i < val.NumField(); i++ {
		field := val.Field(i)

		if !field.CanSet() {
			continue
		}

		switch field.Kind() {
		case reflect.Struct:
			clearAbsentFields(field)
		case reflect.Ptr:
			if !field.IsNil() && field.Elem().Kind() == reflect.Struct {
				clearAbsentFields(field.Elem())
			}
		case reflect.Bool:
			field.SetBool(false)
		case reflect.Slice:
			if field.Type().Elem().Kind() == reflect.String {
				field.Set(reflect.MakeSlice(field.Type(), 0, 0))
			}
		}
	}
}

func (f Form) assignFieldValues(val reflect.Value, name string, vals []string) error {
	parts := strings.Split(name, ".")
	field := val.FieldByName(parts[0])

	if !field.IsValid() || !field.CanSet() {
		return nil
	}

	if field.Kind() == reflect.Ptr {
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}

		field = field.Elem()
	}

	switch field.Kind() {
	case reflect.Struct:
		if len(parts) > 1 {
			err := f.assignFieldValues(field, strings.Join(parts[1:], "."), vals)

			if err != nil {
				return err
			}
		}
	case reflect.String:
		field.SetString(vals[0])
	case reflect.Slice:
		if field.Type().Elem().Kind() != reflect.String {
			return &ValidationError{Field: name, Message: "unsupported field type"}
		}

		field.Set(reflect.ValueOf(vals))
	case reflect.Int:
		if vals[0] == "on" {
			field.SetInt(1)

			break
		}

		n, err := strconv.Atoi(strings.TrimSpace(vals[0]))

		if err != nil {
			return &ValidationError{Field: name, Message: fmt.Sprintf("%q is not a whole number", vals[0])}
		}

		field.SetInt(int64(n))
	case reflect.Float64:
		n, err := strconv.ParseFloat(strings.TrimSpace(vals[0]), 64)

		if err != nil {
			return &ValidationError{Field: name, Message: fmt.Sprintf("%q is not a number", vals[0])}
		}

		field.SetFloat(n)
	case reflect.Bool:
		field.SetBool(vals[0] == "on" || vals[0] == "1" || vals[0] == "true")
	default:
		return &ValidationError{Field: name, Message: "unsupported field type"}
	}

	return nil
}

func (f Form) Fields() []FormElement {
	if reflect.ValueOf(f.data).Kind() != reflect.Ptr {
		panic("form data must be a pointer to a type")
	}

	val := reflect.ValueOf(f.data)
	t := reflect.TypeOf(f.data)

	return f.buildOpts(val.Elem(), t.Elem(), "", 0)
}

type FormElement interface {
	HTML() template.HTML
}

func (f Form) buildName(name string) string {
	return strings.Join(camelcase.Split(name), " ")
}

func (f Form) buildOpts(val reflect.Value, t reflect.Type, parentName string, recursionLevel int) []FormElement {
	var opts []FormElement

	for i := 0; i < t.NumField(); i++ {
		typeField := t.Field(i)
		valField := val.Field(i)

		if typeField.PkgPath != "" || typeField.Tag.Get("json") == "-" && typeField.Tag.Get(formTypeTagName) == "" {
			continue
		}

		formType := typeField.Tag.Get(formTypeTagName)

		if valField.Kind() == reflect.Ptr {
			if valField.IsNil() {
				valField = reflect.New(typeField.Type.Elem()).Elem()
			} else {
				valField = valField.Elem()
			}
		}

		switch {
		case valField.Kind() == reflect.Struct && formType == "":
			if recursionLevel == 0 {
				opts = append(opts, formCardOpen{name: f.buildName(typeField.Name)})
			} else {
				opts = append(opts, FormOption{Name: f.buildName(typeField.Name), Type: "heading", RecursionLevel: recursionLevel})
			}

			opts = append(opts, f.buildOpts(valField, valField.Type(), fmt.Sprintf("%s%s.", parentName, typeField.Name), recursionLevel+1)...)

			if recursionLevel == 0 {
				opts = append(opts, formCardClose{})
			}
		default:
			if formType == "" {
				formType = typeField.Type.String()
			}

			formOpt := FormOption{
				Name:           f.buildName(typeField.Name),
				Key:            parentName + typeField.Name,
				Value:          valField.Interface(),
				HelpText:       template.HTML(typeField.Tag.Get(formHelpTagName)),
				Type:           formType,
				Opts:           make(map[string]bool),
				RecursionLevel: recursionLevel,
			}

			if formType == "dropdown" || formType == "multiSelect" {
				optsKey := typeField.Tag.Get(formOptsTagName)

				if options, ok := f.dropdownOptions[optsKey]; ok {
					for _, o := range options {
						formOpt.Opts[o] = formOpt.selected(o)
					}
				} else {
					logrus.Warnf("dropdown opts for field: %s specified, but none found", typeField.Name)
				}
			} else if formType == "int" || formType == "float64" {
				formOpt.Min, formOpt.Max = typeField.Tag.Get("min"), typeField.Tag.Get("max")
			}

			opts = append(opts, formOpt)
		}
	}

	return opts
}

type FormOption struct {
	Name           string
	Key            string
	Type           string
	HelpText       template.HTML
	Value          interface{}
	Min, Max       string
	RecursionLevel int

	Opts map[string]bool
}

func (f FormOption) selected(opt string) bool {
	switch v := f.Value.(type) {
	case string:
		return v == opt
	case []string:
		for _, s := range v {
			if s == opt {
				return true
			}
		}
	}

	return false
}

func (f FormOption) render(templ string) (template.HTML, error) {
	t, err := template.New(f.Name).Parse(templ)

	if err != nil {
		return "", err
	}

	out := new(bytes.Buffer)

	err = t.Execute(out, f)

	if err != nil {
		return "", err
	}

	return template.HTML(out.String()), nil
}

func (f FormOption) renderDropdown() template.HTML {
	const dropdownTemplate = `
		<div class="form-group row">
			<label for="{{ .Key }}" class="col-sm-3 col-form-label">
				{{ .Name }}
			</label>

			<div class="col-sm-9">
				<select {{ if eq .Type "multiSelect" }} multiple {{ end }} class="form-control" name="{{ .Key }}" id="{{ .Key }}">
					{{ range $opt, $selected := .Opts }}
						<option {{ if $selected }} selected {{ end }} value="{{ $opt }}">{{ $opt }}</option>
					{{ end }}
				</select>

				<small>{{ .HelpText }}</small>
			</div>
		</div>
	`

	tmpl, err := f.render(dropdownTemplate)

	if err != nil {
		return template.HTML(fmt.Sprintf("err: %s", err))
	}

	return tmpl
}

func (f FormOption) renderCheckbox() template.HTML {
	if b, ok := f.Value.(bool); ok {
		if b {
			f.Value = 1
		} else {
			f.Value = 0
		}
	}

	const checkboxTemplate = `
		<div class="form-group row">
			<label for="{{ .Key }}" class="col-sm-3 col-form-label">{{ .Name }}</label>

			<div class="col-sm-9">
				<input type="checkbox" id="{{ .Key }}" name="{{ .Key }}" {{ if eq .Value 1 }}checked="checked"{{ end }}><br>

				<small>{{ .HelpText }}</small>
			</div>
		</div>
	`

	tmpl, err := f.render(checkboxTemplate)

	if err != nil {
		return template.HTML(fmt.Sprintf("err: %s", err))
	}

	return tmpl
}

func (f FormOption) renderTextInput() template.HTML {
	const inputTextTemplate = `
		<div class="form-group row">
			<label for="{{ .Key }}" class="col-sm-3 col-form-label">{{ .Name }}</label>

			<div class="col-sm-9">
				<input type="text" id="{{ .Key }}" name="{{ .Key }}" class="form-control" value="{{ .Value }}">

				<small>{{ .HelpText }}</small>
			</div>
		</div>
	`

	tmpl, err := f.render(inputTextTemplate)

	if err != nil {
		return template.HTML(fmt.Sprintf("err: %s", err))
	}

	return tmpl
}

func (f FormOption) renderNumberInput() template.HTML {
	const numberInputTemplate = `
		<div class="form-group row">
			<label for="{{ .Key }}" class="col-sm-3 col-form-label">{{ .Name }}</label>

			<div class="col-sm-9">
				<input
					type="number"
					id="{{ .Key }}"
					name="{{ .Key }}"
					class="form-control"
					value="{{ .Value }}"
					{{ with .Min }}min="{{ . }}"{{ end }}
					{{ with .Max }}max="{{ . }}"{{ end }}
					step="any"
				>

				<small>{{ .HelpText }}</small>
			</div>
		</div>
	`

	tmpl, err := f.render(numberInputTemplate)

	if err != nil {
		return template.HTML(fmt.Sprintf("err: %s", err))
	}

	return tmpl
}

func (f FormOption) renderHeading() template.HTML {
	headerType := "h2"
	headingTemplate := ""

	switch f.RecursionLevel {
	case 0:
		headingTemplate = `<hr class="mt-5">`
	case 1:
		headerType = "h3"
	case 2:
		headerType = "h4"
	default:
		headerType = "h5"
	}

	headingTemplate += fmt.Sprintf(`<%s class="mt-4 mb-4">{{ .Name }}</%s>`, headerType, headerType)

	tmpl, err := f.render(headingTemplate)

	if err != nil {
		return template.HTML(fmt.Sprintf("err: %s", err))
	}

	return tmpl
}

func (f FormOption) HTML() template.HTML {
	switch f.Type {
	case "dropdown", "multiSelect":
		return f.renderDropdown()
	case "checkbox", "bool":
		return f.renderCheckbox()
	case "int", "float64":
		if f.Value == nil {
			f.Value = 0
		}

		return f.renderNumberInput()
	case "string":
		return f.renderTextInput()
	case "heading":
		return f.renderHeading()
	default:
		logrus.Errorf("Unknown form type: %s", f.Type)
		return ""
	}
}

type formCardOpen struct {
	name string
}

func (f formCardOpen) HTML() template.HTML {
	return template.HTML(`
		<div class="card mt-3 mb-3">
			<div class="card-header">
				<strong>` + f.name + `</strong>
			</div>

			<div class="card-body">
`)
}

type formCardClose struct{}

func (f formCardClose) HTML() template.HTML {
	return `</div></div>`
}
