package editor

import (
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func TestFormSubmitAssignsValues(t *testing.T) {
	driver := DefaultDriver()
	driver.Contract = nil

	form := NewForm(driver, nil)

	values := url.Values{
		"Name":             {"Test Driver"},
		"Age":              {"27"},
		"PayDriverAmountM": {"2.5"},
		"Traits":           {"hotlapper", "pay_driver"},
		"Contract.Team":    {"Arrow Racing"},
		"Contract.SalaryM": {"4.5"},
	}

	r := httptest.NewRequest("POST", "/records/drivers/edit/New%20Driver", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := form.Submit(r); err != nil {
		t.Fatal(err)
	}

	if driver.Name != "Test Driver" {
		t.Errorf("expected name Test Driver, got %q", driver.Name)
	}

	if driver.Age != 27 {
		t.Errorf("expected age 27, got %d", driver.Age)
	}

	if driver.PayDriverAmountM != 2.5 {
		t.Errorf("expected pay driver amount 2.5, got %f", driver.PayDriverAmountM)
	}

	if len(driver.Traits) != 2 || driver.Traits[0] != "hotlapper" {
		t.Errorf("expected both traits, got %v", driver.Traits)
	}

	if driver.Contract == nil {
		t.Fatal("a nested value should allocate the nil contract")
	}

	if driver.Contract.Team != "Arrow Racing" || driver.Contract.SalaryM != 4.5 {
		t.Errorf("contract did not assign: %+v", driver.Contract)
	}
}

func TestFormSubmitClearsAbsentFields(t *testing.T) {
	team := DefaultTeam()
	team.Active = true

	driver := DefaultDriver()
	driver.Traits = []string{"hotlapper"}

	values := url.Values{
		"Name": {"New Team"},
	}

	r := httptest.NewRequest("POST", "/records/teams/edit/New%20Team", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := NewForm(team, nil).Submit(r); err != nil {
		t.Fatal(err)
	}

	if team.Active {
		t.Error("an unchecked checkbox is absent from the request and must clear the field")
	}

	r = httptest.NewRequest("POST", "/records/drivers/edit/New%20Driver", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := NewForm(driver, nil).Submit(r); err != nil {
		t.Fatal(err)
	}

	if len(driver.Traits) != 0 {
		t.Errorf("an empty multi-select must clear the slice, got %v", driver.Traits)
	}
}

func TestFormSubmitCheckboxOn(t *testing.T) {
	team := DefaultTeam()
	team.Active = false

	values := url.Values{
		"Active": {"on"},
	}

	r := httptest.NewRequest("POST", "/records/teams/edit/New%20Team", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := NewForm(team, nil).Submit(r); err != nil {
		t.Fatal(err)
	}

	if !team.Active {
		t.Error("expected the checkbox value to assign true")
	}
}

func TestFormSubmitBadNumberIsValidationError(t *testing.T) {
	driver := DefaultDriver()

	values := url.Values{
		"Age": {"twenty"},
	}

	r := httptest.NewRequest("POST", "/records/drivers/edit/New%20Driver", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	err := NewForm(driver, nil).Submit(r)

	validationErr, ok := err.(*ValidationError)

	if !ok {
		t.Fatalf("expected a ValidationError, got %v", err)
	}

	if validationErr.Field != "Age" {
		t.Errorf("expected the error to name Age, got %q", validationErr.Field)
	}
}

func TestFormSubmitIgnoresUnknownFields(t *testing.T) {
	driver := DefaultDriver()

	values := url.Values{
		"NoSuchField": {"value"},
	}

	r := httptest.NewRequest("POST", "/records/drivers/edit/New%20Driver", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := NewForm(driver, nil).Submit(r); err != nil {
		t.Errorf("an unknown form field should be ignored, got %v", err)
	}
}

func TestFormFields(t *testing.T) {
	driver := DefaultDriver()
	driver.Contract = &DriverContract{Team: "Arrow Racing"}

	form := NewForm(driver, map[string][]string{
		"Teams":        {"", "Arrow Racing"},
		"DriverRoles":  {"", DriverRoleMain, DriverRoleReserve},
		"DriverTraits": TraitsList,
	})

	fields := form.Fields()

	if len(fields) == 0 {
		t.Fatal("expected fields for the driver form")
	}

	var html strings.Builder

	for _, field := range fields {
		html.WriteString(string(field.HTML()))
	}

	rendered := html.String()

	if !strings.Contains(rendered, `name="Name"`) {
		t.Error("expected a Name input")
	}

	if !strings.Contains(rendered, `name="Contract.Team"`) {
		t.Error("expected the nested contract team input")
	}

	if !strings.Contains(rendered, "selected") {
		t.Error("expected the contract team option to be selected")
	}

	if !strings.Contains(rendered, `max="100"`) {
		t.Error("expected the talent input to carry its max attribute")
	}

	if !strings.Contains(rendered, "multiple") {
		t.Error("expected the traits field to render as a multi-select")
	}
}

func TestFormFieldsIncludeKeyedRecordName(t *testing.T) {
	for _, record := range []Record{DefaultEngine(), &TyreSupplier{}} {
		var html strings.Builder

		for _, field := range NewForm(record, nil).Fields() {
			html.WriteString(string(field.HTML()))
		}

		if !strings.Contains(html.String(), `name="Name"`) {
			t.Errorf("%T: the edit form should include a Name input", record)
		}
	}
}

func TestFormSubmitRenamesEngine(t *testing.T) {
	engine := DefaultEngine()
	engine.Name = "Old Name"

	values := url.Values{
		"Name": {"New Name"},
	}

	r := httptest.NewRequest("POST", "/records/engines/edit/Old%20Name", strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	if err := NewForm(engine, nil).Submit(r); err != nil {
		t.Fatal(err)
	}

	if engine.Name != "New Name" {
		t.Errorf("expected the submitted name to assign, got %q", engine.Name)
	}
}

func TestFormBuildName(t *testing.T) {
	form := Form{}

	cases := map[string]string{
		"PayDriverAmountM": "Pay Driver Amount M",
		"Name":             "Name",
		"ShortName":        "Short Name",
	}

	for in, expected := range cases {
		if got := form.buildName(in); got != expected {
			t.Errorf("buildName(%q): expected %q, got %q", in, expected, got)
		}
	}
}
