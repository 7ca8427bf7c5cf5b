package extract

import (
	"testing"

	"github.com/harvestly/dircomb/models"
)

func TestBuildRecord_RowTextFallback(t *testing.T) {
	// A row with no usable columns: everything comes from the row-wide
	// regex pass.
	row := models.RawRow{
		Name:    "Jane Q. Doe",
		RowText: "Jane Q. Doe 123 Main St Springfield, IL 62704 (555) 123-4567",
	}

	rec := BuildRecord(row)

	if rec.FirstName != "Jane" || rec.MiddleInitial != "Q" || rec.LastName != "Doe" {
		t.Errorf("name = %q %q %q", rec.FirstName, rec.MiddleInitial, rec.LastName)
	}
	if rec.Phone != "(555) 123-4567" {
		t.Errorf("Phone = %q", rec.Phone)
	}
	if rec.Address1 != "123 Main St" {
		t.Errorf("Address1 = %q", rec.Address1)
	}
	if rec.City != "Springfield" || rec.State != "IL" || rec.Zip != "62704" {
		t.Errorf("city/state/zip = %q %q %q", rec.City, rec.State, rec.Zip)
	}
}

func TestBuildRecord_ColumnOverridesRowText(t *testing.T) {
	// The row text carries a misleading phone-shaped string; the phone
	// column is the higher-confidence source and must win.
	row := models.RawRow{
		Name:    "Bob Smith",
		RowText: "Bob Smith fax (555) 999-0000 (555) 123-4567",
		CellTexts: []string{
			"Bob Smith",
			"(555) 123-4567",
		},
	}

	rec := BuildRecord(row)
	if rec.Phone != "(555) 123-4567" {
		t.Errorf("Phone = %q, want the column match", rec.Phone)
	}
}

func TestBuildRecord_MultilineAddressBlock(t *testing.T) {
	row := models.RawRow{
		Name:    "Ann Lee",
		RowText: "Ann Lee\n123 Main St\nSpringfield, IL 62704",
	}

	rec := BuildRecord(row)
	if rec.Address1 != "123 Main St" {
		t.Errorf("Address1 = %q", rec.Address1)
	}
	if rec.City != "Springfield" || rec.State != "IL" || rec.Zip != "62704" {
		t.Errorf("city/state/zip = %q %q %q", rec.City, rec.State, rec.Zip)
	}
}

func TestBuildRecord_NoSignalsLeavesFieldsEmpty(t *testing.T) {
	row := models.RawRow{Name: "Cher", RowText: "Cher"}

	rec := BuildRecord(row)
	if rec.FirstName != "Cher" || rec.LastName != "" {
		t.Errorf("name = %q %q", rec.FirstName, rec.LastName)
	}
	if rec.Phone != "" || rec.Address1 != "" || rec.City != "" {
		t.Errorf("expected empty contact fields, got %+v", rec)
	}
}

func TestBuildRecord_CityColumnSetsAllThree(t *testing.T) {
	row := models.RawRow{
		Name:      "Ann Lee",
		RowText:   "Ann Lee Portland, OR 97201",
		CellTexts: []string{"Ann Lee", "Portland, OR 97201"},
	}

	rec := BuildRecord(row)
	if rec.City != "Portland" || rec.State != "OR" || rec.Zip != "97201" {
		t.Errorf("city/state/zip = %q %q %q", rec.City, rec.State, rec.Zip)
	}
}
