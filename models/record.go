package models

// RawRow is one result-listing row as it came off the page, before any
// field interpretation. Transient: consumed immediately by record building.
type RawRow struct {
	// Index is the ordinal position of the row on its page.
	Index int

	// Name is the text of the first element matching the name-link selector.
	Name string

	// DetailHref is the absolute URL of the contact's detail page.
	// Empty when the row carries no link.
	DetailHref string

	// RowText is the full visible text of the row, used as a fallback
	// signal when column alignment is ambiguous.
	RowText string

	// CellTexts is the ordered visible text of every column cell.
	CellTexts []string
}

// ContactRecord is one fully parsed directory contact. Fields are empty
// strings when unknown. Email is filled in by the detail visit after the
// record is built from its row; the record is immutable afterward.
type ContactRecord struct {
	FirstName     string
	MiddleInitial string
	LastName      string
	Address1      string
	Address2      string
	City          string
	State         string
	Zip           string
	Phone         string
	Email         string
}

// CSVHeader is the column order of the output table. writer.Writer emits
// it as the header row; ContactRecord.Fields must match it positionally.
var CSVHeader = []string{
	"First Name", "Middle Initial", "Last Name",
	"Address1", "Address2", "City", "State", "Zip",
	"Phone", "Email",
}

// Fields returns the record's values in CSVHeader order.
func (r ContactRecord) Fields() []string {
	return []string{
		r.FirstName, r.MiddleInitial, r.LastName,
		r.Address1, r.Address2, r.City, r.State, r.Zip,
		r.Phone, r.Email,
	}
}
