package schema

// CoreBookTable represents the 'core.book' table
type CoreBookTable struct {
	Table         string
	ID            string
	GoogleID      string
	Title         string
	Authors       string
	PublishedDate string
	PageCount     string
	Description   string
	CoverURL      string
	ISBN10        string
	ISBN13        string
	CreatedAt     string
	UpdatedAt     string
}

// CoreBook is the schema definition for core.book
var CoreBook = CoreBookTable{
	Table:         "core.book",
	ID:            "id",
	GoogleID:      "googleid",
	Title:         "title",
	Authors:       "authors",
	PublishedDate: "publisheddate",
	PageCount:     "pagecount",
	Description:   "description",
	CoverURL:      "coverurl",
	ISBN10:        "isbn10",
	ISBN13:        "isbn13",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
}

func (t CoreBookTable) Columns() []string {
	return []string{
		t.ID, t.GoogleID, t.Title, t.Authors, t.PublishedDate, t.PageCount,
		t.Description, t.CoverURL, t.ISBN10, t.ISBN13, t.CreatedAt, t.UpdatedAt,
	}
}
