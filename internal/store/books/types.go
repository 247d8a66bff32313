package books

// Book is one row of the books table, keyed by ISBN.
type Book struct {
	ISBN      string `json:"isbn"`
	AmazonURL string `json:"amazon_url"`
	Author    string `json:"author"`
	Language  string `json:"language"`
	Pages     int    `json:"pages"`
	Publisher string `json:"publisher"`
	Title     string `json:"title"`
	Year      int    `json:"year"`
}

// UpdateBookDTO carries the fields a PUT may change. Nil means "leave as is".
// ISBN is deliberately absent: the key is immutable.
type UpdateBookDTO struct {
	AmazonURL *string
	Author    *string
	Language  *string
	Pages     *int
	Publisher *string
	Title     *string
	Year      *int
}

// Filters narrows FindAll. Zero values / nil pointers impose no constraint;
// supplied filters combine with AND.
type Filters struct {
	SearchTerm string
	MinPages   *int
	MaxPages   *int
}
