// Package extract turns model completions into person records.
//
// It holds the prompt builder, the tolerant CSV response parser, and the
// run-scoped deduplicator. The model itself lives behind llm.Provider.
package extract

// Columns is the canonical output schema, in order. The prompt instructs
// the model to reply with exactly these columns and the parser accepts
// only rows that match the count.
var Columns = []string{
	"website", "full_name", "full_bio", "age",
	"hometown", "education", "experience", "photo_url",
}

// Person is one extracted person record. Fields are carried as strings
// and trusted as-is; age in particular is never validated or coerced.
type Person struct {
	Website    string `csv:"website" json:"website"`
	FullName   string `csv:"full_name" json:"full_name"`
	FullBio    string `csv:"full_bio" json:"full_bio"`
	Age        string `csv:"age" json:"age"`
	Hometown   string `csv:"hometown" json:"hometown"`
	Education  string `csv:"education" json:"education"`
	Experience string `csv:"experience" json:"experience"`
	PhotoURL   string `csv:"photo_url" json:"photo_url"`
}

// Placeholder returns the record written for a URL that failed or yielded
// no people: website set, everything else blank. This keeps the output at
// one row minimum per input URL.
func Placeholder(url string) Person {
	return Person{Website: url}
}

// IsPlaceholder reports whether the record carries no extracted data.
func (p Person) IsPlaceholder() bool {
	return p.FullName == "" && p.FullBio == "" && p.Age == "" &&
		p.Hometown == "" && p.Education == "" && p.Experience == "" &&
		p.PhotoURL == ""
}
