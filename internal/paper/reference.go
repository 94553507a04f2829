package paper

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Reference is a manuscript citation under verification. Raw always holds
// the original text; every other field is optional. A Reference is never
// mutated after parsing.
type Reference struct {
	Raw     string   `json:"raw,omitempty"`
	Label   string   `json:"label,omitempty"`
	Title   string   `json:"title,omitempty"`
	Authors []string `json:"authors,omitempty"`
	Year    int      `json:"year,omitempty"`
	Journal string   `json:"journal,omitempty"`
	DOI     string   `json:"doi,omitempty"`
	PMID    string   `json:"pmid,omitempty"`
	Volume  string   `json:"volume,omitempty"`
	Issue   string   `json:"issue,omitempty"`
	Pages   string   `json:"pages,omitempty"`
}

// FirstAuthor returns the first listed author, or "" if none.
func (r *Reference) FirstAuthor() string {
	if len(r.Authors) == 0 {
		return ""
	}
	return r.Authors[0]
}

// Display returns the most useful short description of the reference:
// the title if present, otherwise the raw text.
func (r *Reference) Display() string {
	if r.Title != "" {
		return r.Title
	}
	return r.Raw
}

// UnmarshalJSON accepts the loose structured-input shapes seen in reference
// files: authors may be a single string or an array, year may be a number or
// a numeric string, and pmid/volume/issue may arrive as bare numbers.
func (r *Reference) UnmarshalJSON(data []byte) error {
	var aux struct {
		Raw     string          `json:"raw"`
		Label   string          `json:"label"`
		Title   string          `json:"title"`
		Authors json.RawMessage `json:"authors"`
		Year    json.RawMessage `json:"year"`
		Journal string          `json:"journal"`
		DOI     string          `json:"doi"`
		PMID    json.RawMessage `json:"pmid"`
		Volume  json.RawMessage `json:"volume"`
		Issue   json.RawMessage `json:"issue"`
		Pages   string          `json:"pages"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	r.Raw = aux.Raw
	r.Label = aux.Label
	r.Title = aux.Title
	r.Pages = aux.Pages
	r.Journal = aux.Journal
	r.DOI = aux.DOI
	r.Authors = flexibleStringList(aux.Authors)
	r.Year = flexibleInt(aux.Year)
	r.PMID = flexibleString(aux.PMID)
	r.Volume = flexibleString(aux.Volume)
	r.Issue = flexibleString(aux.Issue)
	return nil
}

// flexibleStringList decodes a JSON string or array of strings.
func flexibleStringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		return list
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil && single != "" {
		return []string{single}
	}
	return nil
}

// flexibleInt decodes a JSON number or numeric string.
func flexibleInt(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n
		}
	}
	return 0
}

// flexibleString decodes a JSON string or number as a string.
func flexibleString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}
