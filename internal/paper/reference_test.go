package paper

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestReferenceUnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Reference
	}{
		{
			name:  "standard fields",
			input: `{"title":"A Study","authors":["Smith J","Doe A"],"year":2020,"journal":"N Engl J Med","doi":"10.1/x"}`,
			want:  Reference{Title: "A Study", Authors: []string{"Smith J", "Doe A"}, Year: 2020, Journal: "N Engl J Med", DOI: "10.1/x"},
		},
		{
			name:  "authors as single string",
			input: `{"title":"A Study","authors":"Smith J"}`,
			want:  Reference{Title: "A Study", Authors: []string{"Smith J"}},
		},
		{
			name:  "year as string",
			input: `{"title":"A Study","year":"2021"}`,
			want:  Reference{Title: "A Study", Year: 2021},
		},
		{
			name:  "pmid and volume as numbers",
			input: `{"pmid":12345,"volume":10,"issue":"4"}`,
			want:  Reference{PMID: "12345", Volume: "10", Issue: "4"},
		},
		{
			name:  "label and raw preserved",
			input: `{"raw":"1. Smith J. Title. 2020.","label":"ref1"}`,
			want:  Reference{Raw: "1. Smith J. Title. 2020.", Label: "ref1"},
		},
		{
			name:  "garbage year ignored",
			input: `{"year":"in press"}`,
			want:  Reference{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Reference
			if err := json.Unmarshal([]byte(tt.input), &got); err != nil {
				t.Fatalf("Unmarshal(%q) error: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Unmarshal(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestReferenceDisplay(t *testing.T) {
	ref := Reference{Raw: "1. Smith J. Some Title. 2020."}
	if got := ref.Display(); got != ref.Raw {
		t.Errorf("Display() = %q, want raw text", got)
	}
	ref.Title = "Some Title"
	if got := ref.Display(); got != "Some Title" {
		t.Errorf("Display() = %q, want title", got)
	}
}
