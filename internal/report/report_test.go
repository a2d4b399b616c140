package report

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/honeycarbs/hh-analyst/pkg/hh"
)

func ptr[T any](v T) *T {
	return &v
}

func TestSalaryDisplay(t *testing.T) {
	tests := []struct {
		name    string
		vacancy hh.Vacancy
		want    string
	}{
		{
			name: "full range",
			vacancy: hh.Vacancy{
				Salary: &hh.Salary{From: ptr(100000.0), To: ptr(150000.0), Currency: "RUR"},
				SalaryRange: &hh.SalaryRange{
					Mode:      &hh.NamedRef{Name: "full"},
					Frequency: &hh.NamedRef{Name: "monthly"},
				},
			},
			want: "100000 - 150000 RUR  full/monthly",
		},
		{
			name:    "no salary",
			vacancy: hh.Vacancy{},
			want:    NotSpecified,
		},
		{
			name: "open upper bound",
			vacancy: hh.Vacancy{
				Salary: &hh.Salary{From: ptr(80000.0), Currency: "RUR"},
				SalaryRange: &hh.SalaryRange{
					Mode:      &hh.NamedRef{Name: "per month"},
					Frequency: &hh.NamedRef{Name: "twice a month"},
				},
			},
			want: "80000 - ? RUR  per month/twice a month",
		},
		{
			name: "zero lower bound",
			vacancy: hh.Vacancy{
				Salary: &hh.Salary{From: ptr(0.0), To: ptr(2500.5), Currency: "USD"},
				SalaryRange: &hh.SalaryRange{
					Mode:      &hh.NamedRef{Name: "hourly"},
					Frequency: &hh.NamedRef{Name: "weekly"},
				},
			},
			want: "? - 2500.5 USD  hourly/weekly",
		},
		{
			name: "missing salary range",
			vacancy: hh.Vacancy{
				Salary: &hh.Salary{From: ptr(1.0), To: ptr(2.0), Currency: "KZT"},
			},
			want: "1 - 2 KZT  not specified/not specified",
		},
		{
			name: "missing frequency",
			vacancy: hh.Vacancy{
				Salary:      &hh.Salary{From: ptr(50000.0), Currency: "RUR"},
				SalaryRange: &hh.SalaryRange{Mode: &hh.NamedRef{Name: "full"}},
			},
			want: "50000 - ? RUR  full/not specified",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SalaryDisplay(tt.vacancy))
		})
	}
}

func TestSnippetText(t *testing.T) {
	assert.Equal(t, NotSpecified, SnippetText(nil))
	assert.Equal(t, "plain text", SnippetText(ptr("plain text")))
	assert.Equal(t, "Знание Python и SQL.", SnippetText(ptr("Знание <highlighttext>Python</highlighttext> и SQL.")))
	assert.Equal(t, `Say "hi" & go`, SnippetText(ptr("Say &quot;hi&quot; &amp; go")))
}

func vacancies(n int) []hh.Vacancy {
	out := make([]hh.Vacancy, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, hh.Vacancy{
			Name:         fmt.Sprintf("Vacancy %d", i+1),
			Employer:     hh.Employer{Name: fmt.Sprintf("Employer %d", i+1)},
			AlternateURL: fmt.Sprintf("https://hh.ru/vacancy/%d", i+1),
		})
	}
	return out
}

func TestListing_PrintsAtMostThree(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 7} {
		t.Run(fmt.Sprintf("%d items", n), func(t *testing.T) {
			var buf bytes.Buffer
			NewPrinter(&buf).Listing(&hh.ListingResponse{Found: n, Pages: 1, Page: 0, Items: vacancies(n)})

			out := buf.String()
			want := min(n, SampleSize)
			assert.Equal(t, want, strings.Count(out, "   Salary: "))
			for i := 1; i <= want; i++ {
				assert.Contains(t, out, fmt.Sprintf("%d. Vacancy %d\n", i, i))
			}
			assert.NotContains(t, out, fmt.Sprintf("%d. Vacancy", want+1))
		})
	}
}

func TestListing_StatusBlock(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).Listing(&hh.ListingResponse{
		Found: 1234,
		Pages: 62,
		Page:  0,
		Items: []hh.Vacancy{{
			Name:         "Python Developer",
			Employer:     hh.Employer{Name: "Acme"},
			AlternateURL: "https://hh.ru/vacancy/1",
			Snippet:      hh.Snippet{Requirement: ptr("<highlighttext>Python</highlighttext> 3")},
		}},
	})

	out := buf.String()
	assert.Contains(t, out, "Found vacancies: 1234\n")
	assert.Contains(t, out, "Pages: 62\n")
	assert.Contains(t, out, "Current page: 1\n")
	assert.Contains(t, out, "   Salary: not specified\n")
	assert.Contains(t, out, "   Employer: Acme\n")
	assert.Contains(t, out, "   URL: https://hh.ru/vacancy/1\n")
	assert.Contains(t, out, "   Requirements: Python 3\n")
	assert.Contains(t, out, "   Responsibilities: not specified\n")
}

func TestPrinter_Messages(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Requesting(hh.DefaultCriteria())
	p.Failure(errors.New("hh: API error (503)"))
	p.Saved("out/hh_vacancies_Python_noExperience.json")
	p.Listing(nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Requesting vacancies for 'Python' with experience 'noExperience'...", lines[0])
	assert.Equal(t, "API request failed: hh: API error (503)", lines[1])
	assert.Equal(t, "Full response saved to file: out/hh_vacancies_Python_noExperience.json", lines[2])

	assert.NotPanics(t, func() { NewPrinter(nil).Failure(errors.New("x")) })
}
