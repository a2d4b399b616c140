// Package report renders the console view of a vacancy listing.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/honeycarbs/hh-analyst/pkg/hh"
)

// NotSpecified marks a missing salary or snippet field
const NotSpecified = "not specified"

// SampleSize is how many vacancies the summary prints
const SampleSize = 3

// Printer writes listing reports to an output stream
type Printer struct {
	w io.Writer
}

// NewPrinter creates a Printer; a nil writer discards output
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = io.Discard
	}
	return &Printer{w: w}
}

// Requesting announces the outbound search
func (p *Printer) Requesting(criteria hh.Criteria) {
	fmt.Fprintf(p.w, "Requesting vacancies for '%s' with experience '%s'...\n", criteria.Text, criteria.Experience)
}

// Failure prints the request failure diagnostic
func (p *Printer) Failure(err error) {
	fmt.Fprintf(p.w, "API request failed: %v\n", err)
}

// Saved reports where the snapshot went
func (p *Printer) Saved(path string) {
	fmt.Fprintf(p.w, "Full response saved to file: %s\n", path)
}

// Listing prints the status block followed by up to SampleSize vacancies
func (p *Printer) Listing(listing *hh.ListingResponse) {
	if listing == nil {
		return
	}

	fmt.Fprintf(p.w, "\n=== Status ===\n")
	fmt.Fprintf(p.w, "Found vacancies: %d\n", listing.Found)
	fmt.Fprintf(p.w, "Pages: %d\n", listing.Pages)
	fmt.Fprintf(p.w, "Current page: %d\n", listing.Page+1)

	fmt.Fprintf(p.w, "\n=== Sample vacancies (first %d) ===\n", SampleSize)
	for i, v := range Sample(listing.Items) {
		fmt.Fprintf(p.w, "%d. %s\n", i+1, v.Name)
		fmt.Fprintf(p.w, "   Salary: %s\n", SalaryDisplay(v))
		fmt.Fprintf(p.w, "   Employer: %s\n", v.Employer.Name)
		fmt.Fprintf(p.w, "   URL: %s\n", v.AlternateURL)
		fmt.Fprintf(p.w, "   Requirements: %s\n", SnippetText(v.Snippet.Requirement))
		fmt.Fprintf(p.w, "   Responsibilities: %s\n", SnippetText(v.Snippet.Responsibility))
	}
}

// Sample returns at most SampleSize leading items
func Sample(items []hh.Vacancy) []hh.Vacancy {
	if len(items) > SampleSize {
		return items[:SampleSize]
	}
	return items
}

// SalaryDisplay formats "{from} - {to} {currency}  {mode}/{frequency}".
// Missing or zero bounds render as "?". A missing salary_range part
// renders as NotSpecified rather than failing.
func SalaryDisplay(v hh.Vacancy) string {
	if v.Salary == nil {
		return NotSpecified
	}

	mode, frequency := NotSpecified, NotSpecified
	if v.SalaryRange != nil {
		if v.SalaryRange.Mode != nil {
			mode = v.SalaryRange.Mode.Name
		}
		if v.SalaryRange.Frequency != nil {
			frequency = v.SalaryRange.Frequency.Name
		}
	}

	return fmt.Sprintf("%s - %s %s  %s/%s",
		bound(v.Salary.From), bound(v.Salary.To), v.Salary.Currency, mode, frequency)
}

func bound(v *float64) string {
	if v == nil || *v == 0 {
		return "?"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// SnippetText strips hh.ru highlight markup and entities from a snippet
func SnippetText(s *string) string {
	if s == nil {
		return NotSpecified
	}
	if !strings.ContainsAny(*s, "<&") {
		return *s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(*s))
	if err != nil {
		return *s
	}
	return strings.TrimSpace(doc.Text())
}
