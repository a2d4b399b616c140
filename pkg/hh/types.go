package hh

import (
	"encoding/json"
	"net/http"
)

// Experience is the hh.ru experience filter bucket
type Experience string

const (
	NoExperience Experience = "noExperience"
	Between1And3 Experience = "between1And3"
	Between3And6 Experience = "between3And6"
	MoreThan6    Experience = "moreThan6"
)

// AreaRussia is the area code covering the whole country
const AreaRussia = 113

// Config defines hh.ru API client settings
type Config struct {
	BaseURL    string
	UserAgent  string
	HTTPClient *http.Client
}

// Client queries the hh.ru vacancies endpoint
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
}

// Criteria describe a single vacancy search request
type Criteria struct {
	Text           string     `yaml:"text" json:"text" validate:"required"`
	Experience     Experience `yaml:"experience" json:"experience" validate:"omitempty,oneof=noExperience between1And3 between3And6 moreThan6"`
	WorkFormat     string     `yaml:"work_format" json:"work_format"`
	Area           int        `yaml:"area" json:"area" validate:"gt=0"`
	PerPage        int        `yaml:"per_page" json:"per_page"`
	OnlyWithSalary bool       `yaml:"only_with_salary" json:"only_with_salary"`
	Period         int        `yaml:"period" json:"period" validate:"gte=1,lte=30"`
}

// DefaultCriteria returns the baseline search: Python, no experience, remote, whole country
func DefaultCriteria() Criteria {
	return Criteria{
		Text:           "Python",
		Experience:     NoExperience,
		WorkFormat:     "REMOTE",
		Area:           AreaRussia,
		PerPage:        10,
		OnlyWithSalary: false,
		Period:         30,
	}
}

// ListingResponse is the typed view over one page of search results.
// Raw holds the body exactly as received.
type ListingResponse struct {
	Found int       `json:"found"`
	Pages int       `json:"pages"`
	Page  int       `json:"page"`
	Items []Vacancy `json:"items"`

	Raw json.RawMessage `json:"-"`
}

// Vacancy is a single job posting inside a listing
type Vacancy struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Salary       *Salary      `json:"salary"`
	SalaryRange  *SalaryRange `json:"salary_range"`
	Employer     Employer     `json:"employer"`
	Area         NamedRef     `json:"area"`
	AlternateURL string       `json:"alternate_url"`
	Snippet      Snippet      `json:"snippet"`
}

// Salary is the basic salary fork; either bound may be missing
type Salary struct {
	From     *float64 `json:"from"`
	To       *float64 `json:"to"`
	Currency string   `json:"currency"`
	Gross    *bool    `json:"gross"`
}

// SalaryRange carries payment mode and frequency
type SalaryRange struct {
	Mode      *NamedRef `json:"mode"`
	Frequency *NamedRef `json:"frequency"`
}

// NamedRef is the {id, name} dictionary entry hh.ru uses everywhere
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Employer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Snippet struct {
	Requirement    *string `json:"requirement"`
	Responsibility *string `json:"responsibility"`
}
