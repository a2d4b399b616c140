package hh

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingBody = `{
	"found": 2,
	"pages": 1,
	"page": 0,
	"per_page": 20,
	"items": [
		{
			"id": "101",
			"name": "Junior Python Developer",
			"salary": {"from": 100000, "to": 150000, "currency": "RUR", "gross": false},
			"salary_range": {"mode": {"id": "MONTH", "name": "full"}, "frequency": {"id": "TWICE_PER_MONTH", "name": "monthly"}},
			"employer": {"id": "7", "name": "Acme"},
			"area": {"id": "1", "name": "Москва"},
			"alternate_url": "https://hh.ru/vacancy/101",
			"snippet": {"requirement": "Знание <highlighttext>Python</highlighttext>", "responsibility": null}
		},
		{
			"id": "102",
			"name": "Python intern",
			"salary": null,
			"employer": {"id": "8", "name": "Globex"},
			"alternate_url": "https://hh.ru/vacancy/102",
			"snippet": {}
		}
	]
}`

func TestSearch_QueryAndHeaders(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL + "/vacancies"})
	require.NoError(t, err)

	criteria := DefaultCriteria()
	criteria.PerPage = 20

	listing, err := client.Search(context.Background(), criteria)
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/vacancies", got.URL.Path)
	assert.Equal(t, defaultUserAgent, got.Header.Get("User-Agent"))

	q := got.URL.Query()
	assert.Equal(t, "NAME:(Python)", q.Get("text"))
	assert.Equal(t, "noExperience", q.Get("experience"))
	assert.Equal(t, "113", q.Get("area"))
	assert.Equal(t, "20", q.Get("per_page"))
	assert.Equal(t, "0", q.Get("page"))
	assert.Equal(t, "false", q.Get("only_with_salary"))
	assert.Equal(t, "30", q.Get("period"))
	assert.Equal(t, "REMOTE", q.Get("work_format"))

	assert.Equal(t, 2, listing.Found)
	assert.Equal(t, 1, listing.Pages)
	assert.Equal(t, 0, listing.Page)
	require.Len(t, listing.Items, 2)
	assert.LessOrEqual(t, len(listing.Items), criteria.PerPage)

	first := listing.Items[0]
	assert.Equal(t, "Junior Python Developer", first.Name)
	require.NotNil(t, first.Salary)
	require.NotNil(t, first.Salary.From)
	assert.Equal(t, 100000.0, *first.Salary.From)
	require.NotNil(t, first.SalaryRange)
	assert.Equal(t, "monthly", first.SalaryRange.Frequency.Name)
	assert.Equal(t, "Acme", first.Employer.Name)
	assert.Nil(t, first.Snippet.Responsibility)

	assert.Nil(t, listing.Items[1].Salary)
	assert.Nil(t, listing.Items[1].SalaryRange)
	assert.JSONEq(t, listingBody, string(listing.Raw))
}

func TestSearch_PerPagePassedThrough(t *testing.T) {
	var perPage string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		perPage = r.URL.Query().Get("per_page")
		_, _ = w.Write([]byte(`{"found":0,"pages":0,"page":0,"items":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	criteria := DefaultCriteria()
	criteria.PerPage = 500

	_, err = client.Search(context.Background(), criteria)
	require.NoError(t, err)
	assert.Equal(t, "500", perPage)
}

func TestSearch_OmitsEmptyFilters(t *testing.T) {
	var query map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query()
		_, _ = w.Write([]byte(`{"found":0,"pages":0,"page":0,"items":[]}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL, UserAgent: "custom/1.0"})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), Criteria{Text: "Go", Area: 1, PerPage: 5, Period: 7})
	require.NoError(t, err)

	assert.NotContains(t, query, "experience")
	assert.NotContains(t, query, "work_format")
	assert.Equal(t, []string{"NAME:(Go)"}, query["text"])
}

func TestSearch_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":[{"type":"forbidden"}]}` + "\n"))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	listing, err := client.Search(context.Background(), DefaultCriteria())
	require.Error(t, err)
	assert.Nil(t, listing)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
	assert.Equal(t, `{"errors":[{"type":"forbidden"}]}`, statusErr.Body)
	assert.ErrorIs(t, err, ErrStatus)
	assert.True(t, IsRequestFailure(err))
	assert.Contains(t, err.Error(), "403")
}

func TestSearch_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	baseURL := srv.URL
	srv.Close()

	client, err := NewClient(Config{BaseURL: baseURL})
	require.NoError(t, err)

	_, err = client.Search(context.Background(), DefaultCriteria())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)
	assert.True(t, IsRequestFailure(err))
}

func TestSearch_DecodeError(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "html", body: "<html>captcha</html>"},
		{name: "truncated", body: `{"found": 1, "items": [`},
		{name: "empty", body: ""},
		{name: "wrong shape", body: `{"found": "many"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client, err := NewClient(Config{BaseURL: srv.URL})
			require.NoError(t, err)

			_, err = client.Search(context.Background(), DefaultCriteria())
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrDecode)
			assert.False(t, IsRequestFailure(err))
		})
	}
}

func TestSearch_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client, err := NewClient(Config{BaseURL: srv.URL})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Search(ctx, DefaultCriteria())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.ErrorIs(t, err, ErrTransport)
}
