package comicdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := NewClient("test-key", server.URL, WithHTTPClient(server.Client()), WithRateLimit(0))
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

func TestNewClientValidation(t *testing.T) {
	if _, err := NewClient("", "http://example.test"); err == nil {
		t.Fatal("expected error for missing api key")
	}
	if _, err := NewClient("key", ""); err == nil {
		t.Fatal("expected error for missing base url")
	}
}

func TestSearchSeriesParsesResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q, want test-key", got)
		}
		if got := r.URL.Query().Get("query"); got != "Amazing Spider-Man" {
			t.Errorf("query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status_code": 1,
			"error": "OK",
			"results": [
				{
					"id": 2121,
					"name": "Amazing Spider-Man",
					"start_year": "2018",
					"count_of_issues": 93,
					"publisher": {"name": "Marvel"},
					"image": {"thumb_url": "http://img.test/asm.jpg"}
				},
				{
					"id": 2122,
					"name": "",
					"start_year": "bad",
					"count_of_issues": -3
				}
			]
		}`))
	})

	refs, err := client.SearchSeries(context.Background(), "Amazing Spider-Man")
	if err != nil {
		t.Fatalf("SearchSeries failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	first := refs[0]
	if first.SeriesKey != "2121" || first.StartYear != "2018" || first.IssueCount != 93 || first.Publisher != "Marvel" {
		t.Errorf("unexpected first ref: %+v", first)
	}
	second := refs[1]
	if second.SeriesName != "Series 2122" {
		t.Errorf("missing name should synthesize label, got %q", second.SeriesName)
	}
	if second.StartYear != "" || second.IssueCount != 0 {
		t.Errorf("invalid year/count should normalize, got %+v", second)
	}
}

func TestSearchSeriesEmptyTerms(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("gateway should not be called for empty terms")
	})
	refs, err := client.SearchSeries(context.Background(), "   ")
	if err != nil {
		t.Fatalf("SearchSeries failed: %v", err)
	}
	if len(refs) != 0 {
		t.Errorf("got %d refs, want 0", len(refs))
	}
}

func TestListIssuesParsesResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("filter"); got != "volume:2121" {
			t.Errorf("filter = %q", got)
		}
		w.Write([]byte(`{
			"status_code": 1,
			"error": "OK",
			"results": [
				{"id": 9001, "issue_number": "1", "name": "Back to Basics, Part 1", "cover_date": "2018-07-01"},
				{"id": 9002, "issue_number": "2", "name": "Back to Basics, Part 2", "cover_date": "2018-08-01"}
			]
		}`))
	})

	refs, err := client.ListIssues(context.Background(), "2121")
	if err != nil {
		t.Fatalf("ListIssues failed: %v", err)
	}
	if len(refs) != 2 {
		t.Fatalf("got %d refs, want 2", len(refs))
	}
	if refs[0].IssueNumber != "1" || refs[0].CoverYear != "2018" {
		t.Errorf("unexpected first issue ref: %+v", refs[0])
	}
}

func TestFetchIssueParsesDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/issue/9001" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{
			"status_code": 1,
			"error": "OK",
			"results": {
				"id": 9001,
				"issue_number": "1",
				"name": "Back to Basics, Part 1",
				"cover_date": "2018-07-11",
				"description": "Peter Parker is back.",
				"rating": "4.5",
				"site_detail_url": "http://db.test/issue/9001",
				"volume": {
					"name": "Amazing Spider-Man",
					"start_year": "2018",
					"publisher": {"name": "Marvel"}
				},
				"character_credits": [{"name": "Spider-Man"}, {"name": "Mary Jane Watson"}],
				"person_credits": [
					{"name": "Nick Spencer", "role": "writer"},
					{"name": "Ryan Ottley", "role": "penciler, cover"}
				],
				"image": {"super_url": "http://img.test/9001.jpg"},
				"associated_images": [{"original_url": "http://img.test/9001-alt.jpg"}]
			}
		}`))
	})

	issue, err := client.FetchIssue(context.Background(), "9001")
	if err != nil {
		t.Fatalf("FetchIssue failed: %v", err)
	}
	if issue.SeriesName != "Amazing Spider-Man" || issue.Publisher != "Marvel" {
		t.Errorf("unexpected series fields: %+v", issue)
	}
	if issue.Year != "2018" || issue.Month != "7" {
		t.Errorf("Year/Month = %q/%q, want 2018/7", issue.Year, issue.Month)
	}
	if issue.Rating != 4.5 {
		t.Errorf("Rating = %f, want 4.5", issue.Rating)
	}
	if issue.Writer != "Nick Spencer" {
		t.Errorf("Writer = %q", issue.Writer)
	}
	if issue.Penciller != "Ryan Ottley" || issue.CoverArtist != "Ryan Ottley" {
		t.Errorf("penciller/cover = %q/%q", issue.Penciller, issue.CoverArtist)
	}
	if issue.Characters != "Spider-Man, Mary Jane Watson" {
		t.Errorf("Characters = %q", issue.Characters)
	}
	if len(issue.ImageURLs) != 2 {
		t.Errorf("ImageURLs = %v, want primary plus associated", issue.ImageURLs)
	}
}

func TestFetchIssueNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status_code": 101, "error": "Object Not Found", "results": {}}`))
	})

	_, err := client.FetchIssue(context.Background(), "404404")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGatewayErrorsAreConnectionErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.SearchSeries(context.Background(), "Saga")
	if !errors.Is(err, ErrConnection) {
		t.Fatalf("expected ErrConnection, got %v", err)
	}
	if IsTransient(err) != true {
		t.Error("bad gateway should classify as transient")
	}
}
