package patient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/apothedoc/clinic-transfer/internal/platform/rest"
)

func apiRepo(srv *httptest.Server) Repository {
	c := rest.NewClient(srv.URL, rest.Tenant{OrgID: "1", ClinicID: "2", Token: "t"},
		rest.Options{Logger: zerolog.Nop()})
	return NewRepoAPI(c, zerolog.Nop())
}

func TestRepoAPI_ListNormalizesDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/org-id/1/clinic-id/2/patient/list" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"patients":[{"id":5,"mrn":"A100","dateOfBirth":"1955-03-02"}]}`))
	}))
	defer srv.Close()

	got, err := apiRepo(srv).List(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 || got[0].DateOfBirth != "1955-03-02T00:00:00" {
		t.Errorf("got %+v", got)
	}
}

func TestRepoAPI_CreateReturnsNewID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true,"patientId":42}`))
	}))
	defer srv.Close()

	src := 5
	id, err := apiRepo(srv).Create(context.Background(), Patient{ID: &src, MRN: "A100"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 42 {
		t.Errorf("got id %d, want 42", id)
	}
}

func TestRepoAPI_CreateStripsSourceID(t *testing.T) {
	var body string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := make([]byte, r.ContentLength)
		r.Body.Read(b)
		body = string(b)
		w.Write([]byte(`{"success":true,"patientId":42}`))
	}))
	defer srv.Close()

	src := 5
	if _, err := apiRepo(srv).Create(context.Background(), Patient{ID: &src, MRN: "A100"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != `{"mrn":"A100"}` {
		t.Errorf("posted body = %s, source id must be stripped", body)
	}
}

func TestRepoAPI_CreateConflict(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "duplicate mrn", http.StatusConflict)
	}))
	defer srv.Close()

	_, err := apiRepo(srv).Create(context.Background(), Patient{MRN: "A100"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("got %v, want ErrConflict", err)
	}
}

func TestRepoAPI_Details(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/org-id/1/clinic-id/2/patient/5/details" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"patientDetails":{"mrn":"A100","nonHealthNote":"prefers calls"}}`))
	}))
	defer srv.Close()

	d, err := apiRepo(srv).Details(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d == nil || d.NonHealthNote != "prefers calls" {
		t.Errorf("got %+v", d)
	}
}

func TestFindByMRN(t *testing.T) {
	id := 77
	roster := []Patient{{MRN: "B200"}, {ID: &id, MRN: "A100"}}

	if got := FindByMRN(roster, "A100"); got == nil || got.ID == nil || *got.ID != 77 {
		t.Errorf("got %+v, want patient 77", got)
	}
	if got := FindByMRN(roster, "Z999"); got != nil {
		t.Errorf("got %+v, want nil for absent MRN", got)
	}
	if got := FindByMRN(roster, ""); got != nil {
		t.Errorf("got %+v, want nil for empty MRN", got)
	}
}
