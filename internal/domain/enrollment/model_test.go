package enrollment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/rs/zerolog"

	"github.com/apothedoc/clinic-transfer/internal/platform/rest"
)

func TestStatus_Active(t *testing.T) {
	cases := []struct {
		s    Status
		want []string
	}{
		{Status{}, nil},
		{Status{Ccm: true}, []string{"ccm"}},
		{Status{Ccm: true, Rpm: true}, []string{"ccm", "rpm"}},
		{Status{Ccm: true, Bhi: true, Rpm: true, Pcm: true}, []string{"ccm", "bhi", "rpm", "pcm"}},
	}
	for _, c := range cases {
		if got := c.s.Active(); !reflect.DeepEqual(got, c.want) {
			t.Errorf("%+v: got %v, want %v", c.s, got, c.want)
		}
	}
	if (Status{Ccm: true, Pcm: true}).Count() != 2 {
		t.Error("Count mismatch")
	}
}

func TestStatus_Has(t *testing.T) {
	s := Status{Bhi: true}
	if !s.Has("bhi") || s.Has("ccm") || s.Has("unknown") {
		t.Errorf("Has misreported for %+v", s)
	}
}

func apiRepo(srv *httptest.Server) Repository {
	c := rest.NewClient(srv.URL, rest.Tenant{OrgID: "1", ClinicID: "2", Token: "t"},
		rest.Options{Logger: zerolog.Nop()})
	return NewRepoAPI(c, zerolog.Nop())
}

func TestRepoAPI_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/org-id/1/clinic-id/2/patient/5/enrollment/status" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"currentEnrollments":{"ccm":true,"bhi":false,"rpm":true,"pcm":false}}`))
	}))
	defer srv.Close()

	got, err := apiRepo(srv).Status(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.Ccm || got.Bhi || !got.Rpm || got.Pcm {
		t.Errorf("got %+v", got)
	}
}

func TestRepoAPI_StatusMissingBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	if _, err := apiRepo(srv).Status(context.Background(), 5); err == nil {
		t.Fatal("expected error when status payload is missing")
	}
}

func TestRepoAPI_DetailsNormalizesDates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/org-id/1/clinic-id/2/patient/5/enrollment/ccm" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.Write([]byte(`{"success":true,"enrollment":{"enrollmentDate":"2023-02-01","primaryClinician":{"id":7}}}`))
	}))
	defer srv.Close()

	e, err := apiRepo(srv).Details(context.Background(), 5, "ccm")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.EnrollmentDate != "2023-02-01T00:00:00" {
		t.Errorf("enrollmentDate = %q", e.EnrollmentDate)
	}
	if e.PrimaryClinician == nil || e.PrimaryClinician.ID != 7 {
		t.Errorf("primaryClinician = %+v", e.PrimaryClinician)
	}
}
