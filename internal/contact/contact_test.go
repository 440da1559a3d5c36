package contact

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func validSubmission() Submission {
	return Submission{Name: " Asha ", Place: "Kochi", Age: "34", Phone: "9999999999", PageSource: "Home Page"}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		mutate      func(*Submission)
		wantErr     bool
		description string
	}{
		{func(s *Submission) {}, false, "valid"},
		{func(s *Submission) { s.Name = "   " }, true, "blank name"},
		{func(s *Submission) { s.Phone = "" }, true, "missing phone"},
		{func(s *Submission) { s.Age = "17" }, true, "too young"},
		{func(s *Submission) { s.Age = "101" }, true, "too old"},
		{func(s *Submission) { s.Age = "abc" }, true, "non-numeric age"},
		{func(s *Submission) { s.Message = "" }, false, "message optional"},
	}
	for _, tc := range tests {
		t.Run(tc.description, func(t *testing.T) {
			s := validSubmission()
			tc.mutate(&s)
			err := s.Normalize().Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("err = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestPageSourceFromPath(t *testing.T) {
	tests := map[string]string{
		"/":              "Home Page",
		"/index.html":    "Home Page",
		"/mutual.html":   "Mutual Funds Page",
		"/site/iap.html": "IAP Page",
		"/pms.html":      "PMS Page",
		"/start.html":    "Start Investment Page",
		"/about.html":    "Unknown",
	}
	for path, want := range tests {
		if got := PageSourceFromPath(path); got != want {
			t.Errorf("PageSourceFromPath(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestSubmit_Success(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse form: %v", err)
		}
		got = map[string]string{}
		for k, v := range r.MultipartForm.Value {
			got[k] = v[0]
		}
		w.Write([]byte(`{"result":"success"}`))
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, 0).Submit(context.Background(), validSubmission()); err != nil {
		t.Fatal(err)
	}
	if got["name"] != "Asha" || got["pageSource"] != "Home Page" || got["age"] != "34" {
		t.Errorf("relayed fields = %v", got)
	}
	if _, ok := got["message"]; !ok {
		t.Error("message field missing")
	}
}

func TestSubmit_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result":"error","message":"sheet locked"}`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL, 0).Submit(context.Background(), validSubmission())
	var relayErr *RelayError
	if !errors.As(err, &relayErr) || relayErr.Code != "REJECTED" || relayErr.Message != "sheet locked" {
		t.Fatalf("err = %v", err)
	}
}

func TestSubmit_BadStatusAndBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/down" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`<html>oops</html>`))
	}))
	defer srv.Close()

	err := NewClient(srv.URL+"/down", 0).Submit(context.Background(), validSubmission())
	var relayErr *RelayError
	if !errors.As(err, &relayErr) || relayErr.StatusCode != http.StatusBadGateway {
		t.Fatalf("err = %v", err)
	}

	if err := NewClient(srv.URL, 0).Submit(context.Background(), validSubmission()); err == nil {
		t.Fatal("expected a decode error")
	}
}

func TestSubmit_NotConfiguredOrInvalid(t *testing.T) {
	var relayErr *RelayError
	if err := NewClient("", 0).Submit(context.Background(), validSubmission()); !errors.As(err, &relayErr) || relayErr.Code != "NOT_CONFIGURED" {
		t.Errorf("err = %v", err)
	}
	s := validSubmission()
	s.Age = "12"
	if err := NewClient("http://127.0.0.1:1", 0).Submit(context.Background(), s); !errors.As(err, &relayErr) || relayErr.Code != "INVALID_SUBMISSION" {
		t.Errorf("err = %v", err)
	}
}
