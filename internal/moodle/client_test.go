package moodle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/core"
)

func newTestClient(serverURL string) *Client {
	return NewClient(&config.MoodleConfig{URL: serverURL, Token: "secret-token"})
}

func TestClient_ListCourses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/webservice/rest/server.php" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("wstoken") != "secret-token" {
			t.Errorf("token missing from request")
		}
		if q.Get("wsfunction") != "core_course_get_courses" {
			t.Errorf("unexpected function: %s", q.Get("wsfunction"))
		}
		if q.Get("moodlewsrestformat") != "json" {
			t.Errorf("expected json rest format")
		}
		_, _ = w.Write([]byte(`[{"id":2,"shortname":"alg","fullname":"Algebra I"}]`))
	}))
	defer server.Close()

	courses, err := newTestClient(server.URL).ListCourses(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(courses) != 1 || courses[0].ShortName != "alg" || courses[0].ID != 2 {
		t.Errorf("unexpected courses: %+v", courses)
	}
}

func TestClient_CourseContents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("wsfunction") != "core_course_get_contents" {
			t.Errorf("unexpected function: %s", q.Get("wsfunction"))
		}
		if q.Get("courseid") != "2" {
			t.Errorf("unexpected courseid: %s", q.Get("courseid"))
		}
		_, _ = w.Write([]byte(`[{"name":"Week 1","modules":[{"name":"Syllabus","modname":"resource","contents":[{"type":"file","filename":"syllabus.pdf","fileurl":"http://moodle/file.pdf?forcedownload=1"}]}]}]`))
	}))
	defer server.Close()

	sections, err := newTestClient(server.URL).CourseContents(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sections) != 1 || len(sections[0].Modules) != 1 {
		t.Fatalf("unexpected sections: %+v", sections)
	}
	if sections[0].Modules[0].Contents[0].Filename != "syllabus.pdf" {
		t.Errorf("unexpected contents: %+v", sections[0].Modules[0].Contents)
	}
}

func TestClient_WSException(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"exception":"webservice_access_exception","errorcode":"accessexception","message":"Access control exception"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListCourses(context.Background())
	if !errors.Is(err, core.ErrSourceDocument) {
		t.Fatalf("expected ErrSourceDocument, got %v", err)
	}
}

func TestClient_DownloadFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("token") != "secret-token" {
			t.Error("token not appended to download url")
		}
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer server.Close()

	body, contentType, err := newTestClient(server.URL).DownloadFile(
		context.Background(), server.URL+"/file.pdf?forcedownload=1", "file.pdf")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contentType != "application/pdf" {
		t.Errorf("unexpected content type: %s", contentType)
	}
	if string(body) != "%PDF-1.4 fake" {
		t.Errorf("unexpected body: %q", body)
	}
}

func TestClient_DownloadFile_SniffsTypeFromName(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("# Notes"))
	}))
	defer server.Close()

	_, contentType, err := newTestClient(server.URL).DownloadFile(
		context.Background(), server.URL+"/notes?x=1", "notes.html")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The server's generic type is replaced by an extension guess.
	if contentType == "application/octet-stream" {
		t.Errorf("expected a sniffed content type, got %s", contentType)
	}
}
