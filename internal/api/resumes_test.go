package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/samthedataman/resumably/internal/types"
)

func TestCreateResume_Success(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/resumes/" {
			t.Errorf("%s %s", r.Method, r.URL.Path)
		}
		var req types.CreateResumeRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		_ = json.NewEncoder(w).Encode(types.Resume{ID: 1, Name: req.Name, IsDefault: true})
	}))
	defer srv.Close()
	resume, err := CreateResume(context.Background(), srv.Client(), srv.URL, types.CreateResumeRequest{Name: "Backend"})
	if err != nil || resume.ID != 1 || !resume.IsDefault {
		t.Fatalf("CreateResume unexpected: resume=%+v err=%v", resume, err)
	}
}

func TestGetDefaultResume_NotFound(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"detail": "No default resume found"})
	}))
	defer srv.Close()
	if _, err := GetDefaultResume(context.Background(), srv.Client(), srv.URL); !IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestSetDefaultResume_Path(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/resumes/7/set-default" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"message": "ok"})
	}))
	defer srv.Close()
	if err := SetDefaultResume(context.Background(), srv.Client(), srv.URL, 7); err != nil {
		t.Fatalf("SetDefaultResume: %v", err)
	}
}

func TestDownloadResumePDF_FilenameFromHeader(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Disposition", `attachment; filename="backend_resume.pdf"`)
		w.Header().Set("Content-Type", "application/pdf")
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()
	data, filename, err := DownloadResumePDF(context.Background(), srv.Client(), srv.URL, 7)
	if err != nil {
		t.Fatalf("DownloadResumePDF: %v", err)
	}
	if string(data) != "%PDF-1.4 fake" {
		t.Errorf("data = %q", data)
	}
	if filename != "backend_resume.pdf" {
		t.Errorf("filename = %q", filename)
	}
}

func TestDownloadResumePDF_DefaultFilename(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("pdf-bytes"))
	}))
	defer srv.Close()
	_, filename, err := DownloadResumePDF(context.Background(), srv.Client(), srv.URL, 7)
	if err != nil || filename != "resume.pdf" {
		t.Fatalf("filename=%q err=%v", filename, err)
	}
}
