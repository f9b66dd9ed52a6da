package seedr

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
)

// videoTreeServer serves a small folder tree:
//
//	root (1): Movie.mkv (video), notes.txt
//	├── Shows (2): Pilot.mkv (video), plus a cyclic link back to itself
//	└── Broken (3): always 500
func videoTreeServer(t *testing.T) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	mux := http.NewServeMux()
	mux.HandleFunc("/api/folder", func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Query().Get("access_token") != "tok" {
			t.Errorf("missing access_token")
		}
		fmt.Fprint(w, `{
			"id": 1, "name": "root",
			"folders": [{"id":2,"name":"Shows"},{"id":3,"name":"Broken"}],
			"files": [
				{"folder_file_id":10,"name":"Movie.mkv","size":100,"play_video":true},
				{"folder_file_id":11,"name":"notes.txt","size":5,"play_video":false}
			]
		}`)
	})
	mux.HandleFunc("/api/folder/2", func(w http.ResponseWriter, r *http.Request) {
		requests++
		fmt.Fprint(w, `{
			"id": 2, "name": "Shows",
			"folders": [{"id":2,"name":"Shows"}],
			"files": [{"folder_file_id":12,"name":"Pilot.mkv","size":200,"play_video":true}]
		}`)
	})
	mux.HandleFunc("/api/folder/3", func(w http.ResponseWriter, r *http.Request) {
		requests++
		http.Error(w, "internal error", http.StatusInternalServerError)
	})
	return httptest.NewServer(mux), &requests
}

func TestGetFolder(t *testing.T) {
	server, _ := videoTreeServer(t)
	defer server.Close()

	client := newTestClient(server.URL)

	root, err := client.GetFolder("tok", 0)
	if err != nil {
		t.Fatalf("GetFolder(root) error = %v", err)
	}
	if root.ID != 1 || len(root.Folders) != 2 || len(root.Files) != 2 {
		t.Errorf("unexpected root folder: %+v", root)
	}

	shows, err := client.GetFolder("tok", 2)
	if err != nil {
		t.Fatalf("GetFolder(2) error = %v", err)
	}
	if shows.Name != "Shows" {
		t.Errorf("folder name = %q, want Shows", shows.Name)
	}
}

func TestListVideoFiles(t *testing.T) {
	server, requests := videoTreeServer(t)
	defer server.Close()

	videos := newTestClient(server.URL).ListVideoFiles("tok", 0, "")

	// Partial results despite folder 3 failing; files before subfolders,
	// both in API order; cycle on folder 2 visited only once.
	want := []VideoFile{
		{ID: 10, Name: "Movie.mkv", Size: 100, Path: "Movie.mkv"},
		{ID: 12, Name: "Pilot.mkv", Size: 200, Path: "Shows/Pilot.mkv"},
	}
	if !reflect.DeepEqual(videos, want) {
		t.Errorf("ListVideoFiles() = %+v, want %+v", videos, want)
	}

	// root + folder 2 + folder 3; the cyclic re-entry must not refetch
	if *requests != 3 {
		t.Errorf("expected 3 folder fetches, got %d", *requests)
	}
}

func TestListVideoFilesWithParentPath(t *testing.T) {
	server, _ := videoTreeServer(t)
	defer server.Close()

	videos := newTestClient(server.URL).ListVideoFiles("tok", 0, "seedr")
	if len(videos) != 2 {
		t.Fatalf("expected 2 videos, got %d", len(videos))
	}
	if videos[0].Path != "seedr/Movie.mkv" {
		t.Errorf("path = %q, want seedr/Movie.mkv", videos[0].Path)
	}
	if videos[1].Path != "seedr/Shows/Pilot.mkv" {
		t.Errorf("path = %q, want seedr/Shows/Pilot.mkv", videos[1].Path)
	}
}

func TestListVideoFilesRootUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer server.Close()

	videos := newTestClient(server.URL).ListVideoFiles("tok", 0, "")
	if len(videos) != 0 {
		t.Errorf("expected empty result, got %+v", videos)
	}
	if videos == nil {
		t.Error("expected non-nil empty slice")
	}
}

func TestGetStreamURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/oauth_test/resource.php" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parsing form: %v", err)
		}
		if r.FormValue("func") != "fetch_file" {
			t.Errorf("func = %q, want fetch_file", r.FormValue("func"))
		}
		if r.FormValue("folder_file_id") != "12" {
			t.Errorf("folder_file_id = %q, want 12", r.FormValue("folder_file_id"))
		}
		fmt.Fprint(w, `{"url":"https://cdn.example.com/f/12","name":"Pilot.mkv","size":200}`)
	}))
	defer server.Close()

	stream, err := newTestClient(server.URL).GetStreamURL("tok", 12)
	if err != nil {
		t.Fatalf("GetStreamURL() error = %v", err)
	}
	if stream.URL != "https://cdn.example.com/f/12" || stream.Name != "Pilot.mkv" {
		t.Errorf("unexpected stream: %+v", stream)
	}
}

func TestGetStreamURLServerReportedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error":"file not found"}`)
	}))
	defer server.Close()

	if _, err := newTestClient(server.URL).GetStreamURL("tok", 99); err == nil {
		t.Fatal("expected error when the body carries an error field")
	}
}
