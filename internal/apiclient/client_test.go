package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoginReturnsUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/login" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body["email"] != "u@example.com" || body["password"] != "secret" {
			t.Errorf("unexpected credentials %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "Login successful",
			"user_id": "user-1",
		})
	}))
	defer srv.Close()

	userID, err := NewClient(srv.URL).Login(context.Background(), "u@example.com", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("userID = %q, want user-1", userID)
	}
}

func TestLoginBadCredentialsIsAuthKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Invalid email or password"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Login(context.Background(), "u@example.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
	if apiErr.Kind != KindAuth {
		t.Fatalf("kind = %q, want auth", apiErr.Kind)
	}
	if apiErr.Message != "Invalid email or password" {
		t.Fatalf("message = %q", apiErr.Message)
	}
}

func TestSignupValidationKindOn400(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "Email already registered"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Signup(context.Background(), "U", "u@example.com", "secret")
	if !IsKind(err, KindValidation) {
		t.Fatalf("err = %v, want validation kind", err)
	}
}

func TestUploadDocumentSendsMultipartFileAndUserID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summarize" {
			t.Errorf("path = %s, want /summarize", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("user_id"); got != "user-1" {
			t.Errorf("user_id = %q, want user-1", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		if header.Filename != "paper.txt" {
			t.Errorf("filename = %q, want paper.txt", header.Filename)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"message": "File uploaded successfully",
			"doc_id":  "doc123",
			"source":  header.Filename,
		})
	}))
	defer srv.Close()

	docID, err := NewClient(srv.URL).UploadDocument(
		context.Background(), "paper.txt", strings.NewReader("abstract..."), "user-1")
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if docID != "doc123" {
		t.Fatalf("docID = %q, want doc123", docID)
	}
}

func TestPollProgressParsesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/summary-progress/doc123" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"status": "processing", "progress": 60})
	}))
	defer srv.Close()

	p, err := NewClient(srv.URL).PollProgress(context.Background(), "doc123")
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if p.Status != "processing" || p.Progress != 60 {
		t.Fatalf("progress = %+v", p)
	}
}

func TestAskOmitsDocIDWhenEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if _, present := body["doc_id"]; present {
			t.Error("doc_id should be omitted when empty")
		}
		if body["question"] != "What is RAG?" {
			t.Errorf("question = %q", body["question"])
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"answer": "Retrieval-augmented generation."})
	}))
	defer srv.Close()

	answer, err := NewClient(srv.URL).Ask(context.Background(), "What is RAG?", "")
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if answer != "Retrieval-augmented generation." {
		t.Fatalf("answer = %q", answer)
	}
}

func TestListHistoryAndGetDocument(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/history":
			if got := r.URL.Query().Get("user_id"); got != "user-1" {
				t.Errorf("user_id = %q", got)
			}
			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"doc_id": "doc123", "filename": "paper.pdf", "status": "completed"},
			})
		case strings.HasPrefix(r.URL.Path, "/document/"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"doc_id":        "doc123",
				"filename":      "paper.pdf",
				"summary":       "A",
				"advantages":    []string{"fast"},
				"disadvantages": []string{"costly"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	records, err := client.ListHistory(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("list history: %v", err)
	}
	if len(records) != 1 || records[0].DocID != "doc123" {
		t.Fatalf("records = %+v", records)
	}

	rec, err := client.GetDocument(context.Background(), "doc123", "user-1")
	if err != nil {
		t.Fatalf("get document: %v", err)
	}
	if rec.Summary != "A" || len(rec.Advantages) != 1 || rec.Advantages[0] != "fast" {
		t.Fatalf("record = %+v", rec)
	}
}

func TestTransportFailureIsNetworkKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := NewClient(srv.URL).Login(context.Background(), "u@example.com", "secret")
	if !IsKind(err, KindNetwork) {
		t.Fatalf("err = %v, want network kind", err)
	}
}
