package platform

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"stagecast/internal/captions"
	"stagecast/internal/creds"
	"stagecast/internal/logging"
	"stagecast/internal/services"
)

func testCredential() creds.Credential {
	return creds.Credential{SessionToken: "session", CSRFToken: "csrf", DeviceID: "device"}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClientWithDoer(server.URL, server.Client(), logging.NewNop())
}

func TestQueryParsesStatusAndPages(t *testing.T) {
	var gotPath, gotQuery string
	var gotCookies []*http.Cookie
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotCookies = r.Cookies()
		w.Write([]byte(`{"code":0,"data":{"state":0,"pages":[{"cid":42,"page":1,"part":"Episode One"}]}}`))
	})

	status, err := client.Query(context.Background(), "av1234", testCredential())
	if err != nil {
		t.Fatalf("Query: %v", err)
	}
	if gotPath != viewPath {
		t.Errorf("path = %q, want %q", gotPath, viewPath)
	}
	if gotQuery != "aid=1234" {
		t.Errorf("query = %q, want aid=1234", gotQuery)
	}
	if status.State != 0 || len(status.Pages) != 1 {
		t.Fatalf("status = %+v", status)
	}
	if status.Pages[0].CID != 42 || status.Pages[0].Ordinal != 1 || status.Pages[0].Title != "Episode One" {
		t.Errorf("page = %+v", status.Pages[0])
	}

	cookieValues := map[string]string{}
	for _, cookie := range gotCookies {
		cookieValues[cookie.Name] = cookie.Value
	}
	if cookieValues["SESSDATA"] != "session" || cookieValues["bili_jct"] != "csrf" || cookieValues["buvid3"] != "device" {
		t.Errorf("cookies = %v", cookieValues)
	}
}

func TestQueryUsesBvidForBVReferences(t *testing.T) {
	var gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"code":0,"data":{"state":-1}}`))
	})

	if _, err := client.Query(context.Background(), "BV1xx411c7mD", testCredential()); err != nil {
		t.Fatalf("Query: %v", err)
	}
	if gotQuery != "bvid=BV1xx411c7mD" {
		t.Errorf("query = %q, want bvid form", gotQuery)
	}
}

func TestQueryMapsMissingAssetToNotFound(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"api code", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"code":-404,"message":"not found"}`))
		}},
		{"http status", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)
			_, err := client.Query(context.Background(), "av9", testCredential())
			if !errors.Is(err, services.ErrNotFound) {
				t.Fatalf("err = %v, want not found", err)
			}
		})
	}
}

func TestQueryRejectsOtherAPIErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":-101,"message":"not logged in"}`))
	})
	_, err := client.Query(context.Background(), "av9", testCredential())
	if err == nil || errors.Is(err, services.ErrNotFound) {
		t.Fatalf("err = %v, want non-not-found failure", err)
	}
}

func TestSubmitPostsCaptionDraft(t *testing.T) {
	var gotForm map[string][]string
	var gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = r.PostForm
		w.Write([]byte(`{"code":0}`))
	})

	body := captions.NewBody(captions.Track{
		Language: "en",
		Cues:     []captions.Cue{{Start: 1, End: 2, Text: "Hello.", Position: captions.DefaultPosition}},
	})
	if err := client.Submit(context.Background(), 42, "en", body, testCredential()); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if gotPath != captionPath {
		t.Errorf("path = %q, want %q", gotPath, captionPath)
	}
	if got := gotForm["oid"]; len(got) != 1 || got[0] != "42" {
		t.Errorf("oid = %v", got)
	}
	if got := gotForm["lan"]; len(got) != 1 || got[0] != "en" {
		t.Errorf("lan = %v", got)
	}
	if got := gotForm["csrf"]; len(got) != 1 || got[0] != "csrf" {
		t.Errorf("csrf = %v", got)
	}

	var decoded captions.Body
	if err := json.Unmarshal([]byte(gotForm["data"][0]), &decoded); err != nil {
		t.Fatalf("decode data field: %v", err)
	}
	if len(decoded.Cues) != 1 || decoded.Cues[0].Text != "Hello." {
		t.Errorf("decoded body = %+v", decoded)
	}
}

func TestSubmitSurfacesAPIRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"code":-111,"message":"csrf check failed"}`))
	})
	err := client.Submit(context.Background(), 42, "en", captions.Body{}, testCredential())
	if err == nil {
		t.Fatal("expected rejection error")
	}
}
