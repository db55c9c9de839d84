package transfer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"testing"

	"stagecast/internal/creds"
	"stagecast/internal/media"
	"stagecast/internal/metadata"
	"stagecast/internal/services"
)

func toolRequest() Request {
	return Request{
		Assets: []media.Asset{
			{Path: "/staging/episode.mp4", Role: media.RolePrimaryVideo},
			{Path: "/staging/cover.jpg", Role: media.RoleCover},
		},
		Meta: metadata.Request{
			ZoneID:   17,
			Title:    "Episode One",
			Tags:     []string{"travel", "food"},
			CoverRef: "/staging/cover.jpg",
		},
		Credential: creds.Credential{SessionToken: "session", CSRFToken: "csrf"},
		Line:       "upos-fs-gcs-bse.bilibili.com",
	}
}

func TestNewToolClientRequiresCommand(t *testing.T) {
	if _, err := NewToolClient(nil); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
	if _, err := NewToolClient([]string{"  "}); !errors.Is(err, services.ErrConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}

func TestNewSessionRequiresAssets(t *testing.T) {
	client, err := NewToolClient([]string{"uploader"})
	if err != nil {
		t.Fatalf("NewToolClient: %v", err)
	}
	req := toolRequest()
	req.Assets = nil
	if _, err := client.NewSession(context.Background(), req); !errors.Is(err, services.ErrValidation) {
		t.Fatalf("err = %v, want validation error", err)
	}
}

func TestToolSessionBuildsUploaderArgs(t *testing.T) {
	var capturedArgs []string
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		capturedArgs = append([]string(nil), args...)
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestUploaderHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "UPLOADER_HELPER_MODE=success")
		return cmd
	}
	t.Cleanup(func() { commandContext = original })

	client, err := NewToolClient([]string{"uploader", "upload"})
	if err != nil {
		t.Fatalf("NewToolClient: %v", err)
	}
	if _, err := drainSession(t, client, toolRequest()); err != nil {
		t.Fatalf("session: %v", err)
	}

	wantPairs := map[string]string{
		"--line":  "upos-fs-gcs-bse.bilibili.com",
		"--zone":  "17",
		"--title": "Episode One",
		"--tags":  "travel,food",
		"--cover": "/staging/cover.jpg",
	}
	for flag, want := range wantPairs {
		idx := findArg(capturedArgs, flag)
		if idx == -1 || idx+1 >= len(capturedArgs) {
			t.Fatalf("args %v missing %s", capturedArgs, flag)
		}
		if capturedArgs[idx+1] != want {
			t.Errorf("%s = %q, want %q", flag, capturedArgs[idx+1], want)
		}
	}
	if capturedArgs[0] != "upload" {
		t.Errorf("args[0] = %q, want the configured subcommand first", capturedArgs[0])
	}
	if findArg(capturedArgs, "/staging/episode.mp4") == -1 {
		t.Errorf("args %v missing the video path", capturedArgs)
	}
	if findArg(capturedArgs, "/staging/cover.jpg") == -1 {
		t.Errorf("args %v missing the cover path", capturedArgs)
	}
}

func TestToolSessionRelaysLifecycleEvents(t *testing.T) {
	setUploaderHelper(t, "success")

	client, _ := NewToolClient([]string{"uploader"})
	events, err := drainSession(t, client, toolRequest())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("got %d events, want 3: %v", len(events), events)
	}
	last := events[len(events)-1]
	if last.Kind != EventComplete || last.Result == nil {
		t.Fatalf("final event = %+v, want COMPLETE with result", last)
	}
	if last.Result.RemoteMediaID != "av1234" || last.Result.RemoteRef != "BV1xx" {
		t.Errorf("result = %+v", last.Result)
	}
}

func TestToolSessionReportsExitFailure(t *testing.T) {
	setUploaderHelper(t, "failure")

	client, _ := NewToolClient([]string{"uploader"})
	if _, err := drainSession(t, client, toolRequest()); err == nil {
		t.Fatal("expected transport error for non-zero exit")
	}
}

func TestToolSessionSkipsInvalidJSONLines(t *testing.T) {
	setUploaderHelper(t, "badjson")

	client, _ := NewToolClient([]string{"uploader"})
	events, err := drainSession(t, client, toolRequest())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if len(events) != 1 || events[0].Kind != EventComplete {
		t.Fatalf("events = %v, want single COMPLETE", events)
	}
}

func drainSession(t *testing.T, client Client, req Request) ([]Event, error) {
	t.Helper()
	session, err := client.NewSession(context.Background(), req)
	if err != nil {
		return nil, err
	}
	startErr := make(chan error, 1)
	go func() {
		startErr <- session.Start(context.Background())
	}()
	var events []Event
	for event := range session.Events() {
		events = append(events, event)
	}
	return events, <-startErr
}

func setUploaderHelper(t *testing.T, mode string) {
	t.Helper()
	original := commandContext
	commandContext = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestUploaderHelperProcess")
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", fmt.Sprintf("UPLOADER_HELPER_MODE=%s", mode))
		return cmd
	}
	t.Cleanup(func() { commandContext = original })
}

func TestUploaderHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	switch os.Getenv("UPLOADER_HELPER_MODE") {
	case "success":
		fmt.Println(`{"event":"QUEUED"}`)
		fmt.Println(`{"event":"TRANSFERRING","detail":"chunk 1/3"}`)
		fmt.Println(`{"event":"COMPLETE","media_id":"av1234","remote_ref":"BV1xx"}`)
		os.Exit(0)
	case "failure":
		fmt.Fprintln(os.Stderr, "upload failed")
		os.Exit(1)
	case "badjson":
		fmt.Println("not-json")
		fmt.Println(`{"event":"COMPLETE","media_id":"av1"}`)
		os.Exit(0)
	default:
		os.Exit(0)
	}
}

func findArg(args []string, target string) int {
	for i, arg := range args {
		if arg == target {
			return i
		}
	}
	return -1
}
