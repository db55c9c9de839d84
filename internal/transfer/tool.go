package transfer

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"stagecast/internal/media"
	"stagecast/internal/services"
)

var commandContext = exec.CommandContext

// toolEvent is one JSON line emitted by the uploader tool on stdout.
type toolEvent struct {
	Event     string `json:"event"`
	Detail    string `json:"detail"`
	MediaID   string `json:"media_id"`
	RemoteRef string `json:"remote_ref"`
}

// ToolClient opens sessions by running an external uploader command. The
// tool owns the chunked transfer protocol; this client only relays its
// lifecycle events.
type ToolClient struct {
	command []string
}

// NewToolClient validates the configured uploader command.
func NewToolClient(command []string) (*ToolClient, error) {
	if len(command) == 0 || strings.TrimSpace(command[0]) == "" {
		return nil, services.Wrap(services.ErrConfiguration, "transfer", "uploader command",
			"transfer.command must name the uploader tool", nil)
	}
	return &ToolClient{command: command}, nil
}

// NewSession prepares one uploader invocation. The process starts when
// Session.Start is called.
func (c *ToolClient) NewSession(_ context.Context, req Request) (Session, error) {
	if len(req.Assets) == 0 {
		return nil, services.Wrap(services.ErrValidation, "transfer", "new session",
			"no assets to transfer", nil)
	}
	return &toolSession{
		binary: c.command[0],
		args:   buildToolArgs(c.command[1:], req),
		req:    req,
		events: make(chan Event, 16),
	}, nil
}

var _ Client = (*ToolClient)(nil)

type toolSession struct {
	binary string
	args   []string
	req    Request
	events chan Event
}

func (s *toolSession) Events() <-chan Event { return s.events }

// Start runs the uploader to completion, relaying its JSON event lines.
// Credentials travel through the environment, never argv.
func (s *toolSession) Start(ctx context.Context) error {
	defer close(s.events)

	cmd := commandContext(ctx, s.binary, s.args...) //nolint:gosec
	env := cmd.Env
	if env == nil {
		env = os.Environ()
	}
	cmd.Env = append(env,
		"STAGECAST_SESSION_TOKEN="+s.req.Credential.SessionToken,
		"STAGECAST_CSRF_TOKEN="+s.req.Credential.CSRFToken,
		"STAGECAST_DEVICE_ID="+s.req.Credential.DeviceID,
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	cmd.Stderr = cmd.Stdout
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start uploader: %w", err)
	}

	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		var payload toolEvent
		if err := json.Unmarshal(scanner.Bytes(), &payload); err != nil {
			continue
		}
		event := Event{Kind: EventKind(strings.ToUpper(payload.Event)), Detail: payload.Detail}
		if event.Kind == EventComplete {
			event.Result = &Result{RemoteMediaID: payload.MediaID, RemoteRef: payload.RemoteRef}
		}
		s.events <- event
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read uploader output: %w", err)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("uploader exited: %w", err)
	}
	return nil
}

func buildToolArgs(base []string, req Request) []string {
	args := append([]string{}, base...)
	args = append(args, "--line", req.Line)
	args = append(args, "--zone", strconv.Itoa(req.Meta.ZoneID))
	args = append(args, "--title", req.Meta.Title)
	if len(req.Meta.Tags) > 0 {
		args = append(args, "--tags", strings.Join(req.Meta.Tags, ","))
	}
	if req.Meta.Description != "" {
		args = append(args, "--desc", req.Meta.Description)
	}
	if req.Meta.CoverRef != "" {
		args = append(args, "--cover", req.Meta.CoverRef)
	}
	if req.Meta.DisallowReprint {
		args = append(args, "--no-reprint")
	}
	if req.Meta.SourceAttribution != "" {
		args = append(args, "--source", req.Meta.SourceAttribution)
	}
	for _, asset := range req.Assets {
		if asset.Role == media.RolePrimaryVideo {
			args = append(args, asset.Path)
		}
	}
	return args
}
