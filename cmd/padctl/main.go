// Command padctl is an operator tool for a running minepad server. It talks
// to the REST API to hand out pairing codes, inspect active controller
// sessions, and kick misbehaving pads.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:  "padctl",
		Usage: "Manage controller sessions on a minepad server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Value:   "http://localhost:8080",
				Usage:   "Base URL of the minepad interface server",
				Sources: cli.EnvVars("MINEPAD_SERVER"),
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Value: 5 * time.Second,
				Usage: "HTTP request timeout",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "join",
				Usage:     "Create a controller session for a player and print the pairing code",
				ArgsUsage: "<player-uuid>",
				Action:    cmdJoin,
			},
			{
				Name:      "quit",
				Usage:     "Remove a player and their controller session",
				ArgsUsage: "<player-uuid>",
				Action:    cmdQuit,
			},
			{
				Name:   "sessions",
				Usage:  "List active controller sessions",
				Action: cmdSessions,
			},
			{
				Name:      "kick",
				Usage:     "Remove the session holding a pairing code",
				ArgsUsage: "<code>",
				Action:    cmdKick,
			},
			{
				Name:   "health",
				Usage:  "Check whether the server is up",
				Action: cmdHealth,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newClient(cmd *cli.Command) *apiClient {
	return &apiClient{
		base: cmd.String("server"),
		http: &http.Client{Timeout: cmd.Duration("timeout")},
	}
}

func playerArg(cmd *cli.Command) (uuid.UUID, error) {
	raw := cmd.Args().First()
	if raw == "" {
		return uuid.Nil, fmt.Errorf("a player UUID is required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid player UUID %q: %w", raw, err)
	}
	return id, nil
}

func cmdJoin(ctx context.Context, cmd *cli.Command) error {
	id, err := playerArg(cmd)
	if err != nil {
		return err
	}

	result, err := newClient(cmd).Join(ctx, id)
	if err != nil {
		return err
	}
	if result.Existed {
		fmt.Printf("Player %s already has a session\n", id)
	}
	fmt.Printf("Code: %s\n", result.Code)
	fmt.Printf("URL:  %s\n", result.URL)
	return nil
}

func cmdQuit(ctx context.Context, cmd *cli.Command) error {
	id, err := playerArg(cmd)
	if err != nil {
		return err
	}
	if err := newClient(cmd).Quit(ctx, id); err != nil {
		return err
	}
	fmt.Printf("Player %s removed\n", id)
	return nil
}

func cmdSessions(ctx context.Context, cmd *cli.Command) error {
	listing, err := newClient(cmd).Sessions(ctx)
	if err != nil {
		return err
	}
	if listing.Count == 0 {
		fmt.Println("No active sessions")
		return nil
	}
	fmt.Printf("%-36s  %-8s  %s\n", "PLAYER", "CODE", "CONNECTED")
	for _, s := range listing.Sessions {
		fmt.Printf("%-36s  %-8s  %t\n", s.Player, s.Code, s.Connected)
	}
	return nil
}

func cmdKick(ctx context.Context, cmd *cli.Command) error {
	code := cmd.Args().First()
	if code == "" {
		return fmt.Errorf("a pairing code is required")
	}
	if err := newClient(cmd).RemoveSession(ctx, code); err != nil {
		return err
	}
	fmt.Printf("Session %s removed\n", code)
	return nil
}

func cmdHealth(ctx context.Context, cmd *cli.Command) error {
	if err := newClient(cmd).Health(ctx); err != nil {
		return err
	}
	fmt.Println("Server is healthy")
	return nil
}

// apiClient is a thin wrapper over the minepad REST API.
type apiClient struct {
	base string
	http *http.Client
}

// JoinResult mirrors the server's join response.
type JoinResult struct {
	Player  uuid.UUID `json:"player"`
	Code    string    `json:"code"`
	URL     string    `json:"url"`
	Existed bool      `json:"existed"`
}

// SessionInfo mirrors one entry of the server's session listing.
type SessionInfo struct {
	Player    uuid.UUID `json:"player"`
	Code      string    `json:"code"`
	Connected bool      `json:"connected"`
}

// SessionListing mirrors the server's session listing response.
type SessionListing struct {
	Count    int           `json:"count"`
	Sessions []SessionInfo `json:"sessions"`
}

func (c *apiClient) Join(ctx context.Context, player uuid.UUID) (JoinResult, error) {
	var result JoinResult
	err := c.do(ctx, http.MethodPost, "/api/players/"+player.String(), &result)
	return result, err
}

func (c *apiClient) Quit(ctx context.Context, player uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/players/"+player.String(), nil)
}

func (c *apiClient) Sessions(ctx context.Context) (SessionListing, error) {
	var listing SessionListing
	err := c.do(ctx, http.MethodGet, "/api/sessions", &listing)
	return listing, err
}

func (c *apiClient) RemoveSession(ctx context.Context, code string) error {
	return c.do(ctx, http.MethodDelete, "/api/sessions/"+url.PathEscape(code), nil)
}

func (c *apiClient) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/api/health", nil)
}

func (c *apiClient) do(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server returned %d: %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
