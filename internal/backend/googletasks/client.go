// Package googletasks implements task.Persistence on top of the Google
// Tasks API.
//
// The local list is mirrored into a Google task list whose title is the
// snapshot key. Each remote task carries the local id in its notes so ids
// survive a round trip.
package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"todo/internal/config"
	"todo/internal/task"
)

const (
	// PageSize is the number of items requested per page.
	PageSize = 100

	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// StatusCompleted and StatusNeedsAction are the Google task states.
	StatusCompleted   = "completed"
	StatusNeedsAction = "needsAction"

	// notesPrefix marks the local id in a remote task's notes.
	notesPrefix = "todo-id: "
)

// ErrUnauthorized is returned when Google rejects the stored token.
var ErrUnauthorized = errors.New("token expired or revoked (run: todo login)")

// Client implements task.Persistence using Google Tasks.
type Client struct {
	svc    *tasks.Service
	title  string
	logger *slog.Logger
}

// New creates a Google Tasks client for the list titled cfg.Key.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	// Token source refreshes the access token as needed.
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}
	return &Client{svc: svc, title: cfg.Key, logger: cfg.Log()}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and API
// endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint, title string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, title: title, logger: slog.New(slog.DiscardHandler)}, nil
}

// Load implements task.Persistence. A missing remote list loads as an
// empty task list.
func (c *Client) Load(ctx context.Context) (task.List, error) {
	listID, err := c.findList(ctx)
	if err != nil {
		return nil, err
	}
	if listID == "" {
		c.logger.Debug("remote list not found, starting empty", "title", c.title)
		return task.List{}, nil
	}

	remote, err := c.listTasks(ctx, listID)
	if err != nil {
		return nil, err
	}

	result := make(task.List, 0, len(remote))
	seen := make(map[string]bool, len(remote))
	for _, rt := range remote {
		t, ok := fromRemote(rt)
		if !ok || seen[t.ID] {
			c.logger.Warn("skipping remote task", "remote_id", rt.Id, "title", rt.Title)
			continue
		}
		seen[t.ID] = true
		result = append(result, t)
	}
	return result, nil
}

// Save implements task.Persistence. The remote list is emptied and
// refilled so that it matches l exactly.
func (c *Client) Save(ctx context.Context, l task.List) error {
	listID, err := c.ensureList(ctx)
	if err != nil {
		return err
	}

	existing, err := c.listTasks(ctx, listID)
	if err != nil {
		return err
	}
	for _, rt := range existing {
		if err := c.deleteTask(ctx, listID, rt.Id); err != nil {
			return err
		}
	}

	// Inserting without a previous sibling places a task first, so insert
	// from the back to end up in list order.
	for i := len(l) - 1; i >= 0; i-- {
		if err := c.insertTask(ctx, listID, toRemote(l[i])); err != nil {
			return err
		}
	}
	c.logger.Debug("remote list replaced", "title", c.title, "deleted", len(existing), "inserted", len(l))
	return nil
}

// findList returns the id of the list titled c.title, or "" if none.
func (c *Client) findList(ctx context.Context) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var found string
	err := c.svc.Tasklists.List().MaxResults(PageSize).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if found == "" && list.Title == c.title {
				found = list.Id
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}
	return found, nil
}

// ensureList returns the id of the list titled c.title, creating it if
// it does not exist.
func (c *Client) ensureList(ctx context.Context) (string, error) {
	id, err := c.findList(ctx)
	if err != nil || id != "" {
		return id, err
	}

	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	created, err := c.svc.Tasklists.Insert(&tasks.TaskList{Title: c.title}).Context(ctx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	c.logger.Debug("remote list created", "title", c.title, "id", created.Id)
	return created.Id, nil
}

// listTasks returns every task in the list, completed and hidden
// included, in position order.
func (c *Client) listTasks(ctx context.Context, listID string) ([]*tasks.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	var result []*tasks.Task
	err := c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			result = append(result, resp.Items...)
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Position < result[j].Position
	})
	return result, nil
}

func (c *Client) insertTask(ctx context.Context, listID string, t *tasks.Task) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if _, err := c.svc.Tasks.Insert(listID, t).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

func (c *Client) deleteTask(ctx context.Context, listID, taskID string) error {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	if err := c.svc.Tasks.Delete(listID, taskID).Context(ctx).Do(); err != nil {
		return wrapError(err)
	}
	return nil
}

// toRemote converts a local task into an insertable Google task.
func toRemote(t task.Task) *tasks.Task {
	status := StatusNeedsAction
	if t.Done {
		status = StatusCompleted
	}
	return &tasks.Task{
		Title:  t.Text,
		Notes:  notesPrefix + t.ID,
		Status: status,
	}
}

// fromRemote converts a Google task. Tasks created elsewhere keep their
// Google id. Blank titles are rejected.
func fromRemote(rt *tasks.Task) (task.Task, bool) {
	text := task.NormalizeText(rt.Title)
	if text == "" {
		return task.Task{}, false
	}
	id := rt.Id
	if strings.HasPrefix(rt.Notes, notesPrefix) {
		if local := strings.TrimSpace(strings.TrimPrefix(rt.Notes, notesPrefix)); local != "" {
			id = local
		}
	}
	if id == "" {
		return task.Task{}, false
	}
	return task.Task{ID: id, Text: text, Done: rt.Status == StatusCompleted}, true
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusUnauthorized, http.StatusForbidden:
			return ErrUnauthorized
		case http.StatusNotFound:
			return fmt.Errorf("not found")
		}
	}
	return err
}
