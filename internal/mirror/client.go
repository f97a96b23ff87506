// Package mirror talks to the GitHub contents API to read and write the
// single database blob that backs the service across redeploys.
package mirror

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/favhome/deliveries/internal/logger"
	"go.uber.org/zap"
)

const (
	fetchTimeout = 15 * time.Second
	putTimeout   = 20 * time.Second
)

// RemoteFile is the mirror's view of the tracked blob. CommitTime is nil when
// the commit-history lookup fails; callers fall back to a content digest
// comparison in that case.
type RemoteFile struct {
	Content    []byte
	SHA        string
	CommitTime *time.Time
}

type ClientInterface interface {
	Enabled() bool
	Fetch(ctx context.Context) (*RemoteFile, bool, error)
	Put(ctx context.Context, path string, content []byte, message, sha string) error
}

type Client struct {
	apiBase    string
	repo       string
	path       string
	token      string
	httpClient *http.Client
}

// NewClient builds a client for owner/repo and the tracked path. An empty
// token or repo produces a disabled client; every call then reports not found.
func NewClient(apiBase, repo, path, token string) *Client {
	return &Client{
		apiBase:    apiBase,
		repo:       repo,
		path:       path,
		token:      token,
		httpClient: &http.Client{Timeout: putTimeout},
	}
}

func (c *Client) Enabled() bool {
	return c.token != "" && c.repo != ""
}

func (c *Client) contentsURL(path string) string {
	return fmt.Sprintf("%s/repos/%s/contents/%s", c.apiBase, c.repo, path)
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// Fetch reads the tracked blob and its latest commit timestamp. A missing
// remote file or missing configuration yields found=false and no error.
func (c *Client) Fetch(ctx context.Context) (*RemoteFile, bool, error) {
	if !c.Enabled() {
		return nil, false, nil
	}

	fetchCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, c.contentsURL(c.path), nil)
	if err != nil {
		return nil, false, err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("unexpected status fetching remote file: %d", resp.StatusCode)
	}

	var body struct {
		Content string `json:"content"`
		SHA     string `json:"sha"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, false, err
	}

	content, err := base64.StdEncoding.DecodeString(body.Content)
	if err != nil {
		return nil, false, fmt.Errorf("failed to decode remote content: %w", err)
	}

	file := &RemoteFile{
		Content:    content,
		SHA:        body.SHA,
		CommitTime: c.latestCommitTime(ctx),
	}
	return file, true, nil
}

// latestCommitTime asks the commit history for the newest commit touching the
// tracked path. Best-effort only.
func (c *Client) latestCommitTime(ctx context.Context) *time.Time {
	commitCtx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/repos/%s/commits?path=%s&per_page=1", c.apiBase, c.repo, c.path)
	req, err := http.NewRequestWithContext(commitCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Log.Warn("commit lookup failed", zap.Error(err))
		return nil
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var commits []struct {
		Commit struct {
			Committer struct {
				Date time.Time `json:"date"`
			} `json:"committer"`
		} `json:"commit"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&commits); err != nil || len(commits) == 0 {
		return nil
	}
	return &commits[0].Commit.Committer.Date
}

// Put creates or updates a file in the repository. A non-empty sha requests
// an update of that revision; a stale sha makes GitHub reject the write,
// which surfaces here as an error and is never retried by the caller.
func (c *Client) Put(ctx context.Context, path string, content []byte, message, sha string) error {
	if !c.Enabled() {
		return fmt.Errorf("upload disabled: missing token or repo")
	}

	payload := map[string]string{
		"message": message,
		"content": base64.StdEncoding.EncodeToString(content),
	}
	if sha != "" {
		payload["sha"] = sha
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	putCtx, cancel := context.WithTimeout(ctx, putTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(putCtx, http.MethodPut, c.contentsURL(path), bytes.NewReader(body))
	if err != nil {
		return err
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer closeBody(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 400))
		return fmt.Errorf("github returned %d: %s", resp.StatusCode, msg)
	}
	return nil
}

func closeBody(body io.ReadCloser) {
	if err := body.Close(); err != nil {
		logger.Log.Error("failed to close response body", zap.Error(err))
	}
}
