// Package moodle is a REST client for the Moodle web service API. The rest
// of the system treats it as an opaque producer of course files.
package moodle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"time"

	"github.com/sandevgo/campusrag/internal/config"
	"github.com/sandevgo/campusrag/internal/core"
	"github.com/sandevgo/campusrag/pkg/log"
	"github.com/sandevgo/campusrag/pkg/retry"
)

type Course struct {
	ID        int    `json:"id"`
	ShortName string `json:"shortname"`
	FullName  string `json:"fullname"`
}

type Content struct {
	Type     string `json:"type"`
	Filename string `json:"filename"`
	FileURL  string `json:"fileurl"`
}

type Module struct {
	Name     string    `json:"name"`
	ModName  string    `json:"modname"`
	Contents []Content `json:"contents"`
}

type Section struct {
	Name    string   `json:"name"`
	Modules []Module `json:"modules"`
}

type Client struct {
	baseURL string
	token   string
	client  *http.Client
	retrier *retry.Retrier
}

func NewClient(cfg *config.MoodleConfig) *Client {
	return &Client{
		baseURL: cfg.URL,
		token:   cfg.Token,
		client:  &http.Client{Timeout: 30 * time.Second},
		retrier: retry.NewDefaultRetrier(),
	}
}

func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.callWS(ctx, "core_course_get_courses", nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) CourseContents(ctx context.Context, courseID int) ([]Section, error) {
	params := url.Values{"courseid": {fmt.Sprint(courseID)}}
	var sections []Section
	if err := c.callWS(ctx, "core_course_get_contents", params, &sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// DownloadFile fetches a course file by its webservice URL and returns the
// raw bytes plus a best-effort content type. When the server reports
// nothing useful the type is guessed from the filename extension.
// Transient failures are retried with backoff.
func (c *Client) DownloadFile(ctx context.Context, fileURL, filename string) ([]byte, string, error) {
	log.FromCtx(ctx).Debug().Str("file", filename).Msg("downloading file")

	var body []byte
	var contentType string

	err := c.retrier.Do(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL+"&token="+c.token, nil)
		if err != nil {
			return err
		}
		req.Header.Set("User-Agent", core.AppUserAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("http %d", resp.StatusCode)
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			return err
		}
		contentType = resp.Header.Get("Content-Type")
		return nil
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: download %s: %v", core.ErrSourceDocument, filename, err)
	}

	if contentType == "" || contentType == "application/octet-stream" {
		if guessed := mime.TypeByExtension(filepath.Ext(filename)); guessed != "" {
			contentType = guessed
		} else {
			contentType = "application/octet-stream"
		}
	}
	return body, contentType, nil
}

// callWS issues one web service function call. Moodle reports its own
// failures inside a 200 response, so the payload is probed for an
// exception envelope before decoding the real result.
func (c *Client) callWS(ctx context.Context, function string, params url.Values, out any) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	q := url.Values{
		"wstoken":            {c.token},
		"wsfunction":         {function},
		"moodlewsrestformat": {"json"},
	}
	for k, vs := range params {
		for _, v := range vs {
			q.Add(k, v)
		}
	}

	reqURL := c.baseURL + "/webservice/rest/server.php?" + q.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", core.ErrSourceDocument, function, err)
	}
	req.Header.Set("User-Agent", core.AppUserAgent)

	log.FromCtx(ctx).Debug().Str("function", function).Msg("calling moodle")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", core.ErrSourceDocument, function, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s: http %d", core.ErrSourceDocument, function, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", core.ErrSourceDocument, function, err)
	}

	var probe struct {
		Exception string `json:"exception"`
		Message   string `json:"message"`
	}
	if err := json.Unmarshal(data, &probe); err == nil && probe.Exception != "" {
		return fmt.Errorf("%w: %s: %s", core.ErrSourceDocument, function, probe.Message)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", core.ErrSourceDocument, function, err)
	}
	return nil
}
