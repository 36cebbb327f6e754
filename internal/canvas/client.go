// Package canvas fetches upcoming course assignments from the Canvas API.
package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

var ErrUnavailable = errors.New("canvas unavailable")

// Assignment is one upcoming piece of coursework.
type Assignment struct {
	Name       string `json:"name"`
	DateDue    string `json:"date_due"` // YYYY-MM-DD
	TimeDue    string `json:"time_due"` // HH:MM
	CanvasLink string `json:"canvas_link"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// Now is swappable so the 7-day window can be pinned in tests.
	Now func() time.Time
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL:    baseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Now:        time.Now,
	}
}

type course struct {
	ID int `json:"id"`
}

type rawAssignment struct {
	Name    string `json:"name"`
	DueAt   string `json:"due_at"`
	HTMLURL string `json:"html_url"`
}

// Assignments returns the user's assignments due within the next 7 days.
// Courses the token cannot read are skipped, not fatal.
func (c *Client) Assignments(ctx context.Context, token string) ([]Assignment, error) {
	courses, err := c.courses(ctx, token)
	if err != nil {
		return nil, err
	}

	now := c.Now().UTC()
	end := now.Add(7 * 24 * time.Hour)

	var assignments []Assignment
	for _, crs := range courses {
		raw, err := c.courseAssignments(ctx, token, crs.ID)
		if err != nil {
			logrus.WithError(err).WithField("course_id", crs.ID).
				Warn("skipping course assignments")
			continue
		}

		for _, a := range raw {
			if a.DueAt == "" {
				continue
			}
			due, err := time.Parse(time.RFC3339, a.DueAt)
			if err != nil {
				continue
			}
			due = due.UTC()
			if due.Before(now) || due.After(end) {
				continue
			}

			name := a.Name
			if name == "" {
				name = "Unnamed Assignment"
			}
			assignments = append(assignments, Assignment{
				Name:       name,
				DateDue:    due.Format("2006-01-02"),
				TimeDue:    due.Format("15:04"),
				CanvasLink: a.HTMLURL,
			})
		}
	}
	return assignments, nil
}

func (c *Client) courses(ctx context.Context, token string) ([]course, error) {
	var courses []course
	url := c.BaseURL + "/courses?enrollment_state=active&per_page=100"
	if err := c.getJSON(ctx, token, url, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (c *Client) courseAssignments(ctx context.Context, token string, courseID int) ([]rawAssignment, error) {
	var raw []rawAssignment
	url := fmt.Sprintf("%s/courses/%d/assignments?bucket=upcoming&per_page=50", c.BaseURL, courseID)
	if err := c.getJSON(ctx, token, url, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func (c *Client) getJSON(ctx context.Context, token, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnavailable, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	return nil
}
