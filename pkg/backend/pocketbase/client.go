// Package pocketbase reads and writes appointments through the PocketBase
// records API.
package pocketbase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"tableflip.dev/clinic/pkg/appointment"
	"tableflip.dev/clinic/pkg/backend"
)

const (
	// Collection is the appointments collection name.
	Collection = "appointments"
	// DefaultPerPage is the page size used when none is configured.
	DefaultPerPage = 100

	superusersAuth  = "/api/collections/_superusers/auth-with-password"
	requestIDHeader = "X-Request-Id"
)

// ResponseError is a non-2xx answer from the server.
type ResponseError struct {
	Status  int
	Message string
	Method  string
	Path    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("pocketbase: %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

// Client talks to one PocketBase instance. It implements backend.Source.
type Client struct {
	BaseURL string
	Token   string
	PerPage int
	HTTP    *http.Client
	Log     zerolog.Logger
}

var _ backend.Source = (*Client)(nil)

// New returns a client for baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		PerPage: DefaultPerPage,
		HTTP:    &http.Client{Timeout: timeout},
		Log:     log,
	}
}

type authResponse struct {
	Token string `json:"token"`
}

// Login authenticates as a superuser and keeps the token for later calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body := map[string]string{"identity": email, "password": password}
	var out authResponse
	if err := c.do(ctx, http.MethodPost, superusersAuth, nil, body, &out); err != nil {
		return fmt.Errorf("pocketbase: login: %w", err)
	}
	if out.Token == "" {
		return errors.New("pocketbase: login: empty token")
	}
	c.Token = out.Token
	return nil
}

// record is the wire shape of an appointments row.
type record struct {
	ID       string             `json:"id"`
	Date     string             `json:"date"`
	Duration int                `json:"duration"`
	Type     string             `json:"type"`
	Status   appointment.Status `json:"status"`
	Notes    string             `json:"notes"`
	Patient  string             `json:"patient"`
	Expand   struct {
		Patient *appointment.Patient `json:"patient"`
	} `json:"expand"`
}

func (r record) toAppointment() appointment.Record {
	out := appointment.Record{
		ID:        r.ID,
		Date:      r.Date,
		Duration:  r.Duration,
		Type:      r.Type,
		Status:    r.Status,
		Notes:     r.Notes,
		PatientID: r.Patient,
		Patient:   r.Expand.Patient,
	}
	if out.Patient != nil && out.Patient.ID == "" {
		out.Patient.ID = r.Patient
	}
	return out
}

type listResponse struct {
	Page       int      `json:"page"`
	PerPage    int      `json:"perPage"`
	TotalPages int      `json:"totalPages"`
	TotalItems int      `json:"totalItems"`
	Items      []record `json:"items"`
}

func recordsPath() string {
	return "/api/collections/" + Collection + "/records"
}

// List pages through the whole collection newest first.
func (c *Client) List(ctx context.Context) (backend.Page, error) {
	perPage := c.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	all := backend.Page{Items: []appointment.Record{}, Page: 1, PerPage: perPage}
	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("perPage", strconv.Itoa(perPage))
		q.Set("sort", "-date")
		q.Set("expand", "patient")

		var resp listResponse
		if err := c.do(ctx, http.MethodGet, recordsPath(), q, nil, &resp); err != nil {
			return backend.Page{}, fmt.Errorf("pocketbase: list page %d: %w", page, err)
		}
		for _, r := range resp.Items {
			all.Items = append(all.Items, r.toAppointment())
		}
		all.TotalPages = resp.TotalPages
		all.TotalItems = resp.TotalItems
		if page >= resp.TotalPages || len(resp.Items) == 0 {
			break
		}
	}
	c.Log.Debug().Int("items", len(all.Items)).Int("pages", all.TotalPages).Msg("listed appointments")
	return all, nil
}

// UpdateStatus patches the status field.
func (c *Client) UpdateStatus(ctx context.Context, id string, status appointment.Status) (appointment.Record, error) {
	if id == "" {
		return appointment.Record{}, errors.New("pocketbase: update status: empty id")
	}
	q := url.Values{"expand": []string{"patient"}}
	var out record
	body := map[string]appointment.Status{"status": status}
	if err := c.do(ctx, http.MethodPatch, recordsPath()+"/"+url.PathEscape(id), q, body, &out); err != nil {
		var re *ResponseError
		if errors.As(err, &re) && re.Status == http.StatusNotFound {
			return appointment.Record{}, fmt.Errorf("%w: %s", backend.ErrNotFound, id)
		}
		return appointment.Record{}, fmt.Errorf("pocketbase: update status: %w", err)
	}
	return out.toAppointment(), nil
}

type createBody struct {
	Date     string             `json:"date"`
	Duration int                `json:"duration,omitempty"`
	Type     string             `json:"type,omitempty"`
	Status   appointment.Status `json:"status"`
	Notes    string             `json:"notes,omitempty"`
	Patient  string             `json:"patient,omitempty"`
}

// Create inserts a new appointment. The server assigns the id.
func (c *Client) Create(ctx context.Context, r appointment.Record) (appointment.Record, error) {
	patient := r.PatientID
	if patient == "" && r.Patient != nil {
		patient = r.Patient.ID
	}
	body := createBody{
		Date:     r.Date,
		Duration: r.Duration,
		Type:     r.Type,
		Status:   r.Status,
		Notes:    r.Notes,
		Patient:  patient,
	}
	q := url.Values{"expand": []string{"patient"}}
	var out record
	if err := c.do(ctx, http.MethodPost, recordsPath(), q, body, &out); err != nil {
		return appointment.Record{}, fmt.Errorf("pocketbase: create: %w", err)
	}
	return out.toAppointment(), nil
}

type errorBody struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, q url.Values, in, out interface{}) error {
	u := c.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode body: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return err
	}
	reqID := uuid.NewString()
	req.Header.Set(requestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", c.Token)
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	start := time.Now()
	resp, err := httpClient.Do(req)
	if err != nil {
		c.Log.Warn().Err(err).Str("method", method).Str("path", path).Str("request_id", reqID).Msg("request failed")
		return err
	}
	defer resp.Body.Close()

	c.Log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Str("request_id", reqID).
		Msg("pocketbase request")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(data, &eb)
		if eb.Message == "" {
			eb.Message = http.StatusText(resp.StatusCode)
		}
		return &ResponseError{Status: resp.StatusCode, Message: eb.Message, Method: method, Path: path}
	}
	if out == nil || len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
