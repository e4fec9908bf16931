// Package hr wraps the external HR directory API. The list endpoint is
// paginated and filterable by updated_at for incremental sync; the detail
// endpoint exposes the custom fields that carry the Slack handle.
package hr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const maxPages = 50

type Client struct {
	baseURL    string
	token      string
	pageSize   int
	httpClient *http.Client
}

type EmployeeRow struct {
	Code        string
	DisplayName string
	HireDate    *time.Time
	BirthDate   *time.Time
	RetiredAt   *time.Time
	UpdatedAt   time.Time
}

type CustomField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type EmployeeDetail struct {
	Code         string
	CustomFields []CustomField
}

// CustomFieldValue matches the configured field name case-insensitively.
func (d EmployeeDetail) CustomFieldValue(name string) string {
	for _, f := range d.CustomFields {
		if strings.EqualFold(strings.TrimSpace(f.Name), strings.TrimSpace(name)) {
			return strings.TrimSpace(f.Value)
		}
	}
	return ""
}

type listEmployeesResponse struct {
	Employees []employeePayload `json:"employees"`
	Page      int               `json:"page"`
	TotalPage int               `json:"total_pages"`
}

type employeePayload struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
	HireDate    string `json:"hire_date"`
	BirthDate   string `json:"birth_date"`
	RetiredAt   string `json:"retired_at"`
	UpdatedAt   string `json:"updated_at"`
}

type employeeDetailResponse struct {
	Code         string        `json:"code"`
	CustomFields []CustomField `json:"custom_fields"`
}

func NewClient(baseURL, token string, pageSize int) *Client {
	if pageSize <= 0 {
		pageSize = 100
	}
	return &Client{
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		token:    strings.TrimSpace(token),
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ListEmployeesUpdatedSince walks the paginated list endpoint until the last
// page, returning every row with updated_at strictly after since.
func (c *Client) ListEmployeesUpdatedSince(ctx context.Context, since time.Time) ([]EmployeeRow, error) {
	rows := make([]EmployeeRow, 0)

	for page := 1; page <= maxPages; page++ {
		parsed, err := c.listPage(ctx, since, page)
		if err != nil {
			return nil, err
		}

		for _, payload := range parsed.Employees {
			row, err := payload.toRow()
			if err != nil {
				return nil, fmt.Errorf("employee %s: %w", payload.Code, err)
			}
			rows = append(rows, row)
		}

		if parsed.TotalPage == 0 || parsed.Page >= parsed.TotalPage {
			break
		}
	}

	return rows, nil
}

func (c *Client) listPage(ctx context.Context, since time.Time, page int) (listEmployeesResponse, error) {
	endpoint := c.baseURL + "/v1/employees"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return listEmployeesResponse{}, fmt.Errorf("build employees request: %w", err)
	}

	q := url.Values{}
	q.Set("updated_since", since.UTC().Format(time.RFC3339))
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(c.pageSize))
	req.URL.RawQuery = q.Encode()
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return listEmployeesResponse{}, fmt.Errorf("call hr employees list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return listEmployeesResponse{}, fmt.Errorf("hr api error: employees list returned %d", resp.StatusCode)
	}

	var parsed listEmployeesResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return listEmployeesResponse{}, fmt.Errorf("decode employees list response: %w", err)
	}

	return parsed, nil
}

func (c *Client) GetEmployeeDetail(ctx context.Context, code string) (EmployeeDetail, error) {
	endpoint := c.baseURL + "/v1/employees/" + url.PathEscape(code)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return EmployeeDetail{}, fmt.Errorf("build employee detail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return EmployeeDetail{}, fmt.Errorf("call hr employee detail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return EmployeeDetail{}, fmt.Errorf("hr api error: employee detail returned %d", resp.StatusCode)
	}

	var parsed employeeDetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return EmployeeDetail{}, fmt.Errorf("decode employee detail response: %w", err)
	}

	return EmployeeDetail{Code: parsed.Code, CustomFields: parsed.CustomFields}, nil
}

func (p employeePayload) toRow() (EmployeeRow, error) {
	updatedAt, err := time.Parse(time.RFC3339, p.UpdatedAt)
	if err != nil {
		return EmployeeRow{}, fmt.Errorf("invalid updated_at %q: %w", p.UpdatedAt, err)
	}

	hireDate, err := parseOptionalDate(p.HireDate)
	if err != nil {
		return EmployeeRow{}, fmt.Errorf("invalid hire_date %q: %w", p.HireDate, err)
	}
	birthDate, err := parseOptionalDate(p.BirthDate)
	if err != nil {
		return EmployeeRow{}, fmt.Errorf("invalid birth_date %q: %w", p.BirthDate, err)
	}
	retiredAt, err := parseOptionalDate(p.RetiredAt)
	if err != nil {
		return EmployeeRow{}, fmt.Errorf("invalid retired_at %q: %w", p.RetiredAt, err)
	}

	return EmployeeRow{
		Code:        strings.TrimSpace(p.Code),
		DisplayName: strings.TrimSpace(p.DisplayName),
		HireDate:    hireDate,
		BirthDate:   birthDate,
		RetiredAt:   retiredAt,
		UpdatedAt:   updatedAt,
	}, nil
}

func parseOptionalDate(raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
