package client

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/fadilmartias/jobtrack/internal/config"
	"github.com/fadilmartias/jobtrack/internal/dto"
	"github.com/fadilmartias/jobtrack/internal/model"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
)

type ApplicationClientInterface interface {
	List(ctx context.Context, params ListParams) (*Page, error)
	FetchAll(ctx context.Context) ([]model.Application, error)
	Get(ctx context.Context, id string) (*model.Application, error)
	Create(ctx context.Context, app *model.Application) (*model.Application, error)
	Update(ctx context.Context, id string, app *model.Application) (*model.Application, error)
	PatchStatus(ctx context.Context, id string, status string) (*model.Application, error)
	Delete(ctx context.Context, id string) error
	AddTimelineEvent(ctx context.Context, id string, event model.TimelineEvent) (*model.Application, error)
}

// Client talks to the applications REST API. All reads and mutations of the
// dashboard service go through it.
type Client struct {
	http     *resty.Client
	pageSize int
	maxPages int
}

type ListParams struct {
	Status   string
	Search   string
	Page     int
	PageSize int
}

// Page is one list response. Bare is set when the backend ignored
// pagination and returned the whole collection as a plain array.
type Page struct {
	Results []model.Application
	Next    string
	Count   int64
	Bare    bool
}

func New(cfg *config.UpstreamConfig) *Client {
	http := resty.New().SetBaseURL(cfg.BaseURL)
	if cfg.APIToken != "" {
		http.SetAuthToken(cfg.APIToken)
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = 1000
	}
	return &Client{http: http, pageSize: pageSize, maxPages: maxPages}
}

// List fetches a single page of applications with the given filters.
func (c *Client) List(ctx context.Context, params ListParams) (*Page, error) {
	req := c.http.R().SetContext(ctx)
	if params.Status != "" {
		req.SetQueryParam("status", params.Status)
	}
	if params.Search != "" {
		req.SetQueryParam("search", params.Search)
	}
	if params.Page > 0 {
		req.SetQueryParam("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		req.SetQueryParam("page_size", strconv.Itoa(params.PageSize))
	}
	resp, err := req.Get("/applications/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return parsePage(resp.Body())
}

// FetchAll walks every page of the list endpoint and returns the complete,
// order-preserving collection. Any page failure aborts with no partial
// result. A backend that never reports a final page is cut off after
// maxPages with ErrPaginationExhausted.
func (c *Client) FetchAll(ctx context.Context) ([]model.Application, error) {
	var all []model.Application
	page := 1
	for {
		if page > c.maxPages {
			return nil, fmt.Errorf("%w after %d pages", ErrPaginationExhausted, c.maxPages)
		}
		p, err := c.List(ctx, ListParams{Page: page, PageSize: c.pageSize})
		if err != nil {
			return nil, err
		}
		if p.Bare {
			// Backend ignored pagination and sent everything at once.
			return p.Results, nil
		}
		all = append(all, p.Results...)
		if p.Next == "" {
			return all, nil
		}
		page++
	}
}

func (c *Client) Get(ctx context.Context, id string) (*model.Application, error) {
	var app model.Application
	resp, err := c.http.R().SetContext(ctx).SetResult(&app).Get("/applications/" + id + "/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &app, nil
}

func (c *Client) Create(ctx context.Context, app *model.Application) (*model.Application, error) {
	var created model.Application
	resp, err := c.http.R().SetContext(ctx).SetBody(app).SetResult(&created).Post("/applications/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &created, nil
}

func (c *Client) Update(ctx context.Context, id string, app *model.Application) (*model.Application, error) {
	var updated model.Application
	resp, err := c.http.R().SetContext(ctx).SetBody(app).SetResult(&updated).Put("/applications/" + id + "/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &updated, nil
}

// PatchStatus sends a partial update carrying only the nested status field,
// so unrelated fields are left untouched on the backend.
func (c *Client) PatchStatus(ctx context.Context, id string, status string) (*model.Application, error) {
	body := dto.StatusPatchDTO{}
	body.Application.Status = status
	var updated model.Application
	resp, err := c.http.R().SetContext(ctx).SetBody(body).SetResult(&updated).Patch("/applications/" + id + "/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &updated, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	resp, err := c.http.R().SetContext(ctx).Delete("/applications/" + id + "/")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

func (c *Client) AddTimelineEvent(ctx context.Context, id string, event model.TimelineEvent) (*model.Application, error) {
	var updated model.Application
	resp, err := c.http.R().SetContext(ctx).SetBody(event).SetResult(&updated).Post("/applications/" + id + "/timeline/")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}
	return &updated, nil
}

// parsePage handles both the paginated envelope {results, next, count} and
// backends that ignore pagination and return a bare array.
func parsePage(body []byte) (*Page, error) {
	results := gjson.GetBytes(body, "results")
	if results.Exists() {
		page := &Page{
			Next:  gjson.GetBytes(body, "next").String(),
			Count: gjson.GetBytes(body, "count").Int(),
		}
		if err := json.Unmarshal([]byte(results.Raw), &page.Results); err != nil {
			return nil, fmt.Errorf("decode results: %w", err)
		}
		return page, nil
	}
	page := &Page{Bare: true}
	if err := json.Unmarshal(body, &page.Results); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return page, nil
}
