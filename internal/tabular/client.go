package tabular

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// Client is the port to the remote tabular-data service: list the tables of
// a base, and list the records of one table.
type Client interface {
	ListTables(ctx context.Context, config Config) ([]Table, error)
	ListRecords(ctx context.Context, config Config, tableID string) ([]Record, error)
}

// HTTPClient talks to the Airtable REST API.
type HTTPClient struct {
	// APIHost defaults to https://api.airtable.com.
	APIHost    string
	HTTPClient *http.Client
}

func (c *HTTPClient) host() string {
	if c.APIHost != "" {
		return c.APIHost
	}
	return "https://api.airtable.com"
}

func (c *HTTPClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *HTTPClient) get(ctx context.Context, config Config, url string, out any) error {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.Wrap(err, "building request")
	}
	request.Header.Set("Authorization", "Bearer "+config.AccessToken)

	response, err := c.httpClient().Do(request)
	if err != nil {
		return errors.Wrap(err, "calling api")
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return errors.Errorf("api returned status %d", response.StatusCode)
	}

	bytes, err := io.ReadAll(response.Body)
	if err != nil {
		return errors.Wrap(err, "reading response")
	}
	if err := json.Unmarshal(bytes, out); err != nil {
		return errors.Wrap(err, "unmarshaling response")
	}
	return nil
}

// ListTables implements Client using the base schema endpoint.
func (c *HTTPClient) ListTables(ctx context.Context, config Config) ([]Table, error) {
	response := &struct {
		Tables []Table `json:"tables"`
	}{}
	url := fmt.Sprintf("%s/v0/meta/bases/%s/tables", c.host(), config.BaseID)
	if err := c.get(ctx, config, url, response); err != nil {
		return nil, errors.Wrap(err, "listing tables")
	}
	return response.Tables, nil
}

// ListRecords implements Client, following pagination offsets until the
// table is exhausted.
func (c *HTTPClient) ListRecords(ctx context.Context, config Config, tableID string) ([]Record, error) {
	var records []Record
	offset := ""
	for {
		response := &struct {
			Records []Record `json:"records"`
			Offset  string   `json:"offset"`
		}{}
		endpoint := fmt.Sprintf("%s/v0/%s/%s", c.host(), config.BaseID, tableID)
		if offset != "" {
			endpoint += "?offset=" + url.QueryEscape(offset)
		}
		if err := c.get(ctx, config, endpoint, response); err != nil {
			return nil, errors.Wrap(err, "listing records")
		}
		records = append(records, response.Records...)
		if response.Offset == "" {
			return records, nil
		}
		offset = response.Offset
	}
}
