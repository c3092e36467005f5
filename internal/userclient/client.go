// Package userclient is the order service's HTTP client for the user
// directory. Not-found on lookup is a normal outcome (the caller creates the
// customer); everything else is a hard failure.
package userclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	domain "github.com/sweetdreamlabs/sweetdream/internal/domain/order"
	"github.com/sweetdreamlabs/sweetdream/internal/models"
)

type Client struct {
	baseURL string
	hc      *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		hc:      &http.Client{},
	}
}

func (c *Client) FindByEmail(
	ctx context.Context,
	email string,
) (*models.Customer, error) {

	// The directory stores emails lowercased; look up the same way so a
	// mixed-case checkout email still finds the existing row.
	email = strings.ToLower(strings.TrimSpace(email))

	endpoint := fmt.Sprintf("%s/api/customers/email/%s", c.baseURL, url.PathEscape(email))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service lookup: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		var customer models.Customer
		if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
			return nil, fmt.Errorf("user service lookup: decode: %w", err)
		}
		return &customer, nil
	case http.StatusNotFound:
		return nil, domain.ErrCustomerNotFound
	default:
		return nil, fmt.Errorf("user service lookup: unexpected status %d", resp.StatusCode)
	}
}

func (c *Client) Create(
	ctx context.Context,
	in domain.CustomerInput,
) (*models.Customer, error) {

	payload, err := json.Marshal(map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"phone":   in.Phone,
		"address": in.Address,
	})
	if err != nil {
		return nil, err
	}

	endpoint := c.baseURL + "/api/customers"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("user service create: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("user service create: unexpected status %d", resp.StatusCode)
	}

	var customer models.Customer
	if err := json.NewDecoder(resp.Body).Decode(&customer); err != nil {
		return nil, fmt.Errorf("user service create: decode: %w", err)
	}
	return &customer, nil
}

// Compile-time check
var _ domain.CustomerDirectory = (*Client)(nil)
