// Package license talks to an Easy Digital Downloads software licensing store
// and keeps the stored license status current.
package license

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/render-shortcodes/render/internal/config"
)

// EDD actions.
const (
	ActionActivate   = "activate_license"
	ActionDeactivate = "deactivate_license"
	ActionCheck      = "check_license"
)

// License states returned by the store.
const (
	StatusValid       = "valid"
	StatusInvalid     = "invalid"
	StatusDeactivated = "deactivated"
	StatusInactive    = "inactive"
	StatusExpired     = "expired"
)

var (
	// ErrEmptyKey is returned when no license key is given.
	ErrEmptyKey = errors.New("license key is empty")
	// ErrNoStore is returned when no store url is configured.
	ErrNoStore = errors.New("license store url is not configured")
	// ErrUnexpectedStatus is returned when the store answers with a non 200 status.
	ErrUnexpectedStatus = errors.New("unexpected licensing store response status")
)

// Response is the store answer to a license action.
type Response struct {
	Success  bool   `json:"success"`
	License  string `json:"license"`
	ItemName string `json:"item_name"`
	Expires  string `json:"expires"`
	Error    string `json:"error"`
}

// Client calls the licensing store.
type Client struct {
	storeURL string
	itemName string
	siteURL  string
	timeout  time.Duration
}

// NewClient returns a client for the configured store. siteURL identifies this installation.
func NewClient(cfg config.License, siteURL string) *Client {
	return &Client{
		storeURL: strings.TrimRight(cfg.StoreURL, "/"),
		itemName: cfg.ItemName,
		siteURL:  siteURL,
		timeout:  cfg.Timeout,
	}
}

// Activate activates key for this site.
func (c *Client) Activate(key string) (*Response, error) {
	return c.call(ActionActivate, key)
}

// Deactivate releases key from this site.
func (c *Client) Deactivate(key string) (*Response, error) {
	return c.call(ActionDeactivate, key)
}

// Check returns the current state of key.
func (c *Client) Check(key string) (*Response, error) {
	return c.call(ActionCheck, key)
}

func (c *Client) call(action, key string) (*Response, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	if c.storeURL == "" {
		return nil, ErrNoStore
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)

	args.Set("edd_action", action)
	args.Set("license", key)
	args.Set("item_name", c.itemName)
	args.Set("url", c.siteURL)

	agent := fiber.Post(c.storeURL).Form(args)
	if c.timeout > 0 {
		agent.Timeout(c.timeout)
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, fmt.Errorf("%s: %w", action, errors.Join(errs...))
	}

	if code != fiber.StatusOK {
		return nil, fmt.Errorf("%s: %w: %d %s", action, ErrUnexpectedStatus, code, truncate(string(body), 200))
	}

	resp := new(Response)
	if err := json.Unmarshal(body, resp); err != nil {
		return nil, fmt.Errorf("%s: decode response: %w", action, err)
	}

	return resp, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}

	return s[:n] + "..."
}
