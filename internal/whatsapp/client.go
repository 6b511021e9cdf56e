package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finvoy/ledger-notify/internal/interfaces"
)

// Client talks to an Evolution API instance. The endpoint shape is fixed
// by configuration; earlier deployments probed several URL variants at
// runtime, which made failures ambiguous, so that guessing was removed.
type Client struct {
	baseURL  string
	apiKey   string
	instance string
	http     *http.Client
	log      *logrus.Logger
}

func NewClient(baseURL, apiKey, instance string, log *logrus.Logger) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("whatsapp: base url is empty")
	}
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("whatsapp: api key is empty")
	}
	if strings.TrimSpace(instance) == "" {
		return nil, errors.New("whatsapp: instance is empty")
	}
	return &Client{
		baseURL:  baseURL,
		apiKey:   apiKey,
		instance: instance,
		http:     &http.Client{Timeout: 30 * time.Second},
		log:      log,
	}, nil
}

type sendTextRequest struct {
	Number string `json:"number"`
	Text   string `json:"text"`
}

// Send delivers one text message to the given number. Non-2xx responses
// become errors carrying the status and the trimmed response body.
func (c *Client) Send(ctx context.Context, number string, text string) error {
	endpoint := fmt.Sprintf("%s/%s/message/sendText", c.baseURL, c.instance)

	body, err := json.Marshal(sendTextRequest{Number: number, Text: text})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp: send to %s failed: %w", number, err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp: send to %s failed: status %d: %s",
			number, resp.StatusCode, strings.TrimSpace(string(respBody)))
	}

	c.log.WithFields(logrus.Fields{"number": number}).Info("message sent")
	return nil
}

// CheckInstanceStatus reports whether the configured instance is connected.
// The check is advisory: when it cannot be performed the client logs a
// warning and returns true so sends are not blocked.
func (c *Client) CheckInstanceStatus(ctx context.Context) bool {
	endpoint := c.baseURL + "/fetchInstances"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return true
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.WithError(err).Warn("could not verify instance status, continuing")
		return true
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithFields(logrus.Fields{"status": resp.StatusCode}).
			Warn("could not verify instance status, continuing")
		return true
	}

	var instances []struct {
		InstanceName string `json:"instanceName"`
		Status       string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&instances); err != nil {
		c.log.WithError(err).Warn("could not parse instance status, continuing")
		return true
	}

	for _, inst := range instances {
		if inst.InstanceName != c.instance {
			continue
		}
		switch strings.ToLower(inst.Status) {
		case "open", "connected", "ready":
			return true
		}
		return false
	}
	return true
}

var _ interfaces.Messenger = (*Client)(nil)
