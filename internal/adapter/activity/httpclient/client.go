package activityclient

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/app/client"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"github.com/universe-engine-ai/serenissima-sub006/internal/app/ports"
)

// Client submits activity requests to the external execution engine. The
// engine owns all side effects on the simulated world; the regulator only
// asks for them.
type Client struct {
	baseURL string
	http    *client.Client
}

func New(baseURL string) (*Client, error) {
	c, err := client.NewClient(client.WithClientReadTimeout(20 * time.Second))
	if err != nil {
		return nil, fmt.Errorf("build activity client: %w", err)
	}
	return &Client{baseURL: baseURL, http: c}, nil
}

type submitRequest struct {
	Citizen      string         `json:"citizen"`
	ActivityType string         `json:"activity_type"`
	Parameters   map[string]any `json:"parameters,omitempty"`
}

type submitResponse struct {
	Accepted   bool   `json:"accepted"`
	ActivityID string `json:"activity_id,omitempty"`
	Reason     string `json:"reason,omitempty"`
}

func (c *Client) Submit(ctx context.Context, citizen, activityType string, params map[string]any) (ports.ActivityAck, error) {
	body, err := json.Marshal(submitRequest{
		Citizen:      citizen,
		ActivityType: activityType,
		Parameters:   params,
	})
	if err != nil {
		return ports.ActivityAck{}, fmt.Errorf("encode activity request: %w", err)
	}

	req := protocol.AcquireRequest()
	resp := protocol.AcquireResponse()
	defer func() {
		protocol.ReleaseRequest(req)
		protocol.ReleaseResponse(resp)
	}()

	req.SetMethod(consts.MethodPost)
	req.SetRequestURI(c.baseURL + "/api/activities/try-create")
	req.SetBody(body)
	req.Header.SetContentTypeBytes([]byte("application/json"))

	if err := c.http.Do(ctx, req, resp); err != nil {
		return ports.ActivityAck{}, fmt.Errorf("submit activity %s: %w", activityType, err)
	}
	if resp.StatusCode() != consts.StatusOK {
		return ports.ActivityAck{}, fmt.Errorf("submit activity %s: status %d", activityType, resp.StatusCode())
	}

	var out submitResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return ports.ActivityAck{}, fmt.Errorf("decode activity response: %w", err)
	}
	return ports.ActivityAck{
		Accepted:    out.Accepted,
		ActivityRef: out.ActivityID,
	}, nil
}
