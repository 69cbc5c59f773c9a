package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

// PaymentClient talks to the payment service.
type PaymentClient struct {
	httpClient
}

// NewPaymentClient creates a PaymentClient for the service at baseURL.
func NewPaymentClient(baseURL string, timeout time.Duration, log zerolog.Logger) *PaymentClient {
	return &PaymentClient{httpClient: newHTTPClient("payment", baseURL, timeout, log)}
}

// DeleteByTuition deletes every payment recorded against the tuition.
// DELETE /api/v1/payment/delete/tuition/:tuitionId
func (c *PaymentClient) DeleteByTuition(ctx context.Context, tuitionID, token string) error {
	return c.do(ctx, http.MethodDelete, "/api/v1/payment/delete/tuition/"+url.PathEscape(tuitionID), token, nil, nil)
}
