package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"net/url"
	"time"

	"wealth-projections/internal/api/models"
	"wealth-projections/internal/contact"
	"wealth-projections/internal/metrics"

	"github.com/gin-gonic/gin"
)

// ContactHandler relays enquiry forms.
type ContactHandler struct {
	client  *contact.Client
	timeout time.Duration
}

// NewContactHandler creates a new contact handler
func NewContactHandler(client *contact.Client, timeout time.Duration) *ContactHandler {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &ContactHandler{client: client, timeout: timeout}
}

// Submit handles POST /api/v1/contact (JSON or form encoded)
func (h *ContactHandler) Submit(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error(), nil)
		return
	}
	sub = sub.Normalize()
	if sub.PageSource == "" {
		sub.PageSource = contact.PageSourceFromPath(refererPath(c.Request.Referer()))
	}
	if err := sub.Validate(); err != nil {
		metrics.ObserveContact(metrics.ResultError)
		respondError(c, http.StatusBadRequest, "CONTACT_INVALID", err.Error(), nil)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	if err := h.client.Submit(ctx, sub); err != nil {
		log.Printf("ContactHandler: relay failed: %v", err)
		metrics.ObserveContact(metrics.ResultError)
		status := http.StatusBadGateway
		var relayErr *contact.RelayError
		if errors.As(err, &relayErr) && relayErr.Code == "NOT_CONFIGURED" {
			status = http.StatusServiceUnavailable
		}
		respondError(c, status, "CONTACT_FAILED", "Sorry, there was an error submitting your form. Please try again.", nil)
		return
	}
	metrics.ObserveContact(metrics.ResultSuccess)
	c.JSON(http.StatusOK, models.ContactResponse{Result: "success"})
}

func refererPath(ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return u.Path
}
