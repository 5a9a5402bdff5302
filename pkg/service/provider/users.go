package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// SearchUsers queries the provider's account directory by keyword. It is
// used to verify provisioned accounts after a batch run; pagination beyond
// the first page is the caller's concern.
func (c *Client) SearchUsers(ctx context.Context, keyword, accessToken string, page, size int) ([]model.AccountRef, error) {
	if size <= 0 {
		size = 20
	}

	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	q.Set("sortField", "userName")
	q.Set("sortType", "ASC")

	reqURL := c.endpoint("/hu/user") + "?" + q.Encode()
	raw, status, err := c.doJSON(ctx, http.MethodGet, reqURL, nil, accessToken, LookupTimeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, goerr.New("user search failed",
			goerr.V("providerID", c.provider.ID),
			goerr.V("keyword", keyword),
			goerr.V("status", status),
			goerr.V("body", model.TruncateMessage(string(raw))))
	}

	var envelope struct {
		Content []model.AccountRef `json:"content"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, goerr.Wrap(err, "unexpected user search response",
			goerr.T(model.ErrTagMalformedResponse),
			goerr.V("providerID", c.provider.ID))
	}
	return envelope.Content, nil
}
