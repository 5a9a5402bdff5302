package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/m-mizutani/goerr/v2"
)

// ResolveOrgUnit looks up an organizational unit by free-text keyword against
// the provider's agency tree endpoint. The search always uses page 0. An
// empty result set yields (nil, nil): "unresolved" is a legitimate terminal
// outcome that callers handle with fallback logic, not a fault.
func (c *Client) ResolveOrgUnit(ctx context.Context, keyword, accessToken string) (*model.OrgUnitRef, error) {
	q := url.Values{}
	q.Set("keyword", keyword)
	q.Set("page", "0")
	q.Set("size", "10")

	reqURL := c.endpoint(c.provider.AgencyTreeAPIPath) + "?" + q.Encode()
	raw, status, err := c.doJSON(ctx, http.MethodGet, reqURL, nil, accessToken, LookupTimeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, goerr.New("agency tree lookup failed",
			goerr.V("providerID", c.provider.ID),
			goerr.V("keyword", keyword),
			goerr.V("status", status),
			goerr.V("body", model.TruncateMessage(string(raw))))
	}

	ref, err := normalizeTreeResponse(raw)
	if err != nil {
		return nil, goerr.Wrap(err, "unexpected agency tree response",
			goerr.T(model.ErrTagMalformedResponse),
			goerr.V("providerID", c.provider.ID),
			goerr.V("keyword", keyword))
	}
	return ref, nil
}

// normalizeTreeResponse folds the three observed payload shapes into one
// OrgUnitRef:
//
//	{"content": [unit, ...]}   -> first element
//	{"content": unit}          -> the unit
//	unit                       -> the unit itself
//
// A missing or empty content list yields nil without error.
func normalizeTreeResponse(raw []byte) (*model.OrgUnitRef, error) {
	var envelope struct {
		Content json.RawMessage `json:"content"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, goerr.Wrap(err, "response is not a JSON object")
	}

	body := envelope.Content
	if len(body) == 0 || string(body) == "null" {
		// No envelope: try the payload as a bare unit
		body = raw
	}

	var list []model.OrgUnitRef
	if err := json.Unmarshal(body, &list); err == nil {
		if len(list) == 0 {
			return nil, nil
		}
		if list[0].IsZero() {
			return nil, nil
		}
		first := list[0]
		return &first, nil
	}

	var unit model.OrgUnitRef
	if err := json.Unmarshal(body, &unit); err != nil {
		return nil, goerr.Wrap(err, "content is neither unit nor unit list")
	}
	if unit.IsZero() {
		return nil, nil
	}
	return &unit, nil
}
