package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/dvc-ops/provgate/pkg/domain/interfaces"
	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

type accountPayload struct {
	FullName string `json:"fullname"`
	Phone    string `json:"phoneNumber"`
	Email    string `json:"email"`
	Username string `json:"userName"`
	Password string `json:"password"`
	Status   int    `json:"status"`
}

type accountResponse struct {
	ID string `json:"id"`
}

// CreateAccount submits the account-creation payload for one record.
// HTTP 200/201 is success; anything else surfaces as an error carrying the
// truncated provider body, so a duplicate username is never silently treated
// as success.
func (c *Client) CreateAccount(ctx context.Context, record *model.ImportRecord, accessToken string) (*interfaces.CreateResult, error) {
	logger := ctxlog.From(ctx)

	payload := accountPayload{
		FullName: record.FullName,
		Phone:    record.Phone,
		Email:    record.Email,
		Username: record.Username,
		Password: record.Password,
		Status:   1,
	}

	reqURL := c.endpoint(c.provider.AccountAPIPath)
	raw, status, err := c.doJSON(ctx, http.MethodPost, reqURL, payload, accessToken, MutationTimeout)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return nil, goerr.New("account creation rejected",
			goerr.V("providerID", c.provider.ID),
			goerr.V("username", record.Username),
			goerr.V("status", status),
			goerr.V("body", model.TruncateMessage(string(raw))))
	}

	var created accountResponse
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, goerr.Wrap(err, "failed to decode created account",
			goerr.T(model.ErrTagMalformedResponse),
			goerr.V("providerID", c.provider.ID),
			goerr.V("username", record.Username))
	}
	if created.ID == "" {
		return nil, goerr.New("created account has no id",
			goerr.T(model.ErrTagMalformedResponse),
			goerr.V("providerID", c.provider.ID),
			goerr.V("username", record.Username))
	}

	logger.Info("account created",
		"providerID", c.provider.ID,
		"username", record.Username,
		"userID", created.ID,
	)
	return &interfaces.CreateResult{
		UserID:  created.ID,
		Message: fmt.Sprintf("account %s created", record.Username),
	}, nil
}

type experienceEntry struct {
	Agency           *model.OrgUnitRef `json:"agency"`
	AgencyDepartment *model.OrgUnitRef `json:"agencyDepartment"`
	PositionID       string            `json:"positionId"`
	PositionName     string            `json:"positionName"`
	StartDate        string            `json:"startDate"`
	EndDate          *string           `json:"endDate"`
	Primary          bool              `json:"primary"`
}

// AttachExperience attaches the employment record for a created user.
//
// Anchor resolution: the department keyword is tried first; when it resolves,
// the department's own id doubles as the agency anchor (observed provider
// behavior where a leaf department is its own positional anchor; a
// provisional business rule, see DESIGN.md). The parent keyword is the
// fallback anchor. With no anchor from either path the attach fails with
// MissingOrgAnchor; the caller keeps the account-creation success and reports
// this as a secondary note. Account creation is never rolled back here.
func (c *Client) AttachExperience(ctx context.Context, userID string, record *model.ImportRecord, accessToken string) error {
	logger := ctxlog.From(ctx)

	var anchor, dept *model.OrgUnitRef
	if record.OrgDeptKeyword != "" {
		ref, err := c.ResolveOrgUnit(ctx, record.OrgDeptKeyword, accessToken)
		if err != nil {
			return goerr.Wrap(err, "department lookup failed",
				goerr.V("keyword", record.OrgDeptKeyword))
		}
		if ref != nil {
			dept = ref
			anchor = ref
		}
	}
	if anchor == nil && record.OrgParentKeyword != "" {
		ref, err := c.ResolveOrgUnit(ctx, record.OrgParentKeyword, accessToken)
		if err != nil {
			return goerr.Wrap(err, "parent agency lookup failed",
				goerr.V("keyword", record.OrgParentKeyword))
		}
		anchor = ref
	}
	if anchor == nil {
		return goerr.Wrap(model.ErrMissingOrgAnchor, "experience not attached",
			goerr.T(model.ErrTagMissingOrgAnchor),
			goerr.V("providerID", c.provider.ID),
			goerr.V("deptKeyword", record.OrgDeptKeyword),
			goerr.V("parentKeyword", record.OrgParentKeyword))
	}

	position := c.provider.Position(record.JobTitle)
	entry := experienceEntry{
		Agency:           anchor,
		AgencyDepartment: dept,
		PositionID:       position.PositionID,
		PositionName:     position.PositionName,
		StartDate:        time.Now().UTC().Format(time.RFC3339),
		EndDate:          nil,
		Primary:          true,
	}

	reqURL := c.endpoint("/hu/user/"+userID+"/experience") + "?checkAgencyEx=true"
	raw, status, err := c.doJSON(ctx, http.MethodPut, reqURL, []experienceEntry{entry}, accessToken, MutationTimeout)
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
	default:
		return goerr.New("experience update rejected",
			goerr.V("providerID", c.provider.ID),
			goerr.V("userID", userID),
			goerr.V("status", status),
			goerr.V("body", model.TruncateMessage(string(raw))))
	}

	logger.Info("experience attached",
		"providerID", c.provider.ID,
		"userID", userID,
		"agency", anchor.Name,
		"position", position.PositionName,
	)
	return nil
}
