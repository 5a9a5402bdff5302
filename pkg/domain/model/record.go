package model

import (
	"github.com/go-playground/validator/v10"
	"github.com/m-mizutani/goerr/v2"
)

var recordValidator = validator.New(validator.WithRequiredStructEnabled())

// ImportRecord is one validated row of provisioning input. Records are
// immutable once read; the importer normalizes raw cell values (trailing
// ".0" on numeric-looking strings) before validation.
type ImportRecord struct {
	Index            int
	FullName         string `validate:"required"`
	Phone            string `validate:"required"`
	Email            string `validate:"required"`
	Username         string `validate:"required"`
	Password         string `validate:"required"`
	OrgParentKeyword string
	OrgDeptKeyword   string
	JobTitle         string
}

// Validate checks that the five mandatory fields are present. Presence is the
// only requirement; an odd-looking email is the provider's call to reject, not
// grounds to abort the whole import.
func (r *ImportRecord) Validate() error {
	if err := recordValidator.Struct(r); err != nil {
		return goerr.Wrap(err, "invalid import record",
			goerr.V("index", r.Index),
			goerr.V("username", r.Username),
			goerr.T(ErrTagValidation))
	}
	return nil
}

// HasOrgParent reports whether the record requests an experience attachment
func (r *ImportRecord) HasOrgParent() bool {
	return r.OrgParentKeyword != ""
}
