package model_test

import (
	"testing"

	"github.com/dvc-ops/provgate/pkg/domain/model"
	"github.com/m-mizutani/gt"
)

func validRecord() model.ImportRecord {
	return model.ImportRecord{
		FullName: "Nguyễn Văn An",
		Phone:    "0912345678",
		Email:    "an.nv@example.gov.vn",
		Username: "an.nv",
		Password: "Pass@123",
	}
}

func TestImportRecordValidate(t *testing.T) {
	rec := validRecord()
	gt.NoError(t, rec.Validate())
}

func TestImportRecordMandatoryFields(t *testing.T) {
	mutations := map[string]func(*model.ImportRecord){
		"fullName": func(r *model.ImportRecord) { r.FullName = "" },
		"phone":    func(r *model.ImportRecord) { r.Phone = "" },
		"email":    func(r *model.ImportRecord) { r.Email = "" },
		"username": func(r *model.ImportRecord) { r.Username = "" },
		"password": func(r *model.ImportRecord) { r.Password = "" },
	}

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			rec := validRecord()
			mutate(&rec)
			gt.Error(t, rec.Validate())
		})
	}
}

func TestImportRecordOddEmailAccepted(t *testing.T) {
	// Only presence is mandatory; a syntactically odd address must not make
	// the record batch-fatal.
	rec := validRecord()
	rec.Email = "an.nv[at]moh"
	gt.NoError(t, rec.Validate())
}
