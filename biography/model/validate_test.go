package model

import (
	"errors"
	"strings"
	"testing"
)

func strPtr(s string) *string { return &s }

func validRecord() *BiographyRecord {
	return &BiographyRecord{
		Personal: Localized[*PersonalInfo]{
			ZH: &PersonalInfo{Name: "王小明"},
			EN: &PersonalInfo{Name: "Ming Wang"},
		},
		Experience: LocalizedList[Experience]{
			ZH: []Experience{{Company: "甲公司", Period: "2022 - 現在"}},
			EN: []Experience{{Company: "Acme", Period: "2022 - Present"}},
		},
		Education:  LocalizedList[Education]{ZH: []Education{}, EN: []Education{}},
		Skills:     LocalizedList[SkillGroup]{ZH: []SkillGroup{}, EN: []SkillGroup{}},
		Certifications: LocalizedList[Certification]{
			ZH: []Certification{{Name: "證照", ExpiryDate: strPtr("2026-01-01")}},
			EN: []Certification{{Name: "Cert", ExpiryDate: strPtr("2026-01-01")}},
		},
		Projects: LocalizedList[Project]{
			ZH: []Project{{Name: "專案", Status: StatusActive}},
			EN: []Project{{Name: "Project", Status: StatusActive}},
		},
	}
}

func TestValidateAcceptsWellFormedRecord(t *testing.T) {
	if err := validRecord().Validate(); err != nil {
		t.Fatalf("expected valid record, got %v", err)
	}
}

func TestValidateRejectsMissingLocale(t *testing.T) {
	rec := validRecord()
	rec.Personal.EN = nil
	rec.Skills.ZH = nil

	err := rec.Validate()
	if !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
	var ce *ContractError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ContractError, got %T", err)
	}
	if len(ce.Violations) != 2 {
		t.Fatalf("expected 2 violations, got %v", ce.Violations)
	}
}

func TestValidateRejectsMismatchedLengths(t *testing.T) {
	rec := validRecord()
	rec.Experience.EN = append(rec.Experience.EN, Experience{Company: "Extra"})

	err := rec.Validate()
	if err == nil || !strings.Contains(err.Error(), "experience has 1 zh entries but 2 en entries") {
		t.Fatalf("expected parity violation, got %v", err)
	}
}

func TestValidateRejectsUnknownStatus(t *testing.T) {
	rec := validRecord()
	rec.Projects.ZH[0].Status = "archived"
	rec.Projects.EN[0].Status = "archived"

	err := rec.Validate()
	if !errors.Is(err, ErrContract) {
		t.Fatalf("expected ErrContract, got %v", err)
	}
	if !strings.Contains(err.Error(), `"archived"`) {
		t.Fatalf("expected status in message, got %v", err)
	}
}

func TestValidateRejectsDivergentStatus(t *testing.T) {
	rec := validRecord()
	rec.Projects.EN[0].Status = StatusAbandoned

	if err := rec.Validate(); err == nil {
		t.Fatal("expected status divergence to be rejected")
	}
}

func TestProjectStatusValid(t *testing.T) {
	for _, s := range []ProjectStatus{StatusActive, StatusDeprecated, StatusAbandoned} {
		if !s.Valid() {
			t.Fatalf("expected %s to be valid", s)
		}
	}
	if ProjectStatus("paused").Valid() {
		t.Fatal("expected unknown status to be invalid")
	}
}

func TestValidateReportsFieldPaths(t *testing.T) {
	rec := validRecord()
	rec.Personal.ZH.Name = "   "
	rec.Projects.ZH[0].Status = "paused"
	rec.Certifications.EN[0].ExpiryDate = nil

	var ce *ContractError
	if err := rec.Validate(); !errors.As(err, &ce) {
		t.Fatalf("expected ContractError, got %v", err)
	}
	want := []string{
		"personal.zh.name is required",
		`projects.zh[0].status "paused" is not one of active, deprecated, abandoned`,
		"projects[0].status differs between locales (zh=paused en=active)",
		"certifications[0].expiryDate present in only one locale",
	}
	joined := strings.Join(ce.Violations, "\n")
	for _, w := range want {
		if !strings.Contains(joined, w) {
			t.Fatalf("missing violation %q in %v", w, ce.Violations)
		}
	}
}

func TestValidateMissingLocaleNamesTheField(t *testing.T) {
	rec := validRecord()
	rec.Projects.EN = nil

	err := rec.Validate()
	if err == nil || !strings.Contains(err.Error(), "projects.en is missing") {
		t.Fatalf("expected missing locale violation, got %v", err)
	}
}
