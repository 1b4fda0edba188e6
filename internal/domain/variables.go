package domain

import (
	"errors"
	"fmt"
)

// ErrIncompleteVariables — в OrchestrationVariables осталось пустое поле.
var ErrIncompleteVariables = errors.New("orchestration variables incomplete")

// Значения по умолчанию для отсутствующих catalog variables.
const (
	DefaultProjectName           = "e2e-test-project"
	DefaultDisplayName           = "E2E Test Project"
	DefaultEnvironment           = "development"
	DefaultRequestorFirstName    = "E2E"
	DefaultRequestorLastName     = "Tester"
	DefaultTeamMembers           = "e2e-test-team"
	DefaultBusinessJustification = "End-to-end integration testing"
	DefaultRequestNumber         = "unknown-request"
	DefaultRequestor             = "unknown-requestor"
)

// OrchestrationVariables — полностью заполненный набор extra_vars для job template.
//
// После DeriveVariables ни одно поле не пустое.
type OrchestrationVariables struct {
	ProjectName             string `json:"project_name" yaml:"project_name"`
	DisplayName             string `json:"display_name" yaml:"display_name"`
	Environment             string `json:"environment" yaml:"environment"`
	RequestorFirstName      string `json:"requestor_first_name" yaml:"requestor_first_name"`
	RequestorLastName       string `json:"requestor_last_name" yaml:"requestor_last_name"`
	TeamMembers             string `json:"team_members" yaml:"team_members"`
	BusinessJustification   string `json:"business_justification" yaml:"business_justification"`
	ServiceNowRequestNumber string `json:"servicenow_request_number" yaml:"servicenow_request_number"`
	Requestor               string `json:"requestor" yaml:"requestor"`
}

// DeriveVariables строит OrchestrationVariables из catalog variables и записи.
//
// Каждое поле вычисляется независимо: первое непустое значение побеждает.
// Значение из одних пробелов считается отсутствующим, остальные передаются без изменений.
// Функция чистая и всегда успешна.
func DeriveVariables(catalog CatalogVariables, record ChangeRequestRecord) OrchestrationVariables {
	return OrchestrationVariables{
		ProjectName:             firstNonEmpty(catalog.Get(VarProjectName), DefaultProjectName),
		DisplayName:             firstNonEmpty(catalog.Get(VarDisplayName), catalog.Get(VarProjectName), DefaultDisplayName),
		Environment:             firstNonEmpty(catalog.Get(VarEnvironment), DefaultEnvironment),
		RequestorFirstName:      firstNonEmpty(catalog.Get(VarRequestorFirstName), DefaultRequestorFirstName),
		RequestorLastName:       firstNonEmpty(catalog.Get(VarRequestorLastName), DefaultRequestorLastName),
		TeamMembers:             firstNonEmpty(catalog.Get(VarTeamMembers), DefaultTeamMembers),
		BusinessJustification:   firstNonEmpty(catalog.Get(VarBusinessJustification), DefaultBusinessJustification),
		ServiceNowRequestNumber: firstNonEmpty(record.RequestNumber(), DefaultRequestNumber),
		Requestor:               firstNonEmpty(record.RequesterUserName(), DefaultRequestor),
	}
}

// Validate проверяет, что все поля заполнены.
func (v OrchestrationVariables) Validate() error {
	for _, f := range v.fields() {
		if isBlank(f.value) {
			return fmt.Errorf("%w: %s is empty", ErrIncompleteVariables, f.key)
		}
	}
	return nil
}

// AsMap возвращает переменные в виде extra_vars.
func (v OrchestrationVariables) AsMap() map[string]string {
	fields := v.fields()
	m := make(map[string]string, len(fields))
	for _, f := range fields {
		m[f.key] = f.value
	}
	return m
}

type field struct {
	key   string
	value string
}

func (v OrchestrationVariables) fields() []field {
	return []field{
		{VarProjectName, v.ProjectName},
		{VarDisplayName, v.DisplayName},
		{VarEnvironment, v.Environment},
		{VarRequestorFirstName, v.RequestorFirstName},
		{VarRequestorLastName, v.RequestorLastName},
		{VarTeamMembers, v.TeamMembers},
		{VarBusinessJustification, v.BusinessJustification},
		{"servicenow_request_number", v.ServiceNowRequestNumber},
		{"requestor", v.Requestor},
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if !isBlank(v) {
			return v
		}
	}
	return ""
}
