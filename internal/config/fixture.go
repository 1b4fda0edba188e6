package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/shaiso/ritm-launch/internal/domain"
)

// Fixture — запись RITM и её catalog variables для локального прогона.
//
// Формат файла (YAML; JSON тоже подходит, так как это подмножество YAML):
//
//	record:
//	  sys_id: 88d79d82478c3e50292cc82f316d43dc
//	  number: RITM0010022
//	  state: "2"
//	  request:
//	    number: REQ0010051
//	    requested_for:
//	      user_name: admin
//	variables:
//	  project_name: e2e-test-project
//	  environment: development
type Fixture struct {
	Record    domain.ChangeRequestRecord `yaml:"record"`
	Variables domain.CatalogVariables    `yaml:"variables"`
}

// DefaultFixture возвращает встроенный fixture (RITM0010022 в состоянии "2").
func DefaultFixture() *Fixture {
	return &Fixture{
		Record: domain.ChangeRequestRecord{
			SysID:       "88d79d82478c3e50292cc82f316d43dc",
			Number:      "RITM0010022",
			State:       domain.StateInProcess,
			CatalogItem: "1a3b56b1470cfa50292cc82f316d4378",
			Request: domain.RequestRef{
				Number:       "REQ0010051",
				RequestedFor: domain.UserRef{UserName: "admin"},
			},
		},
		Variables: domain.CatalogVariables{
			domain.VarProjectName:           "e2e-test-project",
			domain.VarDisplayName:           "E2E Test Project",
			domain.VarEnvironment:           "development",
			domain.VarRequestorFirstName:    "E2E",
			domain.VarRequestorLastName:     "Tester",
			domain.VarTeamMembers:           "e2e-test-team",
			domain.VarBusinessJustification: "End-to-end integration testing",
		},
	}
}

// ParseFixture разбирает fixture из YAML/JSON.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	if f.Variables == nil {
		f.Variables = domain.CatalogVariables{}
	}
	return &f, nil
}

// LoadFixture читает fixture из файла. Пустой path — встроенный fixture.
func LoadFixture(path string) (*Fixture, error) {
	if path == "" {
		return DefaultFixture(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	return ParseFixture(data)
}
