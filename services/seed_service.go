// Copyright (C) 2025 timbastin
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/utils"
	"gopkg.in/yaml.v3"
)

type SeedFixture struct {
	Users  []SeedUser  `yaml:"users"`
	Groups []SeedGroup `yaml:"groups"`
}

type SeedUser struct {
	Email     string          `yaml:"email"`
	Password  string          `yaml:"password"`
	FirstName string          `yaml:"firstName"`
	LastName  string          `yaml:"lastName"`
	Role      models.UserRole `yaml:"role"`
	// Groups lists the names of the groups the user subscribes to
	Groups []string `yaml:"groups"`
}

type SeedGroup struct {
	Name         string            `yaml:"name"`
	Description  string            `yaml:"description"`
	Applications []SeedApplication `yaml:"applications"`
}

type SeedApplication struct {
	Name            string        `yaml:"name"`
	Description     string        `yaml:"description"`
	GitlabProjectID string        `yaml:"gitlabProjectId"`
	Features        []SeedFeature `yaml:"features"`
}

type SeedFeature struct {
	Name            string               `yaml:"name"`
	Description     string               `yaml:"description"`
	FeatureFilePath string               `yaml:"featureFilePath"`
	Status          models.FeatureStatus `yaml:"status"`
	TestCases       []SeedTestCase       `yaml:"testCases"`
}

type SeedTestCase struct {
	Name         string                  `yaml:"name"`
	Description  string                  `yaml:"description"`
	ScenarioName string                  `yaml:"scenarioName"`
	Type         models.TestCaseType     `yaml:"type"`
	Priority     models.TestCasePriority `yaml:"priority"`
	Status       models.TestCaseStatus   `yaml:"status"`
	Tags         []string                `yaml:"tags"`
	Steps        []SeedStep              `yaml:"steps"`
}

type SeedStep struct {
	Type     models.GherkinStepType `yaml:"type"`
	Text     string                 `yaml:"text"`
	SubSteps []string               `yaml:"subSteps"`
}

// seedService creates every fixture entity that does not exist yet. Existing
// entities are matched by their natural key and left untouched.
type seedService struct {
	userRepository        shared.UserRepository
	groupRepository       shared.GroupRepository
	applicationRepository shared.ApplicationRepository
	featureRepository     shared.FeatureRepository
	testCaseRepository    shared.TestCaseRepository
	subscriptionRepo      shared.GroupSubscriptionRepository

	userService        shared.UserService
	groupService       shared.GroupService
	applicationService shared.ApplicationService
	featureService     shared.FeatureService
	testCaseService    shared.TestCaseService
}

func NewSeedService(
	userRepository shared.UserRepository,
	groupRepository shared.GroupRepository,
	applicationRepository shared.ApplicationRepository,
	featureRepository shared.FeatureRepository,
	testCaseRepository shared.TestCaseRepository,
	subscriptionRepository shared.GroupSubscriptionRepository,
	userService shared.UserService,
	groupService shared.GroupService,
	applicationService shared.ApplicationService,
	featureService shared.FeatureService,
	testCaseService shared.TestCaseService,
) *seedService {
	return &seedService{
		userRepository:        userRepository,
		groupRepository:       groupRepository,
		applicationRepository: applicationRepository,
		featureRepository:     featureRepository,
		testCaseRepository:    testCaseRepository,
		subscriptionRepo:      subscriptionRepository,
		userService:           userService,
		groupService:          groupService,
		applicationService:    applicationService,
		featureService:        featureService,
		testCaseService:       testCaseService,
	}
}

func ParseSeedFixture(fixture []byte) (SeedFixture, error) {
	var parsed SeedFixture
	if err := yaml.Unmarshal(fixture, &parsed); err != nil {
		return SeedFixture{}, fmt.Errorf("could not parse seed fixture: %w", err)
	}
	return parsed, nil
}

func (s *seedService) Seed(ctx context.Context, fixture []byte) (shared.SeedResult, error) {
	parsed, err := ParseSeedFixture(fixture)
	if err != nil {
		return shared.SeedResult{}, err
	}

	result := shared.SeedResult{}
	groupIDs := make(map[string]string, len(parsed.Groups))
	for _, g := range parsed.Groups {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		group, created, err := s.seedGroup(g)
		if err != nil {
			return result, err
		}
		if created {
			result.Groups++
		}
		groupIDs[group.Name] = group.ID

		for _, a := range g.Applications {
			if err := s.seedApplication(group.ID, a, &result); err != nil {
				return result, err
			}
		}
	}

	for _, u := range parsed.Users {
		user, created, err := s.seedUser(u)
		if err != nil {
			return result, err
		}
		if created {
			result.Users++
		}
		for _, groupName := range u.Groups {
			groupID, ok := groupIDs[groupName]
			if !ok {
				return result, fmt.Errorf("user %s subscribes to unknown group %s", u.Email, groupName)
			}
			if _, err := s.subscriptionRepo.FindByUserAndGroup(user.ID, groupID); err == nil {
				continue
			}
			if _, err := s.userService.Subscribe(user.ID, groupID); err != nil {
				return result, fmt.Errorf("could not subscribe %s to %s: %w", u.Email, groupName, err)
			}
		}
	}

	slog.Info("seed finished", "users", result.Users, "groups", result.Groups, "applications", result.Applications, "features", result.Features, "testCases", result.TestCases)
	return result, nil
}

func (s *seedService) seedUser(u SeedUser) (models.User, bool, error) {
	existing, err := s.userRepository.FindByEmail(models.NormalizeEmail(u.Email))
	if err == nil {
		return existing, false, nil
	}
	if !shared.IsNotFound(err) {
		return models.User{}, false, err
	}
	user, err := s.userService.Create(dtos.UserCreateRequest{
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	})
	if err != nil {
		return models.User{}, false, fmt.Errorf("could not seed user %s: %w", u.Email, err)
	}
	return user, true, nil
}

func (s *seedService) seedGroup(g SeedGroup) (models.Group, bool, error) {
	existing, err := s.groupRepository.FindByName(g.Name)
	if err == nil {
		return existing, false, nil
	}
	if !shared.IsNotFound(err) {
		return models.Group{}, false, err
	}
	group, err := s.groupService.Create(dtos.GroupCreateRequest{
		Name:        g.Name,
		Description: utils.EmptyThenNil(g.Description),
	})
	if err != nil {
		return models.Group{}, false, fmt.Errorf("could not seed group %s: %w", g.Name, err)
	}
	return group, true, nil
}

func (s *seedService) seedApplication(groupID string, a SeedApplication, result *shared.SeedResult) error {
	app, err := s.applicationRepository.FindByNameInGroup(a.Name, groupID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return err
		}
		app, err = s.applicationService.Create(dtos.ApplicationCreateRequest{
			Name:            a.Name,
			Description:     utils.EmptyThenNil(a.Description),
			GroupID:         groupID,
			GitlabProjectID: utils.EmptyThenNil(a.GitlabProjectID),
		})
		if err != nil {
			return fmt.Errorf("could not seed application %s: %w", a.Name, err)
		}
		result.Applications++
	}

	for _, f := range a.Features {
		if err := s.seedFeature(app.ID, f, result); err != nil {
			return err
		}
	}
	return nil
}

func (s *seedService) seedFeature(applicationID string, f SeedFeature, result *shared.SeedResult) error {
	feature, err := s.featureRepository.FindByNameInApplication(f.Name, applicationID)
	if err != nil {
		if !shared.IsNotFound(err) {
			return err
		}
		feature, err = s.featureService.Create(dtos.FeatureCreateRequest{
			Name:            f.Name,
			Description:     utils.EmptyThenNil(f.Description),
			FeatureFilePath: utils.EmptyThenNil(f.FeatureFilePath),
			Status:          f.Status,
			ApplicationID:   applicationID,
		})
		if err != nil {
			return fmt.Errorf("could not seed feature %s: %w", f.Name, err)
		}
		result.Features++
	}

	existing, err := s.testCaseRepository.ListByFeature(feature.ID, nil, nil)
	if err != nil {
		return err
	}
	for _, tc := range f.TestCases {
		if utils.Any(existing, func(e models.TestCase) bool { return e.Name == tc.Name }) {
			continue
		}
		if _, err := s.testCaseService.Create(seedTestCaseToRequest(feature.ID, tc)); err != nil {
			return fmt.Errorf("could not seed test case %s: %w", tc.Name, err)
		}
		result.TestCases++
	}
	return nil
}

func seedTestCaseToRequest(featureID string, tc SeedTestCase) dtos.TestCaseCreateRequest {
	steps := utils.Map(tc.Steps, func(step SeedStep) dtos.StepInput {
		return dtos.StepInput{
			Type: step.Type,
			Text: step.Text,
			SubSteps: utils.Map(step.SubSteps, func(text string) dtos.SubStepInput {
				return dtos.SubStepInput{Text: text}
			}),
		}
	})
	return dtos.TestCaseCreateRequest{
		Name:         tc.Name,
		Description:  utils.EmptyThenNil(tc.Description),
		Type:         tc.Type,
		Priority:     tc.Priority,
		Status:       tc.Status,
		FeatureID:    featureID,
		Tags:         tc.Tags,
		ScenarioName: utils.EmptyThenNil(tc.ScenarioName),
		Steps:        steps,
	}
}
