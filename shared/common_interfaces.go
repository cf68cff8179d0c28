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

package shared

import (
	"context"
	"io"
	"time"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/dtos"
	"github.com/l3montree-dev/dashcase/utils"
	"github.com/labstack/echo/v4"
)

type UserRepository interface {
	utils.Repository[string, models.User, DB]
	FindByEmail(email string) (models.User, error)
	// ReadWithSubscriptions preloads the subscriptions and their groups
	ReadWithSubscriptions(id string) (models.User, error)
	ListPaged(pageInfo PageInfo, search string, filter dtos.UserFilter) (Paged[models.User], error)
	ListActiveAdmins() ([]models.User, error)
	Count() (int64, error)
}

type GroupSubscriptionRepository interface {
	utils.Repository[string, models.GroupSubscription, DB]
	FindByUserAndGroup(userID, groupID string) (models.GroupSubscription, error)
	// ListByUser preloads the group and its active applications
	ListByUser(userID string) ([]models.GroupSubscription, error)
	// ListByGroup preloads the subscribed user
	ListByGroup(groupID string) ([]models.GroupSubscription, error)
	ListActiveSubscriberEmails(groupID string) ([]string, error)
}

type GroupRepository interface {
	utils.Repository[string, models.Group, DB]
	FindByName(name string) (models.Group, error)
	// ReadWithDetails preloads applications ordered by name and the subscriptions with their users
	ReadWithDetails(id string) (models.Group, error)
	// ListPaged preloads the active applications of every group
	ListPaged(pageInfo PageInfo, search string) (Paged[models.Group], error)
	Counts(groupIDs []string) (map[string]dtos.Counts, error)
	HasApplications(id string) (bool, error)
}

type ApplicationRepository interface {
	utils.Repository[string, models.Application, DB]
	FindByNameInGroup(name, groupID string) (models.Application, error)
	ReadWithGroup(id string) (models.Application, error)
	// ReadWithDetails preloads the group and the features ordered by name
	ReadWithDetails(id string) (models.Application, error)
	ListPaged(pageInfo PageInfo, search string, filter dtos.ApplicationFilter) (Paged[models.Application], error)
	ListByGitlabProjectID(gitlabProjectID string) ([]models.Application, error)
	Counts(applicationIDs []string) (map[string]dtos.Counts, error)
	HasFeatures(id string) (bool, error)
}

type FeatureRepository interface {
	utils.Repository[string, models.Feature, DB]
	FindByNameInApplication(name, applicationID string) (models.Feature, error)
	// ReadWithApplication preloads the application and its group
	ReadWithApplication(id string) (models.Feature, error)
	// ReadWithTestCases preloads the application chain and the test cases ordered by name
	ReadWithTestCases(id string) (models.Feature, error)
	ListPaged(pageInfo PageInfo, search string, filter dtos.FeatureFilter) (Paged[models.Feature], error)
	ListByApplication(applicationID string, status *models.FeatureStatus) ([]models.Feature, error)
	Counts(featureIDs []string) (map[string]dtos.Counts, error)
	HasTestCases(id string) (bool, error)
}

type TestCaseRepository interface {
	utils.Repository[string, models.TestCase, DB]
	// ReadWithDetails preloads the feature chain and the ordered steps with their ordered sub steps
	ReadWithDetails(id string) (models.TestCase, error)
	ReadWithFeature(id string) (models.TestCase, error)
	ListPaged(pageInfo PageInfo, search string, filter dtos.TestCaseFilter) (Paged[models.TestCase], error)
	ListByFeature(featureID string, status *models.TestCaseStatus, testCaseType *models.TestCaseType) ([]models.TestCase, error)
	Counts(testCaseIDs []string) (map[string]dtos.Counts, error)
	// FindByScenarioName matches the scenario name case-insensitively
	FindByScenarioName(tx DB, scenarioName string) (models.TestCase, error)
	FindByID(tx DB, id string) (models.TestCase, error)
	ListSteps(testCaseID string) ([]models.GherkinStep, error)
	// ReplaceSteps removes every step of the test case and inserts the given ones
	ReplaceSteps(tx DB, testCaseID string, steps []models.GherkinStep) error
}

type TestRequestRepository interface {
	utils.Repository[string, models.TestRequest, DB]
	// ReadWithDetails preloads application, group, requester, assignee and the generated test case with its feature
	ReadWithDetails(id string) (models.TestRequest, error)
	ListPaged(pageInfo PageInfo, search string, filter dtos.TestRequestFilter) (Paged[models.TestRequest], error)
	ListRecentByRequester(userID string, limit int) ([]models.TestRequest, error)
	CountByRequester(userID string) (int64, error)
	StepCounts(testCaseIDs []string) (map[string]int64, error)
}

type PipelineRepository interface {
	utils.Repository[string, models.GitlabPipeline, DB]
	FindByProjectAndPipeline(tx DB, gitlabProjectID, gitlabPipelineID string) (models.GitlabPipeline, error)
	// CreateIfAbsent inserts the pipeline unless one with the same project and pipeline id exists
	CreateIfAbsent(tx DB, pipeline *models.GitlabPipeline) error
	// UpsertResult inserts the result or updates the given columns of the existing (test case, pipeline) result
	UpsertResult(tx DB, result *models.TestCasePipelineResult, updateColumns []string) error
	HasFailedResults(tx DB, pipelineID string) (bool, error)
	// ReadWithResults preloads the results newest first with their test case, feature and application
	ReadWithResults(id string) (models.GitlabPipeline, error)
	// ListResults returns the results oldest first with their test case and feature
	ListResults(pipelineID string) ([]models.TestCasePipelineResult, error)
	ListPaged(pageInfo PageInfo, filter dtos.PipelineFilter) (Paged[models.GitlabPipeline], error)
	Counts(pipelineIDs []string) (map[string]dtos.Counts, error)
	// LatestResults maps every given test case to its newest result, the pipeline is preloaded
	LatestResults(testCaseIDs []string) (map[string]models.TestCasePipelineResult, error)
	ListResultsByTestCase(testCaseID string, limit int) ([]models.TestCasePipelineResult, error)
}

type StatisticsRepository interface {
	CountGroups() (int64, error)
	CountActiveApplications() (int64, error)
	CountFeatures() (int64, error)
	CountTestCases() (int64, error)
	CountTestRequests(status *models.TestRequestStatus) (int64, error)
	CountPipelinesSince(since time.Time) (int64, error)

	// TestCasesGroupedBy groups by one of status, type or priority
	TestCasesGroupedBy(column string, filter dtos.TestCaseFilter) ([]dtos.StatusCount, error)
	TestRequestsByStatus(applicationID *string) ([]dtos.StatusCount, error)
	FeaturesByStatus(applicationID string) ([]dtos.StatusCount, error)
	PipelinesByStatusSince(since time.Time) ([]dtos.StatusCount, error)
	ResultsByStatusSince(since time.Time) ([]dtos.StatusCount, error)

	RecentTestCases(limit int) ([]models.TestCase, error)
	RecentTestRequests(limit int) ([]models.TestRequest, error)
	RecentPipelines(limit int, since *time.Time) ([]models.GitlabPipeline, error)
}

type IntegrationConfigRepository interface {
	utils.Repository[string, models.IntegrationConfig, DB]
	FindByType(integrationType models.IntegrationType) (models.IntegrationConfig, error)
	UpsertByType(config *models.IntegrationConfig) error
	DeleteByType(integrationType models.IntegrationType) error
}

type NotificationLogRepository interface {
	utils.Repository[string, models.NotificationLog, DB]
	ListPaged(pageInfo PageInfo, filter dtos.NotificationLogFilter) (Paged[models.NotificationLog], error)
}

type AuthService interface {
	Login(email, password string) (string, models.User, error)
	Register(req dtos.RegisterRequest) (string, models.User, error)
	// VerifyToken resolves the active user the token was issued for
	VerifyToken(token string) (models.User, error)
	ChangePassword(user models.User, currentPassword, newPassword string) error
	IssueToken(userID string) (string, error)
	HashPassword(password string) (string, error)
}

type UserService interface {
	Create(req dtos.UserCreateRequest) (models.User, error)
	Update(id string, req dtos.UserPatchRequest) (models.User, error)
	Delete(id string) error
	Subscribe(userID, groupID string) (models.GroupSubscription, error)
	Unsubscribe(userID, groupID string) error
}

type GroupService interface {
	Create(req dtos.GroupCreateRequest) (models.Group, error)
	Update(id string, req dtos.GroupPatchRequest) (models.Group, error)
	Delete(id string) error
}

type ApplicationService interface {
	Create(req dtos.ApplicationCreateRequest) (models.Application, error)
	Update(id string, req dtos.ApplicationPatchRequest) (models.Application, error)
	Delete(id string) error
	Stats(id string) (dtos.ApplicationStatsDTO, error)
}

type FeatureService interface {
	Create(req dtos.FeatureCreateRequest) (models.Feature, error)
	Update(id string, req dtos.FeaturePatchRequest) (models.Feature, error)
	Delete(id string) error
}

type TestCaseService interface {
	Create(req dtos.TestCaseCreateRequest) (models.TestCase, error)
	Update(id string, req dtos.TestCasePatchRequest) (models.TestCase, error)
	Delete(id string) error
	UpdateSteps(id string, steps []dtos.StepInput) ([]models.GherkinStep, error)
}

type TestRequestService interface {
	Create(ctx context.Context, requester models.User, req dtos.TestRequestCreateRequest) (models.TestRequest, error)
	Update(id string, req dtos.TestRequestPatchRequest) (models.TestRequest, error)
	UpdateStatus(ctx context.Context, id string, req dtos.TestRequestStatusRequest) (models.TestRequest, error)
	Delete(id string) error
}

type PipelineService interface {
	RegisterResults(ctx context.Context, req dtos.RegisterPipelineRequest) (models.GitlabPipeline, error)
	// SyncProject pulls the recent pipelines of a gitlab project and reconciles them without results
	SyncProject(ctx context.Context, gitlabProjectID string) (int, error)
}

type StatisticsService interface {
	GetDashboardStats(ctx context.Context) (dtos.DashboardStatsDTO, error)
	GetActivity(ctx context.Context, limit int) (dtos.ActivityDTO, error)
	GetTestCaseStats(ctx context.Context, filter dtos.TestCaseFilter) (dtos.TestCaseStatsDTO, error)
	GetPipelineStats(ctx context.Context, days int) (dtos.PipelineStatsDTO, error)
}

type IntegrationService interface {
	Upsert(ctx context.Context, integrationType models.IntegrationType, req dtos.IntegrationConfigRequest) (models.IntegrationConfig, error)
	Delete(ctx context.Context, integrationType models.IntegrationType) error
	// GitlabClient returns a client for the active gitlab integration
	GitlabClient() (GitlabClientFacade, error)
	// ListenForChanges drops cached clients whenever any instance writes an integration
	ListenForChanges(ctx context.Context) error
}

// NotificationService hands notifications to the dispatcher. It never blocks the caller.
type NotificationService interface {
	Notify(ctx context.Context, notificationType models.NotificationType, groupID *string, data map[string]any)
}

type NotificationDispatcher interface {
	Dispatch(ctx context.Context, notificationType models.NotificationType, groupID *string, data map[string]any) (models.NotificationLog, error)
	Start(ctx context.Context) error
}

type Mailer interface {
	Configured() bool
	Send(ctx context.Context, to []string, subject, htmlBody string) error
}

type FileStorage interface {
	// Save stores the content under dir/name and returns the stored path relative to the storage root
	Save(dir, name string, content io.Reader) (string, error)
}

type UploadService interface {
	// SaveImage stores the content when it is an image and returns its public url
	SaveImage(dir string, content io.Reader) (string, error)
}

type SeedService interface {
	Seed(ctx context.Context, fixture []byte) (SeedResult, error)
}

type SeedResult struct {
	Users        int
	Groups       int
	Applications int
	Features     int
	TestCases    int
}

type GitlabPipelineInfo struct {
	ID        string
	Ref       string
	Status    models.PipelineStatus
	WebURL    string
	CreatedAt time.Time
}

type GitlabClientFacade interface {
	ListProjectPipelines(ctx context.Context, projectID string, limit int) ([]GitlabPipelineInfo, error)
}

type GitlabClientFactory interface {
	FromAccessToken(accessToken string, baseURL string) (GitlabClientFacade, error)
}

type AccessControl interface {
	AllowRole(role Role, object Object, action []Action) error
	IsAllowed(subject Role, object Object, action Action) (bool, error)
}

type RBACMiddleware = func(obj Object, act Action) echo.MiddlewareFunc

type Role string

const (
	RoleAdmin Role = Role(models.UserRoleAdmin)
	RoleUser  Role = Role(models.UserRoleUser)
)

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

type Object string

const (
	ObjectUser         Object = "user"
	ObjectIntegration  Object = "integration"
	ObjectNotification Object = "notification"
	ObjectPipeline     Object = "pipeline"
)
