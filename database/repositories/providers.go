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

package repositories

import (
	"github.com/l3montree-dev/dashcase/shared"
	"go.uber.org/fx"
)

// Module provides all repository constructors as their interfaces
var Module = fx.Options(
	fx.Provide(fx.Annotate(NewUserRepository, fx.As(new(shared.UserRepository)))),
	fx.Provide(fx.Annotate(NewGroupRepository, fx.As(new(shared.GroupRepository)))),
	fx.Provide(fx.Annotate(NewGroupSubscriptionRepository, fx.As(new(shared.GroupSubscriptionRepository)))),
	fx.Provide(fx.Annotate(NewApplicationRepository, fx.As(new(shared.ApplicationRepository)))),
	fx.Provide(fx.Annotate(NewFeatureRepository, fx.As(new(shared.FeatureRepository)))),
	fx.Provide(fx.Annotate(NewTestCaseRepository, fx.As(new(shared.TestCaseRepository)))),
	fx.Provide(fx.Annotate(NewTestRequestRepository, fx.As(new(shared.TestRequestRepository)))),
	fx.Provide(fx.Annotate(NewPipelineRepository, fx.As(new(shared.PipelineRepository)))),
	fx.Provide(fx.Annotate(NewStatisticsRepository, fx.As(new(shared.StatisticsRepository)))),
	fx.Provide(fx.Annotate(NewIntegrationConfigRepository, fx.As(new(shared.IntegrationConfigRepository)))),
	fx.Provide(fx.Annotate(NewNotificationLogRepository, fx.As(new(shared.NotificationLogRepository)))),
)
