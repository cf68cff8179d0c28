package integrationtestutil

import (
	"testing"

	"github.com/l3montree-dev/dashcase/database/models"
	"github.com/l3montree-dev/dashcase/shared"
	"github.com/l3montree-dev/dashcase/utils"
	"github.com/stretchr/testify/require"
)

type Fixture struct {
	Admin       models.User
	User        models.User
	Group       models.Group
	Application models.Application
	Feature     models.Feature
	TestCase    models.TestCase
}

// CreateFixture inserts one entity of every level of the hierarchy.
func CreateFixture(t *testing.T, db shared.DB) Fixture {
	t.Helper()

	f := Fixture{
		Admin: models.User{
			Email:        "admin@dashcase.dev",
			PasswordHash: "not-a-hash",
			FirstName:    "Ada",
			LastName:     "Admin",
			Role:         models.UserRoleAdmin,
			Status:       models.UserStatusActive,
		},
		User: models.User{
			Email:        "user@dashcase.dev",
			PasswordHash: "not-a-hash",
			FirstName:    "Uma",
			LastName:     "User",
			Role:         models.UserRoleUser,
			Status:       models.UserStatusActive,
		},
	}
	require.NoError(t, db.Create(&f.Admin).Error)
	require.NoError(t, db.Create(&f.User).Error)

	f.Group = models.Group{Name: "Payments"}
	require.NoError(t, db.Create(&f.Group).Error)

	f.Application = models.Application{
		Name:            "Checkout",
		GroupID:         f.Group.ID,
		Status:          models.ApplicationStatusActive,
		GitlabProjectID: utils.Ptr("42"),
	}
	require.NoError(t, db.Create(&f.Application).Error)

	f.Feature = models.Feature{
		Name:          "Card payment",
		ApplicationID: f.Application.ID,
		Status:        models.FeatureStatusProductive,
	}
	require.NoError(t, db.Create(&f.Feature).Error)

	f.TestCase = models.TestCase{
		Name:         "Pay with a valid card",
		FeatureID:    f.Feature.ID,
		ScenarioName: utils.Ptr("Pay with a valid card"),
		Tags:         []string{"smoke"},
	}
	require.NoError(t, db.Create(&f.TestCase).Error)

	return f
}
