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

package accesscontrol

import (
	"fmt"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/l3montree-dev/dashcase/shared"
)

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = r.sub == p.sub && r.obj == p.obj && r.act == p.act
`

var _ shared.AccessControl = &casbinRBAC{}

type casbinRBAC struct {
	enforcer *casbin.SyncedEnforcer
}

func roleSubject(role shared.Role) string {
	return "role::" + string(role)
}

func objectName(object shared.Object) string {
	return "obj::" + string(object)
}

func actionName(action shared.Action) string {
	return "act::" + string(action)
}

// NewCasbinRBAC builds an in-memory enforcer. Policies live in code, there is
// nothing to persist as long as the roles are fixed.
func NewCasbinRBAC() (*casbinRBAC, error) {
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("could not parse rbac model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, fmt.Errorf("could not create enforcer: %w", err)
	}
	return &casbinRBAC{enforcer: enforcer}, nil
}

// NewDefaultRBAC grants the admin role every action on the admin-only objects.
func NewDefaultRBAC() (*casbinRBAC, error) {
	rbac, err := NewCasbinRBAC()
	if err != nil {
		return nil, err
	}
	all := []shared.Action{shared.ActionCreate, shared.ActionRead, shared.ActionUpdate, shared.ActionDelete}
	for _, object := range []shared.Object{shared.ObjectUser, shared.ObjectIntegration, shared.ObjectNotification, shared.ObjectPipeline} {
		if err := rbac.AllowRole(shared.RoleAdmin, object, all); err != nil {
			return nil, err
		}
	}
	return rbac, nil
}

func (c *casbinRBAC) AllowRole(role shared.Role, object shared.Object, action []shared.Action) error {
	policies := make([][]string, len(action))
	for i, ac := range action {
		policies[i] = []string{roleSubject(role), objectName(object), actionName(ac)}
	}

	_, err := c.enforcer.AddPolicies(policies)
	return err
}

func (c *casbinRBAC) IsAllowed(role shared.Role, object shared.Object, action shared.Action) (bool, error) {
	return c.enforcer.Enforce(roleSubject(role), objectName(object), actionName(action))
}
