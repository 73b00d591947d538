package authz

import (
	"github.com/furniture-shop/internal/constants"
)

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role     string
	Inherits []string
	Policies []Policy
}

// BuiltinRoleSeeds 系统预置角色矩阵
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: constants.RoleCustomer,
			Policies: []Policy{
				{Object: "/auth/change-password", Action: "POST"},
				{Object: "/auth/change-username", Action: "POST"},
				{Object: "/orders", Action: "POST"},
				{Object: "/shipping-info", Action: "POST"},
				{Object: "/customer/*", Action: "GET"},
			},
		},
		{
			Role:     constants.RoleAdmin,
			Inherits: []string{constants.RoleCustomer},
			Policies: []Policy{
				{Object: "/admin/*", Action: "GET"},
				{Object: "/products", Action: "POST"},
				{Object: "/products/:id", Action: "PUT"},
				{Object: "/products/:id", Action: "DELETE"},
				{Object: "/products/:id/archive", Action: "PATCH"},
				{Object: "/products/:id/unarchive", Action: "PATCH"},
				{Object: "/orders", Action: "GET"},
				{Object: "/orders/:id/status", Action: "PUT"},
				{Object: "/orders/:id/status-history", Action: "GET"},
				{Object: "/subscribers", Action: "GET"},
				{Object: "/subscribers/:id", Action: "DELETE"},
			},
		},
	}
}

// BootstrapBuiltinRoles 初始化预置角色与默认策略（幂等）
// 预置角色的策略以矩阵为准，库中多出的旧策略会被撤销。
func (s *Service) BootstrapBuiltinRoles() error {
	for _, seed := range BuiltinRoleSeeds() {
		for _, parent := range seed.Inherits {
			if err := s.LinkRole(seed.Role, parent); err != nil {
				return err
			}
		}
		wanted := make(map[Policy]struct{}, len(seed.Policies))
		for _, policy := range seed.Policies {
			if err := s.GrantRolePolicy(seed.Role, policy.Object, policy.Action); err != nil {
				return err
			}
			wanted[Policy{Object: NormalizeObject(policy.Object), Action: NormalizeAction(policy.Action)}] = struct{}{}
		}
		if err := s.pruneRolePolicies(seed.Role, wanted); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) pruneRolePolicies(role string, wanted map[Policy]struct{}) error {
	current, err := s.GetRolePolicies(role)
	if err != nil {
		return err
	}
	for _, policy := range current {
		if _, ok := wanted[Policy{Object: policy.Object, Action: policy.Action}]; ok {
			continue
		}
		if err := s.RevokeRolePolicy(role, policy.Object, policy.Action); err != nil {
			return err
		}
	}
	return nil
}
