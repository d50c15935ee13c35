package authroles

import (
	domainauth "github.com/codekids/academy-api/internal/domain/auth"
)

// StaticRoleMapper maps IdP groups to roles by simple string membership.
// Precedence runs from most to least privileged so a user in several groups
// gets the strongest role. No match yields the empty role, which callers
// must reject; there is no default role.
type StaticRoleMapper struct {
	AdminGroup      string
	SupportGroup    string
	InstructorGroup string
	ParentGroup     string
	StudentGroup    string
}

func (m StaticRoleMapper) Map(groups []string) domainauth.Role {
	rules := []struct {
		group string
		role  domainauth.Role
	}{
		{m.AdminGroup, domainauth.RoleAdmin},
		{m.SupportGroup, domainauth.RoleSupport},
		{m.InstructorGroup, domainauth.RoleInstructor},
		{m.ParentGroup, domainauth.RoleParent},
		{m.StudentGroup, domainauth.RoleStudent},
	}
	for _, rule := range rules {
		if rule.group == "" {
			continue
		}
		for _, g := range groups {
			if g == rule.group {
				return rule.role
			}
		}
	}
	return ""
}
