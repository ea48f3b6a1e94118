package models

import "testing"

func TestIsLeadershipRole(t *testing.T) {
	leaders := []MembershipRole{
		MembershipRolePresident,
		MembershipRoleSecretary,
		MembershipRoleTreasurer,
		MembershipRoleCommittee,
		MembershipRoleAJK,
	}
	for _, role := range leaders {
		if !IsLeadershipRole(role) {
			t.Errorf("IsLeadershipRole(%q) = false, want true", role)
		}
	}

	others := []MembershipRole{MembershipRoleMember, MembershipRoleAdvisor, MembershipRole("president"), ""}
	for _, role := range others {
		if IsLeadershipRole(role) {
			t.Errorf("IsLeadershipRole(%q) = true, want false", role)
		}
	}
}
