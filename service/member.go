package service

import (
	"context"
	"net/url"

	"github.com/viant/tripclient/gateway"
)

// Members covers group membership and invitations
type Members struct {
	gateway *gateway.Gateway
}

func (m *Members) Invite(ctx context.Context, groupID string, request *InviteMemberRequest) (*GroupMember, error) {
	return gateway.Post[GroupMember](ctx, m.gateway, membersPath(groupID)+"/invite", request, gateway.WithFallback("Failed to invite member"))
}

func (m *Members) AcceptInvitation(ctx context.Context, groupID string) (*GroupMember, error) {
	return gateway.Post[GroupMember](ctx, m.gateway, membersPath(groupID)+"/accept-invitation", nil, gateway.WithFallback("Failed to accept invitation"))
}

func (m *Members) RejectInvitation(ctx context.Context, groupID string) (bool, error) {
	return truth(gateway.Delete[bool](ctx, m.gateway, membersPath(groupID)+"/reject-invitation", gateway.WithFallback("Failed to reject invitation")))
}

// Remove removes userID from the group; only the leader may call it
func (m *Members) Remove(ctx context.Context, groupID, userID string) (bool, error) {
	return truth(gateway.Delete[bool](ctx, m.gateway, membersPath(groupID)+"/"+url.PathEscape(userID), gateway.WithFallback("Failed to remove member")))
}

func (m *Members) Leave(ctx context.Context, groupID string) (bool, error) {
	return truth(gateway.Delete[bool](ctx, m.gateway, membersPath(groupID)+"/leave", gateway.WithFallback("Failed to leave group")))
}

func membersPath(groupID string) string {
	return groupPath(groupID) + "/members"
}

func NewMembers(g *gateway.Gateway) *Members {
	return &Members{gateway: g}
}
