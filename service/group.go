package service

import (
	"context"
	"net/url"

	"github.com/viant/tripclient/gateway"
)

// Groups covers trip group management
type Groups struct {
	gateway *gateway.Gateway
}

func (g *Groups) Create(ctx context.Context, request *CreateGroupRequest) (*Group, error) {
	return gateway.Post[Group](ctx, g.gateway, "/groups", request, gateway.WithFallback("Failed to create group"))
}

// Detail returns a group with its members
func (g *Groups) Detail(ctx context.Context, groupID string) (*GroupDetail, error) {
	return gateway.Get[GroupDetail](ctx, g.gateway, groupPath(groupID), gateway.WithFallback("Failed to get group details"))
}

// Update changes group settings; only the leader may call it
func (g *Groups) Update(ctx context.Context, groupID string, request *UpdateGroupRequest) (*Group, error) {
	return gateway.Put[Group](ctx, g.gateway, groupPath(groupID), request, gateway.WithFallback("Failed to update group"))
}

func (g *Groups) Delete(ctx context.Context, groupID string) (bool, error) {
	return truth(gateway.Delete[bool](ctx, g.gateway, groupPath(groupID), gateway.WithFallback("Failed to delete group")))
}

// MyGroups lists groups the user belongs to
func (g *Groups) MyGroups(ctx context.Context, query *Query) (*Page[Group], error) {
	return gateway.Get[Page[Group]](ctx, g.gateway, "/groups/my-groups", gateway.WithQuery(query.values()), gateway.WithFallback("Failed to get groups"))
}

func groupPath(groupID string) string {
	return "/groups/" + url.PathEscape(groupID)
}

func NewGroups(g *gateway.Gateway) *Groups {
	return &Groups{gateway: g}
}
