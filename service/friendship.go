package service

import (
	"context"
	"net/url"

	"github.com/viant/tripclient/gateway"
)

// Friendships covers user search and friend requests
type Friendships struct {
	gateway *gateway.Gateway
}

// SearchUsers finds verified users who are neither friends nor pending requests
func (f *Friendships) SearchUsers(ctx context.Context, query *Query) (*Page[UserSearchResult], error) {
	return gateway.Get[Page[UserSearchResult]](ctx, f.gateway, "/friendships/search-users", gateway.WithQuery(query.values()), gateway.WithFallback("Failed to search users"))
}

func (f *Friendships) SendRequest(ctx context.Context, addresseeID string) (*FriendRequest, error) {
	body := map[string]string{"addresseeId": addresseeID}
	return gateway.Post[FriendRequest](ctx, f.gateway, "/friendships/send-request", body, gateway.WithFallback("Failed to send friend request"))
}

// Requests lists received or sent requests; kind is RequestsReceived or RequestsSent
func (f *Friendships) Requests(ctx context.Context, kind string, query *Query) (*Page[FriendRequestItem], error) {
	values := query.values()
	values.Set("type", kind)
	return gateway.Get[Page[FriendRequestItem]](ctx, f.gateway, "/friendships/requests", gateway.WithQuery(values), gateway.WithFallback("Failed to get friend requests"))
}

func (f *Friendships) Accept(ctx context.Context, friendshipID string) (*FriendRequest, error) {
	return gateway.Post[FriendRequest](ctx, f.gateway, "/friendships/accept/"+url.PathEscape(friendshipID), nil, gateway.WithFallback("Failed to accept friend request"))
}

func (f *Friendships) Reject(ctx context.Context, friendshipID string) (bool, error) {
	return truth(gateway.Delete[bool](ctx, f.gateway, "/friendships/reject/"+url.PathEscape(friendshipID), gateway.WithFallback("Failed to reject friend request")))
}

func (f *Friendships) Friends(ctx context.Context, query *Query) (*Page[Friend], error) {
	return gateway.Get[Page[Friend]](ctx, f.gateway, "/friendships/my-friends", gateway.WithQuery(query.values()), gateway.WithFallback("Failed to get friends list"))
}

func NewFriendships(g *gateway.Gateway) *Friendships {
	return &Friendships{gateway: g}
}
