package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/tripclient/auth/credential"
	"github.com/viant/tripclient/auth/mock"
	"github.com/viant/tripclient/auth/transport"
	"github.com/viant/tripclient/gateway"
	"go.uber.org/zap"
)

type fixture struct {
	server *mock.HTTPTestServer
	store  *credential.Store
	g      *gateway.Gateway
}

func newFixture(t *testing.T) *fixture {
	server, err := mock.NewHTTPTestServer()
	require.NoError(t, err)
	t.Cleanup(server.Close)
	store := credential.NewMemoryStore()
	rt, err := transport.New(transport.WithStore(store), transport.WithRefreshURL(server.BaseURL+"/auth/refresh-token"))
	require.NoError(t, err)
	return &fixture{server: server, store: store, g: gateway.New(server.BaseURL, gateway.WithClient(&http.Client{Transport: rt}))}
}

func (f *fixture) login(t *testing.T) {
	auth := NewAuth(f.g, f.store, zap.NewNop())
	_, err := auth.Login(context.Background(), &LoginRequest{Email: f.server.Email, Password: f.server.Password})
	require.NoError(t, err)
}

func TestAuth_Login(t *testing.T) {
	f := newFixture(t)
	auth := NewAuth(f.g, f.store, zap.NewNop())
	ctx := context.Background()

	_, err := auth.Login(ctx, &LoginRequest{Email: f.server.Email, Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, "Invalid email or password", err.Error())
	assert.False(t, auth.IsAuthenticated(ctx))

	tokens, err := auth.Login(ctx, &LoginRequest{Email: f.server.Email, Password: f.server.Password})
	require.NoError(t, err)
	assert.True(t, auth.IsAuthenticated(ctx))
	pair, err := f.store.Pair(ctx)
	require.NoError(t, err)
	assert.Equal(t, tokens.AccessToken, pair.AccessToken)
	assert.Equal(t, tokens.RefreshToken, pair.RefreshToken)

	user, err := auth.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, f.server.User.Email, user.Email)
	assert.Equal(t, 0, f.server.RefreshCalls())
}

func TestAuth_Logout(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)
		auth := NewAuth(f.g, f.store, zap.NewNop())
		require.NoError(t, auth.Logout(context.Background()))
		assert.False(t, auth.IsAuthenticated(context.Background()))
	})
	t.Run("api failure still clears", func(t *testing.T) {
		f := newFixture(t)
		f.login(t)
		f.server.RejectAll = true
		auth := NewAuth(f.g, f.store, zap.NewNop())
		require.NoError(t, auth.Logout(context.Background()))
		assert.False(t, auth.IsAuthenticated(context.Background()))
	})
}

func TestAuth_Registration(t *testing.T) {
	f := newFixture(t)
	auth := NewAuth(f.g, f.store, zap.NewNop())
	ctx := context.Background()

	user, err := auth.Register(ctx, &RegisterRequest{Email: "new@example.com", Password: "Passw0rd!", Username: "newbie"})
	require.NoError(t, err)
	assert.Equal(t, "newbie", user.Username)

	_, err = auth.Register(ctx, &RegisterRequest{Email: f.server.Email, Password: "Passw0rd!", Username: "dup"})
	require.Error(t, err)
	assert.Equal(t, "Email is already registered", err.Error())

	message, err := auth.VerifyOTP(ctx, &VerifyOTPRequest{Email: "new@example.com", OTP: "123456"})
	require.NoError(t, err)
	assert.Equal(t, "Email verified successfully", message)

	message, err = auth.ResendOTP(ctx, "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, "OTP sent", message)
}

func TestAccount(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.server.Handle(http.MethodPut, "/account/me", func(w http.ResponseWriter, r *http.Request, subject string) {
		update := &ProfileUpdate{}
		_ = json.NewDecoder(r.Body).Decode(update)
		user := &User{ID: subject, Username: *update.Username}
		mock.WriteData(w, user)
	})
	f.server.Handle(http.MethodDelete, "/account/me", func(w http.ResponseWriter, r *http.Request, subject string) {
		mock.WriteFailure(w, http.StatusOK, "")
	})
	account := NewAccount(f.g)
	ctx := context.Background()

	me, err := account.Me(ctx)
	require.NoError(t, err)
	assert.Equal(t, "42", me.ID)

	name := "globetrotter"
	updated, err := account.UpdateProfile(ctx, &ProfileUpdate{Username: &name})
	require.NoError(t, err)
	assert.Equal(t, "globetrotter", updated.Username)

	_, err = account.Delete(ctx)
	require.Error(t, err)
	assert.Equal(t, "Failed to delete account", err.Error())
}

func TestGroups(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	var query string
	f.server.Handle(http.MethodGet, "/groups/my-groups", func(w http.ResponseWriter, r *http.Request, subject string) {
		query = r.URL.RawQuery
		mock.WriteData(w, &Page[Group]{Items: []Group{{ID: "g1", Name: "Alps", MemberCount: 3}}, CurrentPage: 1, TotalPages: 1, PageSize: 10, TotalCount: 1})
	})
	f.server.Handle(http.MethodGet, "/groups/trip 2024", func(w http.ResponseWriter, r *http.Request, subject string) {
		mock.WriteData(w, &GroupDetail{ID: "trip 2024", Name: "Summer", Members: []*GroupMember{{UserID: subject, Role: RoleLeader, Status: MemberActive}}})
	})
	f.server.Handle(http.MethodPost, "/groups", func(w http.ResponseWriter, r *http.Request, subject string) {
		mock.WriteFailure(w, http.StatusOK, "")
	})
	groups := NewGroups(f.g)
	ctx := context.Background()

	ascending := false
	page, err := groups.MyGroups(ctx, &Query{PageNumber: 1, PageSize: 10, SortBy: "createdAt", Ascending: &ascending})
	require.NoError(t, err)
	assert.Equal(t, "ascending=false&pageNumber=1&pageSize=10&sortBy=createdAt", query)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Alps", page.Items[0].Name)

	_, err = groups.MyGroups(ctx, nil)
	require.NoError(t, err)
	assert.Equal(t, "", query)

	detail, err := groups.Detail(ctx, "trip 2024")
	require.NoError(t, err)
	require.Len(t, detail.Members, 1)
	assert.Equal(t, RoleLeader, detail.Members[0].Role)

	_, err = groups.Create(ctx, &CreateGroupRequest{Name: "Alps"})
	require.Error(t, err)
	assert.Equal(t, "Failed to create group", err.Error())

	_, err = groups.Delete(ctx, "unknown")
	var statusErr *gateway.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestMembers(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.server.Handle(http.MethodPost, "/groups/g1/members/invite", func(w http.ResponseWriter, r *http.Request, subject string) {
		request := &InviteMemberRequest{}
		_ = json.NewDecoder(r.Body).Decode(request)
		mock.WriteData(w, &GroupMember{UserID: request.UserID, Role: RoleMember, Status: MemberPending})
	})
	ok := true
	for _, path := range []string{"/groups/g1/members/leave", "/groups/g1/members/u7", "/groups/g1/members/reject-invitation"} {
		f.server.Handle(http.MethodDelete, path, func(w http.ResponseWriter, r *http.Request, subject string) {
			mock.WriteData(w, &ok)
		})
	}
	members := NewMembers(f.g)
	ctx := context.Background()

	member, err := members.Invite(ctx, "g1", &InviteMemberRequest{UserID: "u7"})
	require.NoError(t, err)
	assert.Equal(t, MemberPending, member.Status)

	removed, err := members.Remove(ctx, "g1", "u7")
	require.NoError(t, err)
	assert.True(t, removed)

	left, err := members.Leave(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, left)

	rejected, err := members.RejectInvitation(ctx, "g1")
	require.NoError(t, err)
	assert.True(t, rejected)

	_, err = members.AcceptInvitation(ctx, "g1")
	assert.Error(t, err)
}

func TestFriendships(t *testing.T) {
	f := newFixture(t)
	f.login(t)
	f.server.Handle(http.MethodGet, "/friendships/requests", func(w http.ResponseWriter, r *http.Request, subject string) {
		items := []FriendRequestItem{{FriendshipID: "f1", UserID: "u7", Username: r.URL.Query().Get("type")}}
		mock.WriteData(w, &Page[FriendRequestItem]{Items: items, TotalCount: 1})
	})
	f.server.Handle(http.MethodPost, "/friendships/send-request", func(w http.ResponseWriter, r *http.Request, subject string) {
		body := map[string]string{}
		_ = json.NewDecoder(r.Body).Decode(&body)
		mock.WriteData(w, &FriendRequest{ID: "f2", AddresseeID: body["addresseeId"], Status: "Pending"})
	})
	f.server.Handle(http.MethodGet, "/friendships/my-friends", func(w http.ResponseWriter, r *http.Request, subject string) {
		mock.WriteFailure(w, http.StatusOK, "Friend list unavailable")
	})
	friendships := NewFriendships(f.g)
	ctx := context.Background()

	page, err := friendships.Requests(ctx, RequestsSent, &Query{PageSize: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, RequestsSent, page.Items[0].Username)

	request, err := friendships.SendRequest(ctx, "u9")
	require.NoError(t, err)
	assert.Equal(t, "u9", request.AddresseeID)

	_, err = friendships.Friends(ctx, nil)
	require.Error(t, err)
	assert.Equal(t, "Friend list unavailable", err.Error())

	_, err = friendships.Accept(ctx, "f1")
	assert.Error(t, err)
}
