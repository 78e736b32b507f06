package service

import (
	"net/url"
	"strconv"
)

// User represents an account profile
type User struct {
	ID               string  `json:"id"`
	Username         string  `json:"username"`
	Email            string  `json:"email"`
	AvatarURL        *string `json:"avatarUrl"`
	Gender           bool    `json:"gender"`
	PaymentQRCodeURL *string `json:"paymentQrCodeUrl"`
	IsEmailVerified  bool    `json:"isEmailVerified"`
	CreatedAt        string  `json:"createdAt"`
}

// ProfileUpdate holds the profile fields to change; nil fields are left untouched
type ProfileUpdate struct {
	Username         *string `json:"username,omitempty"`
	AvatarURL        *string `json:"avatarUrl,omitempty"`
	Gender           *bool   `json:"gender,omitempty"`
	PaymentQRCodeURL *string `json:"paymentQrCodeUrl,omitempty"`
}

type AuthTokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
	Gender   bool   `json:"gender"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Page represents one page of a paginated list
type Page[T any] struct {
	Items       []T  `json:"items"`
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	PageSize    int  `json:"pageSize"`
	TotalCount  int  `json:"totalCount"`
	HasPrevious bool `json:"hasPrevious"`
	HasNext     bool `json:"hasNext"`
}

// Query holds list parameters; zero values are not sent
type Query struct {
	PageNumber int
	PageSize   int
	SearchTerm string
	SortBy     string
	Ascending  *bool
}

func (q *Query) values() url.Values {
	ret := url.Values{}
	if q == nil {
		return ret
	}
	if q.PageNumber > 0 {
		ret.Set("pageNumber", strconv.Itoa(q.PageNumber))
	}
	if q.PageSize > 0 {
		ret.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	if q.SearchTerm != "" {
		ret.Set("searchTerm", q.SearchTerm)
	}
	if q.SortBy != "" {
		ret.Set("sortBy", q.SortBy)
	}
	if q.Ascending != nil {
		ret.Set("ascending", strconv.FormatBool(*q.Ascending))
	}
	return ret
}

const (
	RoleLeader = "Leader"
	RoleMember = "Member"

	MemberActive   = "Active"
	MemberInactive = "Inactive"
	MemberPending  = "Pending"
)

type CreateGroupRequest struct {
	Name          string  `json:"name"`
	CoverPhotoURL *string `json:"coverPhotoUrl,omitempty"`
}

type UpdateGroupRequest struct {
	Name          *string `json:"name,omitempty"`
	CoverPhotoURL *string `json:"coverPhotoUrl,omitempty"`
}

type GroupMember struct {
	UserID    string  `json:"userId"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl"`
	Role      string  `json:"role"`
	Status    string  `json:"status"`
}

type Group struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	CoverPhotoURL *string `json:"coverPhotoUrl"`
	CreatedBy     string  `json:"createdBy"`
	CreatedAt     string  `json:"createdAt"`
	MemberCount   int     `json:"memberCount"`
}

type GroupDetail struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	CoverPhotoURL *string        `json:"coverPhotoUrl"`
	CreatedBy     string         `json:"createdBy"`
	CreatedAt     string         `json:"createdAt"`
	Members       []*GroupMember `json:"members"`
}

type InviteMemberRequest struct {
	UserID string `json:"userId"`
}

const (
	RequestsReceived = "Received"
	RequestsSent     = "Sent"
)

type UserSearchResult struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Email           string  `json:"email"`
	AvatarURL       *string `json:"avatarUrl"`
	Gender          bool    `json:"gender"`
	IsEmailVerified bool    `json:"isEmailVerified"`
}

type UserBasicInfo struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	AvatarURL *string `json:"avatarUrl"`
}

// FriendRequest status is Pending, Accepted or Rejected
type FriendRequest struct {
	ID          string         `json:"id"`
	AddresseeID string         `json:"addresseeId"`
	Status      string         `json:"status"`
	CreatedAt   string         `json:"createdAt"`
	Requester   *UserBasicInfo `json:"requester"`
	Addressee   *UserBasicInfo `json:"addressee"`
}

type FriendRequestItem struct {
	FriendshipID string  `json:"friendshipId"`
	UserID       string  `json:"userId"`
	Username     string  `json:"username"`
	AvatarURL    *string `json:"avatarUrl"`
	RequestDate  string  `json:"requestDate"`
}

type Friend struct {
	FriendID     string  `json:"friendId"`
	Username     string  `json:"username"`
	Email        string  `json:"email"`
	AvatarURL    *string `json:"avatarUrl"`
	FriendsSince string  `json:"friendsSince"`
}
