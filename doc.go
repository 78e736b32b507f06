// Package tripclient is a Go client for the TripTogether API.
//
// It assembles the credential store, the authenticating transport, the
// gateway and the endpoint services from a single configuration:
//
//	cfg, _ := config.Load("tripclient.yaml")
//	client, _ := tripclient.New(ctx, cfg)
//	_, err := client.Auth.Login(ctx, &service.LoginRequest{Email: email, Password: password})
//	groups, err := client.Groups.MyGroups(ctx, nil)
//
// An expired access credential is renewed transparently. Concurrent requests
// share a single refresh call, and a failed refresh signs the user out.
package tripclient
