// Package transport implements an http.RoundTripper that attaches the stored
// bearer credential to every request and transparently recovers from an
// expired access credential.
//
// When a request is rejected with 401 Unauthorized the RoundTripper exchanges
// the stored refresh credential for a new pair and replays the request once.
// Concurrent requests rejected while a refresh is in flight wait for that
// refresh instead of starting their own, so the refresh endpoint is called at
// most once per episode. A failed refresh clears the stored credentials and
// fails every waiting request with the same *RefreshError.
package transport
