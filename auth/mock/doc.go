// Package mock provides an httptest backend that behaves like the TripTogether
// API for the endpoints the authenticated client depends on.
//
// It issues signed JWT credential pairs, rotates them on refresh, rejects
// access credentials invalidated with Expire, and lets tests hold a refresh
// open, fail it, or register additional protected routes.
package mock
