// Package service exposes the TripTogether API endpoints as typed methods.
//
// Each method maps a failed response to an error whose message is the API
// supplied one, falling back to a fixed per-operation message.
package service
