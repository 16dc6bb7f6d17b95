// Package mocks provides test doubles for the company console ports.
//
// gomock (go.uber.org/mock) mocks are generated from the interfaces in internal/ports;
// hand-written in-memory doubles live alongside them for tests that only need state.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	store := mocks.NewMockTokenStore(ctrl)
//	store.EXPECT().Read(gomock.Any()).Return("jwt", true, nil)
package mocks

// Generate mocks for TokenStore and ClaimsDecoder from internal/ports.
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=ports_mock.go github.com/zeroco/company-console/internal/ports TokenStore,ClaimsDecoder
