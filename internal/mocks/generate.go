// Package mocks provides mock implementations for testing the issuance pipeline.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockIssueJobRepository(ctrl)
//	mockRepo.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).Return(jobs, nil)
package mocks

// Generate mock for IssueJobRepository interface from internal/core package.
// This creates MockIssueJobRepository with methods for all IssueJobRepository interface methods:
// CreateBatch, ListPending, GetByID, RecordAttempt, StatusesForPair, Stats, PruneSucceededLogs
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=issue_job_repository_mock.go github.com/credkit/issuerd/internal/core IssueJobRepository

// Generate mock for SignupRepository interface from internal/core package.
// This creates MockSignupRepository with methods for all SignupRepository interface methods:
// CompletedSignup, EligibleTags, UnenqueuedCompletions
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=signup_repository_mock.go github.com/credkit/issuerd/internal/core SignupRepository

// Generate mock for StatusCacheRepository interface from internal/core package.
// This creates MockStatusCacheRepository with methods for all StatusCacheRepository interface methods:
// Get, Set, Invalidate
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=status_cache_repository_mock.go github.com/credkit/issuerd/internal/core StatusCacheRepository

// Generate mock for IssuerClient interface from internal/core package.
// This creates MockIssuerClient with methods for all IssuerClient interface methods:
// Issue
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=issuer_client_mock.go github.com/credkit/issuerd/internal/core IssuerClient
