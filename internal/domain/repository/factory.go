package repository

import "context"

// Factory describes access to relational domain repositories.
type Factory interface {
	Users() UserRepository
	Orders() OrderRepository
	Foods() FoodRepository
}

// HealthChecker reports whether a backing store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
