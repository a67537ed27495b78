// Package loadtest generates a mixed read/write load against the gateway from a number of
// concurrent virtual users.
package loadtest

import (
	"context"
	"errors"
	"fmt"
)

// Request names used in metrics.
const (
	ListProductsRequest   = "GET /product-service/api/products"
	ListCategoriesRequest = "GET /product-service/api/categories"
	CreateProductRequest  = "POST /product-service/api/products"
	DeleteProductRequest  = "DELETE /product-service/api/products/{id}"
)

// Task is one weighted unit of work a virtual user can perform.
type Task struct {
	Name   string
	Weight int
	Run    func(ctx context.Context, u *User)
}

// RandomSource is the subset of *rand.Rand the load generator needs.
type RandomSource interface {
	Intn(n int) int
	Int63n(n int64) int64
}

// Workload is a fixed set of tasks chosen in proportion to their weights.
type Workload struct {
	tasks []Task
	total int
}

// NewWorkload returns an error if there are no tasks or any weight is not positive.
func NewWorkload(tasks ...Task) (Workload, error) {
	if len(tasks) == 0 {
		return Workload{}, errors.New("workload has no tasks")
	}
	w := Workload{tasks: append([]Task(nil), tasks...)}
	for _, t := range tasks {
		if t.Weight <= 0 {
			return Workload{}, fmt.Errorf("task %q has weight %d, must be positive", t.Name, t.Weight)
		}
		w.total += t.Weight
	}
	return w, nil
}

// DefaultWorkload is mostly reads with an occasional write: product listing 5, category listing
// 3, create-then-delete product 1.
func DefaultWorkload() Workload {
	w, _ := NewWorkload(
		Task{Name: "list products", Weight: 5, Run: func(ctx context.Context, u *User) { u.ListProducts(ctx) }},
		Task{Name: "list categories", Weight: 3, Run: func(ctx context.Context, u *User) { u.ListCategories(ctx) }},
		Task{Name: "create then delete product", Weight: 1, Run: func(ctx context.Context, u *User) { u.CreateThenDeleteProduct(ctx) }},
	)
	return w
}

// Tasks returns the tasks in the order they were given.
func (w Workload) Tasks() []Task {
	return append([]Task(nil), w.tasks...)
}

// TotalWeight is the sum of all task weights.
func (w Workload) TotalWeight() int {
	return w.total
}

// Pick selects a task with probability weight/TotalWeight.
func (w Workload) Pick(rnd RandomSource) Task {
	n := rnd.Intn(w.total)
	for _, t := range w.tasks {
		if n < t.Weight {
			return t
		}
		n -= t.Weight
	}
	return w.tasks[len(w.tasks)-1]
}
