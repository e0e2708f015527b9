package registry

import (
	"context"
)

type Store interface {
	Save(ctx context.Context, descriptor FunctionDescriptor) error
	List(ctx context.Context) ([]FunctionDescriptor, error)
}
