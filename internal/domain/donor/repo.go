package donor

import "context"

type Repository interface {
	PhoneNumbers(ctx context.Context) ([]PhoneEntry, error)
}
