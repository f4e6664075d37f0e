package face

import "context"

// Directory resolves display names from the users table.
type Directory struct {
	repo Repository
}

func NewDirectory(repo Repository) *Directory {
	return &Directory{repo: repo}
}

func (d *Directory) NameOf(ctx context.Context, userID string) (string, error) {
	u, err := d.repo.FindByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return u.Name, nil
}
