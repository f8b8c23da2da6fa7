package api

import (
	"context"
	"net/http"

	"santaos/internal/domain"
)

// Login signs in with name and role and returns the user object.
func (c *HTTP) Login(ctx context.Context, name string, role domain.Role) (domain.User, error) {
	in := struct {
		Name string      `json:"name"`
		Role domain.Role `json:"role"`
	}{Name: name, Role: role}

	var u domain.User
	res, err := c.do(ctx, http.MethodPost, "/auth/login", in, &u)
	if err != nil {
		return domain.User{}, err
	}
	if !res.echoed {
		return domain.User{}, malformed(res.status, http.MethodPost, "/auth/login", "empty body, want a user")
	}
	if err := u.Validate(); err != nil {
		return domain.User{}, malformed(res.status, http.MethodPost, "/auth/login", "%v", err)
	}
	return u, nil
}

var _ domain.Authenticator = (*HTTP)(nil)
