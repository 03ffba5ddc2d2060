package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studio101-core/server/internal/auth"
)

func TestCustomerName(t *testing.T) {
	tests := []struct {
		name string
		user *auth.User
		want string
	}{
		{name: "Nil", user: nil, want: "고객"},
		{name: "DisplayName", user: &auth.User{DisplayName: "김민수", Email: "minsu@example.com"}, want: "김민수"},
		{name: "EmailLocalPart", user: &auth.User{Email: "minsu@example.com"}, want: "minsu"},
		{name: "Empty", user: &auth.User{ID: "u1"}, want: "고객"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.user.CustomerName())
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	assert.Nil(t, auth.FromContext(context.Background()))

	u := &auth.User{ID: "u1"}
	ctx := auth.WithUser(context.Background(), u)
	assert.Same(t, u, auth.FromContext(ctx))
}
