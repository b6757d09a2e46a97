package auth

import (
	"testing"

	"vehiql-main/internal/user"

	"github.com/stretchr/testify/assert"
)

func TestPolicy_IsAdmin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		policy   Policy
		email    string
		user     *user.User
		expected bool
	}{
		{
			name:     "empty policy, regular user",
			policy:   Policy{},
			email:    "someone@example.com",
			user:     &user.User{Role: user.RoleUser},
			expected: false,
		},
		{
			name:     "override",
			policy:   Policy{Override: true},
			email:    "someone@example.com",
			expected: true,
		},
		{
			name:     "allowlisted email, case-insensitive",
			policy:   Policy{Emails: []string{"Owner@Dealer.com"}},
			email:    " owner@dealer.com",
			expected: true,
		},
		{
			name:     "email marker",
			policy:   Policy{EmailMarker: "admin"},
			email:    "sales.admin@dealer.com",
			expected: true,
		},
		{
			name:     "empty marker does not match everything",
			policy:   Policy{EmailMarker: ""},
			email:    "sales@dealer.com",
			expected: false,
		},
		{
			name:     "stored admin role",
			policy:   Policy{},
			email:    "boss@example.com",
			user:     &user.User{Role: user.RoleAdmin},
			expected: true,
		},
		{
			name:     "email taken from user record",
			policy:   Policy{Emails: []string{"boss@example.com"}},
			user:     &user.User{Email: "boss@example.com", Role: user.RoleUser},
			expected: true,
		},
		{
			name:     "no identity at all",
			policy:   Policy{Emails: []string{"boss@example.com"}, EmailMarker: "admin"},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.policy.IsAdmin(tt.email, tt.user))
		})
	}
}
