// SPDX-License-Identifier: AGPL-3.0-only
package middleware

import "testing"

func TestIsPublicRoute(t *testing.T) {
	cases := []struct {
		path   string
		public bool
	}{
		{"/api/register", true},
		{"/api/login", true},
		{"/api/login/2fa", true},
		{"/health", true},
		{"/api/login-attempts", false},
		{"/api/registered", false},
		{"/api/me", false},
		{"/", false},
	}
	for _, tc := range cases {
		if got := isPublicRoute(tc.path); got != tc.public {
			t.Errorf("isPublicRoute(%q) = %v, want %v", tc.path, got, tc.public)
		}
	}
}
