// SPDX-License-Identifier: AGPL-3.0-only
package authhelp

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse 1")
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	if hash == "correct horse 1" {
		t.Fatalf("hash must not equal the plaintext")
	}
	if !CheckPasswordHash(hash, "correct horse 1") {
		t.Fatalf("expected matching password to verify")
	}
	if CheckPasswordHash(hash, "wrong horse 1") {
		t.Fatalf("expected mismatching password to fail")
	}
}

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"valid", "sunny1day", false},
		{"too short", "ab1", true},
		{"no digit", "onlyletters", true},
		{"no letter", "12345678", true},
		{"empty", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidatePasswordStrength(tc.password)
			if tc.wantErr && err == nil {
				t.Fatalf("expected error for %q", tc.password)
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.password, err)
			}
		})
	}
}
