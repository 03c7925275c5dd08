package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "letmelearn42"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrongpass", hash)
	req.NoError(err)
	req.False(match)
}

func TestSignInValidation(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		req     SignInRequest
		wantErr bool
	}{
		{"Valid request", SignInRequest{"sarah@skillswap.dev", "letmelearn42"}, false},
		{"Minimum length password", SignInRequest{"sarah@skillswap.dev", "123456"}, false},
		{"Invalid email", SignInRequest{"notanemail", "letmelearn42"}, true},
		{"Password too short", SignInRequest{"sarah@skillswap.dev", "12345"}, true},
		{"Empty password", SignInRequest{"sarah@skillswap.dev", ""}, true},
		{"Empty email", SignInRequest{"", "letmelearn42"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignIn(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}

func TestSignUpValidation(t *testing.T) {
	req := require.New(t)
	tests := []struct {
		name    string
		req     SignUpRequest
		wantErr bool
	}{
		{"Valid request", SignUpRequest{"Sarah", "sarah@skillswap.dev", "letmelearn42"}, false},
		{"Name too short", SignUpRequest{"S", "sarah@skillswap.dev", "letmelearn42"}, true},
		{"Invalid email", SignUpRequest{"Sarah", "sarah@", "letmelearn42"}, true},
		{"Password too short", SignUpRequest{"Sarah", "sarah@skillswap.dev", "12345"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSignUp(tt.req)
			if tt.wantErr {
				req.Error(err)
			} else {
				req.NoError(err)
			}
		})
	}
}

func TestGenerateAndValidateToken(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken("user-1", "Sarah", time.Hour)
	req.NoError(err)
	req.NotEmpty(token)

	claims, err := ValidateToken(token)
	req.NoError(err)
	req.Equal("user-1", claims.UserID)
	req.Equal("Sarah", claims.Name)
	req.Equal("skillswap", claims.Issuer)
}

func TestValidateToken_Expired(t *testing.T) {
	req := require.New(t)

	token, err := GenerateToken("user-1", "Sarah", -time.Minute)
	req.NoError(err)

	_, err = ValidateToken(token)
	req.Error(err)
}

func BenchmarkHashPassword(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = HashPassword("letmelearn42-bench")
	}
}
