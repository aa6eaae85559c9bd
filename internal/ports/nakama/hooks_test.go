package nakama

import (
	"testing"

	"github.com/form3tech-oss/jwt-go"
)

func signedSession(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("server-key"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestExtractUserIDFromToken(t *testing.T) {
	token := signedSession(t, jwt.MapClaims{"uid": "user-42", "usn": "someone"})

	uid, err := extractUserIDFromToken(token)
	if err != nil {
		t.Fatalf("extractUserIDFromToken failed: %v", err)
	}
	if uid != "user-42" {
		t.Fatalf("uid = %s, want user-42", uid)
	}
}

func TestExtractUserIDFromToken_Errors(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "Garbage", token: "not-a-token"},
		{name: "MissingUID", token: signedSession(t, jwt.MapClaims{"usn": "someone"})},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := extractUserIDFromToken(test.token); err == nil {
				t.Fatal("Expected error")
			}
		})
	}
}
