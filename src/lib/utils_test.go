package lib

import (
	"testing"
)

func TestGenerateAndVerifyJWT(t *testing.T) {
	token, err := GenerateJWT(42)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	if token == "" {
		t.Fatal("got empty token")
	}

	claims, err := VerifyJWT(token)
	if err != nil {
		t.Fatalf("VerifyJWT: %v", err)
	}

	// JSON numbers decode as float64
	userID, ok := claims["userId"].(float64)
	if !ok {
		t.Fatalf("userId claim has type %T, want float64", claims["userId"])
	}
	if uint(userID) != 42 {
		t.Errorf("got userId %v, want 42", userID)
	}
	if _, ok := claims["exp"]; !ok {
		t.Error("token has no expiry claim")
	}
}

func TestVerifyJWTRejectsGarbage(t *testing.T) {
	if _, err := VerifyJWT("not-a-token"); err == nil {
		t.Error("malformed token verified")
	}
}

func TestVerifyJWTRejectsTamperedToken(t *testing.T) {
	token, err := GenerateJWT(1)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := VerifyJWT(tampered); err == nil {
		t.Error("tampered token verified")
	}
}
