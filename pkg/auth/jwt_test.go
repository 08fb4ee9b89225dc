package auth

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("user-42", []string{"customer", "seller"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-42" {
		t.Errorf("UserID = %q, want user-42", claims.UserID)
	}
	if len(claims.Roles) != 2 || claims.Roles[0] != "customer" || claims.Roles[1] != "seller" {
		t.Errorf("Roles = %v, want [customer seller]", claims.Roles)
	}
	if claims.ExpiresAt == nil {
		t.Error("token has no expiry")
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("not.a.token"); err == nil {
		t.Error("expected error for malformed token")
	}
}

func TestValidateTokenRejectsTampered(t *testing.T) {
	token, err := GenerateToken("user-42", []string{"customer"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	tampered := token[:len(token)-4] + "AAAA"
	if _, err := ValidateToken(tampered); err == nil {
		t.Error("expected error for tampered signature")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cretpass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cretpass" {
		t.Fatal("hash equals the plain text")
	}
	if !CheckPassword(hash, "s3cretpass") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "wrongpass") {
		t.Error("wrong password accepted")
	}
}
