package auth

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	token, err := Issue("s3cret", "researcher", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := Verify("s3cret", token)
	if err != nil {
		t.Fatal(err)
	}
	if claims.Subject != "researcher" {
		t.Fatalf("subject %q", claims.Subject)
	}

	if _, err := Verify("other", token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: %v", err)
	}

	expired, _ := Issue("s3cret", "researcher", -time.Minute)
	if _, err := Verify("s3cret", expired); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: %v", err)
	}

	if _, err := Issue("", "x", time.Hour); err == nil {
		t.Fatalf("empty secret accepted")
	}
}
