package token

import (
	"context"
	"testing"
	"time"

	"animal-shelter-manager/internal/ports/auth"
)

func TestIssueVerifyRoundtrip(t *testing.T) {
	svc, err := New("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	in := auth.Claims{Username: "clara", Role: auth.RoleStaff}
	tok, err := svc.Issue(context.Background(), in)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	out, err := svc.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if out != in {
		t.Fatalf("claims = %+v, want %+v", out, in)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	a, _ := New("secret-a", time.Hour)
	b, _ := New("secret-b", time.Hour)

	tok, err := a.Issue(context.Background(), auth.Claims{Username: "clara", Role: auth.RoleStaff})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := b.Verify(context.Background(), tok); err == nil {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	svc, _ := New("test-secret", time.Hour)

	issued := time.Unix(1700000000, 0)
	svc.now = func() time.Time { return issued }

	tok, err := svc.Issue(context.Background(), auth.Claims{Username: "diego", Role: auth.RoleCustomer})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	svc.now = func() time.Time { return issued.Add(2 * time.Hour) }
	if _, err := svc.Verify(context.Background(), tok); err == nil {
		t.Fatal("expired token must not verify")
	}
}

func TestIssueRejectsBadClaims(t *testing.T) {
	svc, _ := New("test-secret", time.Hour)

	if _, err := svc.Issue(context.Background(), auth.Claims{Username: "", Role: auth.RoleStaff}); err == nil {
		t.Fatal("empty username must be rejected")
	}
	if _, err := svc.Issue(context.Background(), auth.Claims{Username: "x", Role: auth.Role("wizard")}); err == nil {
		t.Fatal("unknown role must be rejected")
	}
}

func TestNewRequiresSecret(t *testing.T) {
	if _, err := New("  ", time.Hour); err != ErrEmptySecret {
		t.Fatalf("err = %v, want ErrEmptySecret", err)
	}
}
