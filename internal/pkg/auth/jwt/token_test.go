package jwt

import "testing"

func TestGenerateAndParseAdminToken(t *testing.T) {
	token, err := GenerateAdminToken("s3cr3t")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if _, err := ParseAdminToken(token, "s3cr3t"); err != nil {
		t.Fatalf("ParseAdminToken: %v", err)
	}
}

func TestParseAdminTokenWrongSecret(t *testing.T) {
	token, err := GenerateAdminToken("s3cr3t")
	if err != nil {
		t.Fatalf("GenerateAdminToken: %v", err)
	}

	if _, err := ParseAdminToken(token, "wrong"); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseAdminTokenMalformed(t *testing.T) {
	if _, err := ParseAdminToken("not-a-token", "s3cr3t"); err == nil {
		t.Fatal("expected error for malformed token string")
	}
}
