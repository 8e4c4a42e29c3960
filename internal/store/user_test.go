// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import "testing"

func TestUserStoreCreateAndFind(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	cleanUsers(t, db, "test-user-create")
	t.Cleanup(func() { cleanUsers(t, db, "test-user-create") })

	u, err := s.Create("test-user-create", "create@example.com", "secret123")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.ID == 0 {
		t.Fatal("expected a generated id")
	}

	byName, err := s.FindByUsername("test-user-create")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if byName == nil || byName.ID != u.ID {
		t.Fatalf("FindByUsername mismatch: %+v", byName)
	}

	byID, err := s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if byID == nil || byID.Username != "test-user-create" {
		t.Fatalf("FindByID mismatch: %+v", byID)
	}
}

func TestUserStoreFindMissing(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)

	u, err := s.FindByUsername("test-no-such-user")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if u != nil {
		t.Errorf("expected nil for missing user, got %+v", u)
	}
}

func TestUserStorePassword(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	cleanUsers(t, db, "test-user-pass")
	t.Cleanup(func() { cleanUsers(t, db, "test-user-pass") })

	u, err := s.Create("test-user-pass", "pass@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if u.PasswordHash == "correct-horse" {
		t.Fatal("password stored in plain text")
	}
	if !s.CheckPassword(u, "correct-horse") {
		t.Error("correct password rejected")
	}
	if s.CheckPassword(u, "wrong") {
		t.Error("wrong password accepted")
	}
}

func TestUserStoreTOTP(t *testing.T) {
	db := testDB(t)
	s := NewUserStore(db)
	cleanUsers(t, db, "test-user-totp")
	t.Cleanup(func() { cleanUsers(t, db, "test-user-totp") })

	u, err := s.Create("test-user-totp", "totp@example.com", "secret123")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := s.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP"); err != nil {
		t.Fatalf("SetTOTPSecret: %v", err)
	}
	fresh, err := s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if fresh.TOTPSecret == nil || *fresh.TOTPSecret != "JBSWY3DPEHPK3PXP" {
		t.Errorf("secret not stored: %v", fresh.TOTPSecret)
	}
	if fresh.TOTPEnabled {
		t.Error("2FA enabled before EnableTOTP")
	}

	if err := s.EnableTOTP(u.ID); err != nil {
		t.Fatalf("EnableTOTP: %v", err)
	}
	fresh, err = s.FindByID(u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if !fresh.TOTPEnabled {
		t.Error("2FA not enabled after EnableTOTP")
	}
}
