package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/PraMishra-s/E-Health-Backend-sub001/domain"
)

func TestAccountRepository_CreateWithCredential(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &domain.Account{
		FirstName:   "Asha",
		LastName:    "Rai",
		Phone:       "+9779801234567",
		AccountType: domain.AccountTypePatient,
	}
	cred := &domain.Credential{
		Email:        "asha@example.com",
		PasswordHash: "hash",
		Role:         domain.RolePatient,
	}

	if err := repo.CreateWithCredential(ctx, account, cred); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if account.ID == 0 {
		t.Fatal("expected an assigned account id")
	}
	if cred.AccountID != account.ID {
		t.Errorf("credential bound to %d, want %d", cred.AccountID, account.ID)
	}

	// Patients get no availability record.
	if _, err := repo.AvailabilityByAccount(ctx, account.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Errorf("expected no availability record for a patient, got %v", err)
	}

	found, err := repo.FindByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if found.FirstName != "Asha" || found.AccountType != domain.AccountTypePatient {
		t.Errorf("unexpected account %+v", found)
	}
}

func TestAccountRepository_HealthAssistantGetsAvailabilityRecord(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	account := &domain.Account{
		FirstName:   "Hari",
		AccountType: domain.AccountTypeHealthAssistant,
	}
	cred := &domain.Credential{
		Email: "hari@example.com",
		Role:  domain.RoleHealthAssistant,
	}

	if err := repo.CreateWithCredential(ctx, account, cred); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	record, err := repo.AvailabilityByAccount(ctx, account.ID)
	if err != nil {
		t.Fatalf("availability lookup failed: %v", err)
	}
	if !record.IsAvailable || record.IsOnLeave {
		t.Errorf("expected a fresh available record, got %+v", record)
	}
}

func TestAccountRepository_DuplicateEmailRollsBack(t *testing.T) {
	db := openTestDB(t)
	repo := NewAccountRepository(db)
	ctx := context.Background()

	first := &domain.Account{FirstName: "A", AccountType: domain.AccountTypePatient}
	if err := repo.CreateWithCredential(ctx, first, &domain.Credential{Email: "dup@example.com", Role: domain.RolePatient}); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	second := &domain.Account{FirstName: "B", AccountType: domain.AccountTypePatient}
	err := repo.CreateWithCredential(ctx, second, &domain.Credential{Email: "dup@example.com", Role: domain.RolePatient})
	if !errors.Is(err, domain.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken from the unique email index, got %v", err)
	}

	// The account row from the failed transaction must not exist.
	var count int64
	db.Model(&DBAccount{}).Where("first_name = ?", "B").Count(&count)
	if count != 0 {
		t.Errorf("expected the orphan account rolled back, found %d rows", count)
	}
}

func TestCredentialRepository_Flags(t *testing.T) {
	db := openTestDB(t)
	accounts := NewAccountRepository(db)
	creds := NewCredentialRepository(db)
	ctx := context.Background()

	account := &domain.Account{AccountType: domain.AccountTypePatient}
	cred := &domain.Credential{Email: "flags@example.com", Role: domain.RolePatient}
	if err := accounts.CreateWithCredential(ctx, account, cred); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := creds.SetVerified(ctx, account.ID); err != nil {
		t.Fatalf("set verified failed: %v", err)
	}
	if err := creds.SetMFARequired(ctx, account.ID, true); err != nil {
		t.Fatalf("set mfa failed: %v", err)
	}
	if err := creds.UpdatePasswordHash(ctx, account.ID, "newhash"); err != nil {
		t.Fatalf("update hash failed: %v", err)
	}

	found, err := creds.FindByEmail(ctx, "flags@example.com")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !found.Verified || !found.MFARequired || found.PasswordHash != "newhash" {
		t.Errorf("unexpected credential %+v", found)
	}

	if _, err := creds.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, domain.ErrCredentialNotFound) {
		t.Fatalf("expected ErrCredentialNotFound, got %v", err)
	}
}
