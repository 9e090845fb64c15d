package models

import "testing"

func TestCitizenAccount_BeforeCreate(t *testing.T) {
	a := &CitizenAccount{Email: "juan@example.com"}
	a.BeforeCreate()

	if a.CreatedAt.IsZero() {
		t.Error("BeforeCreate() should set CreatedAt")
	}
	if !a.UpdatedAt.Equal(a.CreatedAt) {
		t.Error("BeforeCreate() should set UpdatedAt equal to CreatedAt")
	}
	if !a.IsActive {
		t.Error("BeforeCreate() should activate the account")
	}
}

func TestCitizenAccount_BeforeUpdate(t *testing.T) {
	a := &CitizenAccount{}
	a.BeforeUpdate()

	if a.UpdatedAt.IsZero() {
		t.Error("BeforeUpdate() should set UpdatedAt")
	}
}
