package report

import (
	"bytes"
	"testing"
	"time"

	"novamd-bot/pkg/api"

	"github.com/xuri/excelize/v2"
)

func TestActiveUsersWorkbook(t *testing.T) {
	data, err := ActiveUsersWorkbook([]api.User{
		{ChatID: "101", FirstName: "Ada", Username: "ada", Plan: "monthly"},
		{ChatID: "202", FirstName: "Linus"},
	})
	if err != nil {
		t.Fatalf("ActiveUsersWorkbook failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(usersSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want 3", len(rows))
	}
	if rows[0][0] != "Chat ID" {
		t.Errorf("header = %q", rows[0][0])
	}
	if rows[1][0] != "101" || rows[1][3] != "monthly" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][1] != "Linus" {
		t.Errorf("row 2 = %v", rows[2])
	}
}

func TestUsersFilename(t *testing.T) {
	got := UsersFilename(time.Date(2025, 3, 4, 5, 6, 0, 0, time.UTC))
	if got != "active_users_20250304_0506.xlsx" {
		t.Errorf("UsersFilename = %q", got)
	}
}
