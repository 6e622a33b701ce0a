package repository

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewAdminRepository_HashesPlaintext(t *testing.T) {
	r, err := NewAdminRepository([]Credentials{
		{Username: "admin1", Password: "123456", TelegramID: 5470369056},
	})
	if err != nil {
		t.Fatalf("NewAdminRepository вернул ошибку: %v", err)
	}

	admin := r.FindAdministrator("admin1")
	if admin == nil {
		t.Fatal("Администратор admin1 не найден")
	}
	if admin.PasswordHash == "123456" {
		t.Fatal("Пароль хранится в открытом виде")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("123456")); err != nil {
		t.Errorf("Хеш не соответствует паролю: %v", err)
	}
	if byChat := r.FindByTelegramID(5470369056); byChat == nil || byChat.Username != "admin1" {
		t.Errorf("FindByTelegramID вернул %+v", byChat)
	}
}

func TestNewAdminRepository_KeepsHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("654321"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("Ошибка хеширования: %v", err)
	}
	r, err := NewAdminRepository([]Credentials{{Username: "admin2", PasswordHash: string(hash)}})
	if err != nil {
		t.Fatalf("NewAdminRepository вернул ошибку: %v", err)
	}
	if got := r.FindAdministrator("admin2"); got == nil || got.PasswordHash != string(hash) {
		t.Errorf("Ожидался исходный хеш, получено %+v", got)
	}
}

func TestFindAdministrator_Unknown(t *testing.T) {
	r, err := NewAdminRepository(nil)
	if err != nil {
		t.Fatalf("NewAdminRepository вернул ошибку: %v", err)
	}
	if r.FindAdministrator("nobody") != nil {
		t.Error("Ожидался nil для неизвестного администратора")
	}
	if r.FindByTelegramID(1) != nil {
		t.Error("Ожидался nil для неизвестного чата")
	}
}

func TestNewAdminRepository_Invalid(t *testing.T) {
	cases := map[string][]Credentials{
		"empty username": {{Password: "x"}},
		"no password":    {{Username: "admin1"}},
		"duplicate":      {{Username: "admin1", Password: "a"}, {Username: "admin1", Password: "b"}},
	}
	for name, creds := range cases {
		if _, err := NewAdminRepository(creds); err == nil {
			t.Errorf("%s: ожидалась ошибка", name)
		}
	}
}
