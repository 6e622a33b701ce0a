package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/IT-Nick/examdesk/internal/storage"
	"github.com/IT-Nick/examdesk/internal/storage/storagetest"
	"google.golang.org/api/option"
)

const testSpreadsheetID = "sheet-test"

// fakeSheets эмулирует методы values.get и values.append Sheets API v4.
type fakeSheets struct {
	mu      sync.Mutex
	sheets  map[string][][]interface{}
	appends int
}

func newFakeSheets() *fakeSheets {
	return &fakeSheets{sheets: map[string][][]interface{}{
		"Users":           {{"full_name", "phone_number", "id_card_number", "birth_date", "adress", "created_at"}},
		"Questions":       {{"question", "options", "answer"}},
		"Questions(Exam)": {{"question", "options", "answer"}},
		"Results":         {{"full_name", "id_card_number", "phone_number", "birth_date", "adress", "score", "total", "success", "date", "status"}},
	}}
}

func (f *fakeSheets) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	prefix := "/v4/spreadsheets/" + testSpreadsheetID + "/values/"
	if !strings.HasPrefix(r.URL.Path, prefix) {
		http.NotFound(w, r)
		return
	}
	rng := strings.TrimPrefix(r.URL.Path, prefix)
	isAppend := strings.HasSuffix(rng, ":append")
	rng = strings.TrimSuffix(rng, ":append")
	sheet := rng
	if i := strings.Index(rng, "!"); i >= 0 {
		sheet = rng[:i]
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	rows, ok := f.sheets[sheet]
	if !ok {
		http.Error(w, `{"error":{"code":400,"message":"Unable to parse range"}}`, http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if isAppend {
		if r.Method != http.MethodPost || r.URL.Query().Get("valueInputOption") != valueInputOption {
			http.Error(w, `{"error":{"code":400,"message":"bad append"}}`, http.StatusBadRequest)
			return
		}
		var body struct {
			Values [][]interface{} `json:"values"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, `{"error":{"code":400,"message":"bad body"}}`, http.StatusBadRequest)
			return
		}
		f.sheets[sheet] = append(rows, body.Values...)
		f.appends++
		_ = json.NewEncoder(w).Encode(map[string]interface{}{"spreadsheetId": testSpreadsheetID})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"range":          rng,
		"majorDimension": "ROWS",
		"values":         rows,
	})
}

func newTestStore(t *testing.T) (*Store, *fakeSheets) {
	fake := newFakeSheets()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	s, err := New(context.Background(), testSpreadsheetID,
		option.WithEndpoint(srv.URL+"/"),
		option.WithHTTPClient(srv.Client()),
	)
	if err != nil {
		t.Fatalf("New вернул ошибку: %v", err)
	}
	return s, fake
}

func TestStore(t *testing.T) {
	storagetest.Run(t, storagetest.Options{SupportsDelete: false}, func(t *testing.T) storage.Gateway {
		s, _ := newTestStore(t)
		return s
	})
}

// TestCreateTestTaker_RowLayout проверяет порядок колонок листа Users.
func TestCreateTestTaker_RowLayout(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()

	ali := storagetest.Ali()
	if _, err := s.CreateTestTaker(ctx, ali); err != nil {
		t.Fatalf("CreateTestTaker вернул ошибку: %v", err)
	}

	fake.mu.Lock()
	row := fake.sheets["Users"][1]
	fake.mu.Unlock()
	want := []string{"Ali", "+998901234567", "AB123456", "2000-01-02", "Tashkent", "2025-03-01T10:00:00Z"}
	for i, w := range want {
		if cell(row, i) != w {
			t.Errorf("Колонка %d: ожидалось %q, получено %q", i, w, cell(row, i))
		}
	}
}

// TestCreateTestTaker_DuplicateDoesNotAppend проверяет, что при дубликате строка не добавляется.
func TestCreateTestTaker_DuplicateDoesNotAppend(t *testing.T) {
	s, fake := newTestStore(t)
	ctx := context.Background()

	if _, err := s.CreateTestTaker(ctx, storagetest.Ali()); err != nil {
		t.Fatalf("CreateTestTaker вернул ошибку: %v", err)
	}
	_, _ = s.CreateTestTaker(ctx, storagetest.Ali())

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if fake.appends != 1 {
		t.Errorf("Ожидалось 1 добавление, получено %d", fake.appends)
	}
}

func TestNew_RequiresSpreadsheetID(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Fatal("Ожидалась ошибка для пустого идентификатора таблицы")
	}
}
