package dto

import (
	"encoding/json"
	"testing"
)

func TestVerifyRequest_CodeForms(t *testing.T) {
	for _, body := range []string{
		`{"username":"admin1","code":"123456"}`,
		`{"username":"admin1","code":123456}`,
	} {
		var req VerifyRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Unmarshal(%s) вернул ошибку: %v", body, err)
		}
		if req.Code != "123456" {
			t.Errorf("Unmarshal(%s): code = %q", body, req.Code)
		}
	}

	var req VerifyRequest
	if err := json.Unmarshal([]byte(`{"code":12.5}`), &req); err == nil {
		t.Error("Ожидалась ошибка для дробного кода")
	}
}

func TestVerifyRequest_NullCode(t *testing.T) {
	for _, body := range []string{`{"username":"admin1","code":null}`, `{"username":"admin1"}`} {
		var req VerifyRequest
		if err := json.Unmarshal([]byte(body), &req); err != nil {
			t.Fatalf("Unmarshal(%s) вернул ошибку: %v", body, err)
		}
		if req.Code != "" {
			t.Errorf("Unmarshal(%s): ожидался пустой код, получено %q", body, req.Code)
		}
	}
}

func TestQuestionRequest_ToModel(t *testing.T) {
	var req QuestionRequest
	body := `{"variant":"exam","question":"2+2?","options":["3","4"],"answer":"4"}`
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("Unmarshal вернул ошибку: %v", err)
	}
	q := req.ToModel()
	if q.Variant != "exam" || q.Question != "2+2?" || len(q.Options) != 2 || q.Answer != "4" {
		t.Errorf("Неожиданная модель вопроса: %+v", q)
	}
}

func TestRegisterRequest_LegacyAddress(t *testing.T) {
	var req RegisterRequest
	if err := json.Unmarshal([]byte(`{"full_name":"Ali","adress":"Tashkent"}`), &req); err != nil {
		t.Fatalf("Unmarshal вернул ошибку: %v", err)
	}
	if got := req.ToModel().Address; got != "Tashkent" {
		t.Errorf("Ожидался адрес из поля adress, получено %q", got)
	}

	req.Address = "Samarkand"
	if got := req.ToModel().Address; got != "Samarkand" {
		t.Errorf("Поле address должно иметь приоритет, получено %q", got)
	}
}
