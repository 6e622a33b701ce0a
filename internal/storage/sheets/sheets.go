package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/IT-Nick/examdesk/internal/domain/model"
	"github.com/IT-Nick/examdesk/internal/storage"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Диапазоны листов таблицы. Первая строка каждого листа содержит заголовок.
const (
	RangeUsers         = "Users!A:F"
	RangeQuestions     = "Questions!A:C"
	RangeExamQuestions = "Questions(Exam)!A:C"
	RangeResults       = "Results!A:J"

	valueInputOption = "USER_ENTERED"
)

// Store реализация storage.Gateway поверх Google Sheets API.
// Чтение идет диапазоном целиком, запись добавляет строку в конец листа.
// Строки не имеют устойчивых идентификаторов, поэтому удаление не поддерживается.
type Store struct {
	srv           *gsheets.Service
	spreadsheetID string
	mu            sync.Mutex // проверка уникальности и добавление участника
}

var _ storage.Gateway = (*Store)(nil)

// New создаёт клиент Sheets API для таблицы spreadsheetID.
func New(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*Store, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("sheets: spreadsheet id is empty")
	}
	opts = append([]option.ClientOption{option.WithScopes(gsheets.SpreadsheetsScope)}, opts...)
	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets.NewService: %w", err)
	}
	return &Store{srv: srv, spreadsheetID: spreadsheetID}, nil
}

// rows читает диапазон и отбрасывает строку заголовка.
func (s *Store) rows(ctx context.Context, readRange string) ([][]interface{}, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read range %s: %w", readRange, err)
	}
	if len(resp.Values) <= 1 {
		return nil, nil
	}
	return resp.Values[1:], nil
}

func (s *Store) append(ctx context.Context, writeRange string, row []interface{}) error {
	vr := &gsheets.ValueRange{Values: [][]interface{}{row}}
	_, err := s.srv.Spreadsheets.Values.Append(s.spreadsheetID, writeRange, vr).
		ValueInputOption(valueInputOption).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to append to range %s: %w", writeRange, err)
	}
	return nil
}

// cell возвращает значение ячейки строкой; отсутствующие ячейки пусты.
func cell(row []interface{}, i int) string {
	if i >= len(row) || row[i] == nil {
		return ""
	}
	return fmt.Sprint(row[i])
}

func cellInt(row []interface{}, i int) int {
	n, err := strconv.Atoi(strings.TrimSpace(cell(row, i)))
	if err != nil {
		return 0
	}
	return n
}

func cellTime(row []interface{}, i int) time.Time {
	v := cell(row, i)
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func testTakerFromRow(row []interface{}) model.TestTaker {
	return model.TestTaker{
		FullName:     cell(row, 0),
		PhoneNumber:  cell(row, 1),
		IDCardNumber: cell(row, 2),
		BirthDate:    cell(row, 3),
		Address:      cell(row, 4),
		CreatedAt:    cellTime(row, 5),
	}
}

func (s *Store) ListTestTakers(ctx context.Context) ([]model.TestTaker, error) {
	rows, err := s.rows(ctx, RangeUsers)
	if err != nil {
		return nil, err
	}
	testTakers := make([]model.TestTaker, 0, len(rows))
	for _, r := range rows {
		testTakers = append(testTakers, testTakerFromRow(r))
	}
	return testTakers, nil
}

func (s *Store) CreateTestTaker(ctx context.Context, t model.TestTaker) (model.TestTaker, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, err := s.FindTestTakerByIDCard(ctx, t.IDCardNumber)
	if err != nil {
		return model.TestTaker{}, err
	}
	if existing != nil {
		return model.TestTaker{}, model.ErrDuplicate
	}

	row := []interface{}{t.FullName, t.PhoneNumber, t.IDCardNumber, t.BirthDate, t.Address, t.CreatedAt.UTC().Format(time.RFC3339)}
	if err := s.append(ctx, RangeUsers, row); err != nil {
		return model.TestTaker{}, err
	}
	return t, nil
}

func (s *Store) DeleteTestTaker(_ context.Context, _ string) error {
	return model.ErrUnsupported
}

func (s *Store) FindTestTakerByIDCard(ctx context.Context, idCard string) (*model.TestTaker, error) {
	rows, err := s.rows(ctx, RangeUsers)
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if cell(r, 2) == idCard {
			t := testTakerFromRow(r)
			return &t, nil
		}
	}
	return nil, nil
}

func questionsRange(variant string) string {
	if storage.Variant(variant) == model.VariantExam {
		return RangeExamQuestions
	}
	return RangeQuestions
}

func (s *Store) ListQuestions(ctx context.Context, variant string) ([]model.Question, error) {
	variant = storage.Variant(variant)
	rows, err := s.rows(ctx, questionsRange(variant))
	if err != nil {
		return nil, err
	}
	questions := make([]model.Question, 0, len(rows))
	for i, r := range rows {
		var options []string
		if raw := cell(r, 1); raw != "" {
			if err := json.Unmarshal([]byte(raw), &options); err != nil {
				return nil, fmt.Errorf("question row %d: invalid options: %w", i+2, err)
			}
		}
		questions = append(questions, model.Question{
			Variant:  variant,
			Question: cell(r, 0),
			Options:  options,
			Answer:   cell(r, 2),
		})
	}
	return questions, nil
}

func (s *Store) CreateQuestion(ctx context.Context, q model.Question) (model.Question, error) {
	q.Variant = storage.Variant(q.Variant)
	options, err := json.Marshal(q.Options)
	if err != nil {
		return model.Question{}, fmt.Errorf("failed to marshal options: %w", err)
	}
	if err := s.append(ctx, questionsRange(q.Variant), []interface{}{q.Question, string(options), q.Answer}); err != nil {
		return model.Question{}, err
	}
	return q, nil
}

func (s *Store) DeleteQuestion(_ context.Context, _ string) error {
	return model.ErrUnsupported
}

func (s *Store) AppendResult(ctx context.Context, r model.Result) (model.Result, error) {
	row := []interface{}{
		r.FullName, r.IDCardNumber, r.PhoneNumber, r.BirthDate, r.Address,
		r.Score, r.Total, yesNo(r.Success), r.Date.UTC().Format(time.RFC3339), r.Status,
	}
	if err := s.append(ctx, RangeResults, row); err != nil {
		return model.Result{}, err
	}
	return r, nil
}

func (s *Store) ListResults(ctx context.Context) ([]model.Result, error) {
	rows, err := s.rows(ctx, RangeResults)
	if err != nil {
		return nil, err
	}
	results := make([]model.Result, 0, len(rows))
	for _, r := range rows {
		results = append(results, model.Result{
			FullName:     cell(r, 0),
			IDCardNumber: cell(r, 1),
			PhoneNumber:  cell(r, 2),
			BirthDate:    cell(r, 3),
			Address:      cell(r, 4),
			Score:        cellInt(r, 5),
			Total:        cellInt(r, 6),
			Success:      strings.EqualFold(cell(r, 7), "yes"),
			Date:         cellTime(r, 8),
			Status:       cell(r, 9),
		})
	}
	return results, nil
}

func (s *Store) Close() error {
	return nil
}
